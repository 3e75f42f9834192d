package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui"
	"github.com/custodia-labs/lookup/internal/core/domain"
	"github.com/custodia-labs/lookup/internal/core/services"
	"github.com/custodia-labs/lookup/internal/logger"
)

var (
	pickCategory string
	pickInitial  string
	pickJSON     bool
	pickKeepOpen bool
)

// isTerminal reports whether f is attached to a terminal.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Pick a value interactively",
	Long: `Opens the interactive picker. Type to search the current category,
use the arrow keys or the mouse to choose a result and press Enter.

The picker is drawn on stderr and the selected value is printed to stdout,
so the command can be used in scripts:

  cost_center=$(lookup pick --category cc)

Keys:
  ↑/↓ home/end   move the highlight
  enter          select the highlighted result
  esc            close the list, press again to quit
  tab/shift+tab  switch category
  ctrl+u         clear the selection`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVarP(&pickCategory, "category", "c", "", "initial category (default from settings)")
	pickCmd.Flags().StringVarP(&pickInitial, "initial", "i", "", "initially selected value")
	pickCmd.Flags().BoolVar(&pickJSON, "json", false, "print the selection as JSON")
	pickCmd.Flags().BoolVar(&pickKeepOpen, "keep-open", false, "stay open after a selection")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stderr) {
		return errors.New("pick requires an interactive terminal")
	}

	if logger.IsVerbose() {
		restore := logger.ToFile(logFilePath(deps.Settings))
		defer func() { _ = restore() }()
	}
	logger.Section("Picker")

	app, err := tui.NewApp(newPickerPorts(deps, pickCategory, pickInitial))
	if err != nil {
		return fmt.Errorf("creating picker: %w", err)
	}

	result, err := app.
		WithContext(cmd.Context()).
		WithQuitOnSelect(!pickKeepOpen).
		WithOutput(os.Stderr).
		Run()
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}
	if result.Cancelled {
		return ErrCancelled
	}

	return printSelection(cmd, result)
}

// newPickerPorts wires one dropdown with its coordinator and event dispatcher.
func newPickerPorts(rt *Runtime, category, initial string) *tui.Ports {
	if category == "" {
		category = rt.Settings.Category
	}

	coordinator := services.NewFetchCoordinator(rt.Source, rt.Cache, rt.Settings.MinSearchLength)
	if rt.Settings.RequestTimeout > 0 {
		coordinator.WithTimeout(rt.Settings.RequestTimeout)
	}

	dispatcher := services.NewEventDispatcher()
	factory := services.NewDropdownFactory(services.DropdownConfig{
		Category:      category,
		DebounceDelay: rt.Settings.DebounceDelay,
		InitialValue:  initial,
	}, coordinator, dispatcher)

	return tui.NewPorts(rt.Categories, factory, dispatcher)
}

type selectionOutput struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func printSelection(cmd *cobra.Command, result tui.Result) error {
	if pickJSON {
		data, err := json.Marshal(selectionOutput{Value: result.Value, Label: result.Label})
		if err != nil {
			return fmt.Errorf("failed to marshal selection: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if result.Value != "" {
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
	}
	return nil
}

func logFilePath(settings *domain.Settings) string {
	if settings.LogFile != "" {
		return settings.LogFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lookup.log"
	}
	return filepath.Join(home, ".lookup", "lookup.log")
}
