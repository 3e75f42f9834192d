package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lookup/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the lookup settings stored in the config file.

Use subcommands to change a single setting or locate the config file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting and save it to the config file.

Available keys:
  api.url                    search backend URL
  api.rate_limit             maximum requests per second (0 = unlimited)
  search.category            initial category (empty = backend default)
  search.min_length          characters required before searching
  search.debounce_ms         pause in typing before searching
  search.request_timeout_ms  per-request timeout (0 = none)
  log.file                   verbose log file used by the picker`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), deps.Config.Path())
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingSetters apply a textual value to one settings field.
var settingSetters = map[string]func(s *domain.Settings, value string) error{
	"api.url": func(s *domain.Settings, v string) error {
		s.APIURL = v
		return nil
	},
	"api.rate_limit": func(s *domain.Settings, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		s.RateLimit = f
		return nil
	},
	"search.category": func(s *domain.Settings, v string) error {
		s.Category = v
		return nil
	},
	"search.min_length": func(s *domain.Settings, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		s.MinSearchLength = n
		return nil
	},
	"search.debounce_ms": func(s *domain.Settings, v string) error {
		d, err := parseMillis(v)
		if err != nil {
			return err
		}
		s.DebounceDelay = d
		return nil
	},
	"search.request_timeout_ms": func(s *domain.Settings, v string) error {
		d, err := parseMillis(v)
		if err != nil {
			return err
		}
		s.RequestTimeout = d
		return nil
	},
	"log.file": func(s *domain.Settings, v string) error {
		s.LogFile = v
		return nil
	},
}

func parseMillis(v string) (time.Duration, error) {
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := deps.SettingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	category := settings.Category
	if category == "" {
		category = "(backend default)"
	}
	logFile := settings.LogFile
	if logFile == "" {
		logFile = logFilePath(settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  URL: %s\n", settings.APIURL)
	cmd.Printf("  Rate limit: %s\n", formatRate(settings.RateLimit))
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Category: %s\n", category)
	cmd.Printf("  Minimum length: %d\n", settings.MinSearchLength)
	cmd.Printf("  Debounce: %s\n", settings.DebounceDelay)
	cmd.Printf("  Request timeout: %s\n", formatTimeout(settings.RequestTimeout))
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  File: %s\n", logFile)
	cmd.Println()

	cmd.Printf("Config file: %s\n", deps.Config.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], strings.TrimSpace(args[1])

	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (available: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys(), ", "))
	}

	settings, err := deps.SettingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := set(settings, value); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
	}
	if err := deps.SettingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %q\n", key, value)
	return nil
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatRate(perSecond float64) string {
	if perSecond <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(perSecond, 'f', -1, 64) + "/s"
}

func formatTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}
