package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui"
	"github.com/custodia-labs/lookup/internal/core/domain"
)

func TestPickCmd_Flags(t *testing.T) {
	category := pickCmd.Flags().Lookup("category")
	require.NotNil(t, category)
	assert.Equal(t, "c", category.Shorthand)

	initial := pickCmd.Flags().Lookup("initial")
	require.NotNil(t, initial)
	assert.Equal(t, "i", initial.Shorthand)

	assert.NotNil(t, pickCmd.Flags().Lookup("json"))
	assert.NotNil(t, pickCmd.Flags().Lookup("keep-open"))
}

func TestPickCmd_RequiresTerminal(t *testing.T) {
	original := isTerminal
	isTerminal = func(*os.File) bool { return false }
	defer func() { isTerminal = original }()

	_, err := executeCommand(t, newTestRuntime(t), "pick")

	assert.EqualError(t, err, "pick requires an interactive terminal")
}

func TestNewPickerPorts(t *testing.T) {
	rt := newTestRuntime(t)

	ports := newPickerPorts(rt, "wbs", "WBS002")
	require.NoError(t, ports.Validate())

	app, err := tui.NewApp(ports)
	require.NoError(t, err)
	defer app.Picker().Dispose()

	snap := app.Picker().Snapshot()
	assert.Equal(t, "wbs", snap.Category)
	assert.Equal(t, "WBS002", snap.Input)
	assert.Equal(t, domain.Selection{Value: "WBS002", Label: "WBS002"}, snap.Selection)
	assert.Equal(t, rt.Settings.MinSearchLength, snap.MinLength)
}

func TestNewPickerPorts_CategoryFromSettings(t *testing.T) {
	rt := newTestRuntime(t)
	rt.Settings.Category = "wbs"

	app, err := tui.NewApp(newPickerPorts(rt, "", ""))
	require.NoError(t, err)
	defer app.Picker().Dispose()

	assert.Equal(t, "wbs", app.Picker().Snapshot().Category)
}

func TestPrintSelection(t *testing.T) {
	result := tui.Result{Value: "1000", Label: "1000 - IT Department", Changed: true}

	tests := []struct {
		name   string
		json   bool
		result tui.Result
		want   string
	}{
		{"plain", false, result, "1000\n"},
		{"json", true, result, `{"value":"1000","label":"1000 - IT Department"}` + "\n"},
		{"empty plain", false, tui.Result{}, ""},
		{"empty json", true, tui.Result{}, `{"value":"","label":""}` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := pickJSON
			pickJSON = tt.json
			defer func() { pickJSON = original }()

			var buf bytes.Buffer
			pickCmd.SetOut(&buf)
			defer pickCmd.SetOut(nil)

			require.NoError(t, printSelection(pickCmd, tt.result))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLogFilePath(t *testing.T) {
	assert.Equal(t, "/var/log/lookup.log", logFilePath(&domain.Settings{LogFile: "/var/log/lookup.log"}))

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, ".lookup", "lookup.log"), logFilePath(&domain.Settings{}))
}
