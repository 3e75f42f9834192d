package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/lookup/internal/adapters/driving/tui/views/picker"
	"github.com/custodia-labs/lookup/internal/logger"
)

// Result is the outcome of a picker session.
type Result struct {
	// Value and Label are the selection in force when the picker exited.
	Value string
	Label string

	// Changed is true if the selected value changed during the session.
	Changed bool

	// Cancelled is true if the user quit with ctrl+c.
	Cancelled bool
}

// App is the picker application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	picker *picker.View

	result       Result
	quitOnSelect bool
	output       io.Writer

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new picker application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	view, err := picker.NewView(s, nil, ports.Categories, ports.NewDropdown, ports.Events)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	snap := view.Snapshot()
	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		picker:       view,
		result:       Result{Value: snap.Selection.Value, Label: snap.Selection.Label},
		quitOnSelect: true,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.picker.WithContext(ctx)
	return a
}

// WithQuitOnSelect controls whether selecting a value ends the session.
func (a *App) WithQuitOnSelect(quit bool) *App {
	a.quitOnSelect = quit
	return a
}

// WithOutput renders the picker to w instead of stdout.
func (a *App) WithOutput(w io.Writer) *App {
	a.output = w
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("lookup"),
		a.picker.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.result.Cancelled = true
			return a, tea.Quit
		}

	case messages.ValueChanged:
		logger.Debug("tui: value changed to %q", msg.Value)
		a.result.Value = msg.Value
		a.result.Label = msg.Label
		a.result.Changed = true
		if a.quitOnSelect && msg.Value != "" {
			return a, tea.Quit
		}
		return a, nil

	case messages.ErrorOccurred:
		logger.Warn("tui: %v", msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.picker.View()
}

// Run starts the picker and blocks until it exits.
func (a *App) Run() (Result, error) {
	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(a.ctx),
	}
	if a.output != nil {
		opts = append(opts, tea.WithOutput(a.output))
	}
	p := tea.NewProgram(a, opts...)
	_, err := p.Run()
	a.picker.Dispose()
	return a.result, err
}

// Result returns the current session outcome.
func (a *App) Result() Result {
	return a.result
}

// Picker returns the picker view.
func (a *App) Picker() *picker.View {
	return a.picker
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.picker.SetDimensions(width, height)
}
