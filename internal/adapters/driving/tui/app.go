package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/views/launcher"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// launcherView is the only screen; help is drawn over it.
	launcherView *launcher.View

	// showHelp toggles the keybinding overlay.
	showHelp bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	view := launcher.NewView(s, launcher.Deps{
		Apps:        ports.Apps,
		Secondary:   ports.Secondary,
		Engines:     ports.Engines,
		Answer:      ports.Answer,
		Preferences: ports.Preferences,
		Settings:    ports.Settings,
		Actions:     ports.Actions,
	})

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       keymap.DefaultKeyMap(),
		launcherView: view,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.launcherView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sercha-launcher"),
		a.launcherView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.launcherView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		k := msg.String()
		if keymap.Matches(k, a.keymap.Quit) {
			a.launcherView.Close()
			return a, tea.Quit
		}
		if keymap.Matches(k, a.keymap.Help) {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			if keymap.Matches(k, a.keymap.Clear) {
				a.showHelp = false
			}
			return a, nil
		}
		// Esc on an empty query leaves the launcher.
		if keymap.Matches(k, a.keymap.Clear) && a.launcherView.Query() == "" {
			a.launcherView.Close()
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.launcherView, cmd = a.launcherView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.showHelp {
		return a.renderHelp()
	}
	return a.launcherView.View()
}

func (a *App) renderHelp() string {
	h := a.styles.HelpModel()
	h.ShowAll = true
	h.Width = a.width

	return strings.Join([]string{
		a.styles.Title.Render("Keys"),
		"",
		h.View(a.keymap),
		"",
		a.styles.Help.Render("Start a query with an engine shortcut (e.g. \"yt \") to search that engine."),
		a.styles.Muted.Render("esc or f1 to close"),
	}, "\n")
}

// ShowingHelp reports whether the help overlay is open.
func (a *App) ShowingHelp() bool {
	return a.showHelp
}

// Launcher returns the launcher view.
func (a *App) Launcher() *launcher.View {
	return a.launcherView
}
