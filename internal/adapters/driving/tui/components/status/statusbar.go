// Package status renders the launcher's bottom line: what the search is
// doing on the left, key hints on the right.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// State is what the bar reports on its left side.
type State string

const (
	StateReady     State = "ready"
	StateSearching State = "searching"
	StateResults   State = "results"
	StateEmpty     State = "empty"
	StateError     State = "error"
	StateHelp      State = "help"
)

// StateFor maps a secondary search phase to a bar state.
func StateFor(phase domain.SearchPhase) State {
	switch phase {
	case domain.PhaseDebouncing, domain.PhaseSearching, domain.PhaseSuggesting:
		return StateSearching
	case domain.PhaseResults:
		return StateResults
	case domain.PhaseEmpty:
		return StateEmpty
	case domain.PhaseIdle:
	}
	return StateReady
}

// Bar is the status line.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	help    help.Model
	spinner spinner.Model

	state   State
	message string
	count   int
	width   int
}

// NewBar returns a bar in the ready state. Nil arguments select defaults.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(s.Muted))
	return &Bar{
		styles:  s,
		keymap:  km,
		help:    s.HelpModel(),
		spinner: sp,
		state:   StateReady,
		width:   80,
	}
}

// Init starts the spinner.
func (s *Bar) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the bar at its configured width.
func (s *Bar) View() string {
	left := s.status()
	right := s.help.ShortHelpView(s.hints())

	gap := max(s.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return s.styles.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (s *Bar) status() string {
	switch s.state {
	case StateSearching:
		return s.spinner.View() + " " + s.styles.Muted.Render("Searching...")
	case StateError:
		if s.message == "" {
			return s.styles.Error.Render("Error")
		}
		return s.styles.Error.Render("Error: " + s.message)
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateEmpty:
		return s.styles.Warning.Render("No matches")
	case StateReady, StateResults:
	}

	switch {
	case s.message != "":
		return s.styles.Success.Render(s.message)
	case s.count == 1:
		return s.styles.Normal.Render("1 result")
	case s.count > 1:
		return s.styles.Normal.Render(fmt.Sprintf("%d results", s.count))
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) hints() []key.Binding {
	if s.count > 0 {
		return s.keymap.ResultsHelp()
	}
	return s.keymap.ShortHelp()
}

// SetState sets the current state.
func (s *Bar) SetState(state State) { s.state = state }

// State returns the current state.
func (s *Bar) State() State { return s.state }

// SetMessage sets a message shown in place of the result count.
func (s *Bar) SetMessage(message string) { s.message = message }

// Message returns the current message.
func (s *Bar) Message() string { return s.message }

// SetResultCount sets the number of listed results.
func (s *Bar) SetResultCount(count int) { s.count = count }

// ResultCount returns the number of listed results.
func (s *Bar) ResultCount() int { return s.count }

// SetWidth sets the render width.
func (s *Bar) SetWidth(width int) { s.width = width }

// Clear returns the bar to the ready state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.count = 0
}
