// Package input provides the query input for the launcher.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
)

const (
	defaultWidth = 50
	minWidth     = 20
	maxQueryLen  = 256
)

// QueryInput wraps a bubbles textinput with launcher styling. A hint,
// such as the engine a shortcut routes to, is shown after the field.
type QueryInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	hint      string
}

// NewQueryInput creates a focused query input.
func NewQueryInput(s *styles.Styles) *QueryInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "Search apps, contacts, files and settings"
	ti.Prompt = "› "
	ti.Focus()
	ti.CharLimit = maxQueryLen
	ti.Width = defaultWidth

	return &QueryInput{
		textinput: ti,
		styles:    s,
		width:     defaultWidth,
	}
}

// Init starts the cursor blinking.
func (q *QueryInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (q *QueryInput) Update(msg tea.Msg) (*QueryInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the input and its hint.
func (q *QueryInput) View() string {
	field := q.styles.InputField.Render(q.textinput.View())
	if q.hint == "" {
		return field
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", q.styles.Muted.Render(q.hint))
}

// Value returns the current query.
func (q *QueryInput) Value() string {
	return q.textinput.Value()
}

// SetValue replaces the query and moves the cursor to its end.
func (q *QueryInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// SetHint sets the text shown after the field. Empty hides it.
func (q *QueryInput) SetHint(hint string) {
	q.hint = hint
}

// Hint returns the current hint.
func (q *QueryInput) Hint() string {
	return q.hint
}

// Focused returns whether the input is focused.
func (q *QueryInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input.
func (q *QueryInput) SetWidth(width int) {
	q.width = width
	inputWidth := width - 6
	if inputWidth < minWidth {
		inputWidth = minWidth
	}
	q.textinput.Width = inputWidth
}

// Width returns the current width.
func (q *QueryInput) Width() int {
	return q.width
}

// Reset clears the query and the hint.
func (q *QueryInput) Reset() {
	q.textinput.Reset()
	q.hint = ""
}
