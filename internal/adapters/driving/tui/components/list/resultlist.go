// Package list provides the sectioned result list for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// RowKind says what activating a row does.
type RowKind int

const (
	// RowItem opens a candidate.
	RowItem RowKind = iota

	// RowWeb opens an engine URL.
	RowWeb

	// RowSuggestion replaces the query with the suggestion.
	RowSuggestion

	// RowAsk sends the query to the direct-answer engine.
	RowAsk
)

// Row is one selectable line of the list.
type Row struct {
	// Section groups rows under a header, e.g. "Apps".
	Section string

	Kind RowKind

	// Title is the main text.
	Title string

	// Detail is shown muted after the title.
	Detail string

	// Candidate is set for RowItem.
	Candidate domain.Candidate

	// Match describes how the candidate matched. Nil for pinned rows.
	Match *domain.Match

	// Pinned marks a pinned candidate.
	Pinned bool

	// URL is set for RowWeb.
	URL string
}

// ItemList displays rows under section headers with one selected row.
type ItemList struct {
	rows     []Row
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewItemList creates an empty list.
func NewItemList(s *styles.Styles) *ItemList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &ItemList{
		styles: s,
		width:  80,
		height: 20,
	}
}

// Init initialises the list.
func (l *ItemList) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (l *ItemList) Update(msg tea.Msg) (*ItemList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only navigation keys
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown, tea.KeyTab:
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the visible window of rows.
func (l *ItemList) View() string {
	if len(l.rows) == 0 {
		return l.styles.Muted.Render("No results")
	}

	visible := l.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.rows) {
		end = len(l.rows)
	}

	lines := make([]string, 0, (end-start)*2)
	section := ""
	if start > 0 {
		section = l.rows[start-1].Section
	}
	for i := start; i < end; i++ {
		if l.rows[i].Section != section {
			section = l.rows[i].Section
			lines = append(lines, l.styles.SectionHeader(section))
		}
		lines = append(lines, l.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (l *ItemList) renderRow(index int) string {
	row := l.rows[index]

	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	maxTitle := l.width - 24
	if maxTitle < 10 {
		maxTitle = 10
	}
	title := truncate(row.Title, maxTitle)

	badge := ""
	switch {
	case row.Pinned:
		badge = l.styles.Pinned.Render("★")
	case row.Match != nil && row.Match.Tier == domain.TierNickname && !row.Match.IsFuzzy:
		badge = l.styles.Nickname.Render(row.Candidate.Nickname)
	case row.Match != nil && row.Match.IsFuzzy:
		badge = l.styles.Muted.Render(fmt.Sprintf("~%.0f", row.Match.Score))
	}

	var line string
	if index == l.selected {
		line = l.styles.Selected.Render(indicator + title)
	} else {
		line = l.styles.Normal.Render(indicator + title)
	}
	if badge != "" {
		line += " " + badge
	}

	detail := row.Detail
	if row.Kind == RowWeb {
		detail = row.URL
	}
	if detail != "" {
		room := l.width - len([]rune(title)) - 8
		if room > 10 {
			style := l.styles.Muted
			if row.Kind == RowWeb {
				style = l.styles.Link
			}
			line += "  " + style.Render(truncate(detail, room))
		}
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// SetRows replaces the rows. The selection stays on the same index when
// possible so a refresh under the cursor does not jump to the top.
func (l *ItemList) SetRows(rows []Row) {
	l.rows = rows
	if l.selected >= len(rows) {
		l.selected = len(rows) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

// ResetSelection moves the selection to the first row.
func (l *ItemList) ResetSelection() {
	l.selected = 0
}

// Rows returns the current rows.
func (l *ItemList) Rows() []Row {
	return l.rows
}

// Selected returns the index of the selected row.
func (l *ItemList) Selected() int {
	return l.selected
}

// SelectedRow returns the selected row, or nil if the list is empty.
func (l *ItemList) SelectedRow() *Row {
	if l.selected < 0 || l.selected >= len(l.rows) {
		return nil
	}
	return &l.rows[l.selected]
}

// MoveUp moves selection up.
func (l *ItemList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *ItemList) MoveDown() {
	if l.selected < len(l.rows)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *ItemList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *ItemList) Count() int {
	return len(l.rows)
}
