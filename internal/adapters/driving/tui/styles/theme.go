// Package styles holds the launcher's lipgloss palette and derived styles.
package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colours the launcher draws with. Each colour adapts
// to light and dark terminals.
type Palette struct {
	Accent  lipgloss.AdaptiveColor
	Link    lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Dim     lipgloss.AdaptiveColor
	Alert   lipgloss.AdaptiveColor
	Caution lipgloss.AdaptiveColor
	Done    lipgloss.AdaptiveColor
	Edge    lipgloss.AdaptiveColor
	Bar     lipgloss.AdaptiveColor

	// Sections tints result section headers by title. Titles without an
	// entry use Link.
	Sections map[string]lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultPalette returns the launcher palette.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:  adaptive("#8839EF", "#CBA6F7"),
		Link:    adaptive("#1E66F5", "#89B4FA"),
		Text:    adaptive("#4C4F69", "#CDD6F4"),
		Dim:     adaptive("#8C8FA1", "#6C7086"),
		Alert:   adaptive("#D20F39", "#F38BA8"),
		Caution: adaptive("#DF8E1D", "#F9E2AF"),
		Done:    adaptive("#40A02B", "#A6E3A1"),
		Edge:    adaptive("#BCC0CC", "#45475A"),
		Bar:     adaptive("#E6E9EF", "#181825"),
		Sections: map[string]lipgloss.AdaptiveColor{
			"Pinned":   adaptive("#DF8E1D", "#F9E2AF"),
			"Apps":     adaptive("#8839EF", "#CBA6F7"),
			"Contacts": adaptive("#EA76CB", "#F5C2E7"),
			"Files":    adaptive("#179299", "#94E2D5"),
			"Settings": adaptive("#FE640B", "#FAB387"),
		},
	}
}

// Styles are the rendered styles derived from a palette.
type Styles struct {
	palette *Palette

	Title      lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// Section is the base header style; SectionHeader tints it per title.
	Section  lipgloss.Style
	Nickname lipgloss.Style
	Pinned   lipgloss.Style
	Link     lipgloss.Style
	Answer   lipgloss.Style
}

// NewStyles derives styles from p. A nil palette means DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}
	plain := lipgloss.NewStyle()
	rounded := plain.BorderStyle(lipgloss.RoundedBorder())

	return &Styles{
		palette:    p,
		Title:      plain.Bold(true).Foreground(p.Accent),
		Normal:     plain.Foreground(p.Text),
		Muted:      plain.Foreground(p.Dim),
		Selected:   plain.Bold(true).Foreground(p.Bar).Background(p.Accent),
		Error:      plain.Foreground(p.Alert),
		Success:    plain.Foreground(p.Done),
		Warning:    plain.Foreground(p.Caution),
		InputField: rounded.BorderForeground(p.Edge).Padding(0, 1),
		StatusBar:  plain.Foreground(p.Dim).Background(p.Bar).Padding(0, 1),
		Help:       plain.Foreground(p.Dim),
		Section:    plain.Bold(true).MarginTop(1),
		Nickname:   plain.Foreground(p.Bar).Background(p.Link).Padding(0, 1),
		Pinned:     plain.Foreground(p.Caution),
		Link:       plain.Foreground(p.Link).Underline(true),
		Answer:     rounded.BorderForeground(p.Accent).Padding(0, 1),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(nil)
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// SectionHeader renders a result section title in its section colour.
func (s *Styles) SectionHeader(title string) string {
	c, ok := s.palette.Sections[title]
	if !ok {
		c = s.palette.Link
	}
	return s.Section.Foreground(c).Render(title)
}

// HelpModel returns a help renderer drawn in these styles.
func (s *Styles) HelpModel() help.Model {
	h := help.New()
	h.Styles.ShortKey = s.Normal
	h.Styles.ShortDesc = s.Muted
	h.Styles.ShortSeparator = s.Muted
	h.Styles.FullKey = s.Normal
	h.Styles.FullDesc = s.Muted
	h.Styles.FullSeparator = s.Muted
	h.Styles.Ellipsis = s.Muted
	return h
}
