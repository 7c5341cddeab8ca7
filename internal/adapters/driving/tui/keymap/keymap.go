// Package keymap defines keybindings for the TUI.
//
// Every printable key goes to the query, so actions use control keys.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the launcher.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help view.
	Help key.Binding

	// Clear empties the query, or quits when it is already empty.
	Clear key.Binding

	// Up moves the selection up.
	Up key.Binding

	// Down moves the selection down.
	Down key.Binding

	// Launch opens the selected row.
	Launch key.Binding

	// Pin toggles the selected item's pin.
	Pin key.Binding

	// Hide hides the selected item from results.
	Hide key.Binding

	// Ask sends the query to the direct-answer engine.
	Ask key.Binding

	// Retry re-asks a failed direct answer.
	Retry key.Binding

	// Copy copies the answer, or the selected row's target.
	Copy key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j", "tab"),
			key.WithHelp("↓", "down"),
		),
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Pin: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "pin"),
		),
		Hide: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "hide"),
		),
		Ask: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "ask"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Ask, k.Help, k.Quit}
}

// ResultsHelp returns the bindings shown while results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Pin, k.Hide, k.Ask}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Launch},
		{k.Pin, k.Hide, k.Clear},
		{k.Ask, k.Retry, k.Copy},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
