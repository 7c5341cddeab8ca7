package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"ctrl+c"}},
		{"help", km.Help, []string{"f1"}},
		{"clear", km.Clear, []string{"esc"}},
		{"up", km.Up, []string{"up", "ctrl+k"}},
		{"down", km.Down, []string{"down", "ctrl+j", "tab"}},
		{"launch", km.Launch, []string{"enter"}},
		{"pin", km.Pin, []string{"ctrl+p"}},
		{"hide", km.Hide, []string{"ctrl+x"}},
		{"ask", km.Ask, []string{"ctrl+a"}},
		{"retry", km.Retry, []string{"ctrl+r"}},
		{"copy", km.Copy, []string{"ctrl+y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				assert.NotEqual(t, 1, len([]rune(k)), "binding %q would swallow typed text", k)
			}
		}
	}
}

func TestKeyMap_HelpGroups(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	assert.Contains(t, km.ResultsHelp(), km.Pin)
	assert.Len(t, km.FullHelp(), 4)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key     string
		binding key.Binding
		want    bool
	}{
		{"enter", km.Launch, true},
		{"tab", km.Down, true},
		{"ctrl+p", km.Pin, true},
		{"p", km.Pin, false},
		{"q", km.Quit, false},
		{"", km.Quit, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Matches(tt.key, tt.binding), tt.key)
	}
}
