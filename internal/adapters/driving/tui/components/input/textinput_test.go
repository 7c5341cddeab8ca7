package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/adapters/driving/tui/styles"
)

func TestNewQueryInput(t *testing.T) {
	in := NewQueryInput(styles.DefaultStyles())

	require.NotNil(t, in)
	assert.Equal(t, "", in.Value())
	assert.True(t, in.Focused())
	assert.Equal(t, defaultWidth, in.Width())
	assert.NotNil(t, NewQueryInput(nil).styles)
	assert.NotNil(t, in.Init())
}

func TestQueryInput_Typing(t *testing.T) {
	in := NewQueryInput(nil)

	for _, r := range "maps" {
		in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "maps", in.Value())

	in.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "map", in.Value())
}

func TestQueryInput_SetValueMovesCursorToEnd(t *testing.T) {
	in := NewQueryInput(nil)

	in.SetValue("new york")
	in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'!'}})

	assert.Equal(t, "new york!", in.Value())
}

func TestQueryInput_Hint(t *testing.T) {
	in := NewQueryInput(nil)
	in.SetValue("yt lofi")

	assert.NotContains(t, in.View(), "YouTube")

	in.SetHint("YouTube")
	assert.Contains(t, in.View(), "YouTube")

	in.Reset()
	assert.Equal(t, "", in.Value())
	assert.Equal(t, "", in.Hint())
}

func TestQueryInput_SetWidth(t *testing.T) {
	tests := []struct {
		width     int
		wantInner int
	}{
		{100, 94},
		{10, minWidth},
	}
	for _, tt := range tests {
		in := NewQueryInput(nil)
		in.SetWidth(tt.width)

		assert.Equal(t, tt.width, in.Width())
		assert.Equal(t, tt.wantInner, in.textinput.Width)
	}
}
