package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func TestEnginesList(t *testing.T) {
	restore := setupTestServices()
	defer restore()

	out, err := execute(t, "engines", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "* Google")
	assert.Contains(t, out, "YouTube")
	assert.Contains(t, out, "yt")
	assert.NotContains(t, out, "Spotify")
}

func TestEnginesURL(t *testing.T) {
	restore := setupTestServices()
	defer restore()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "query",
			args: []string{"engines", "url", "youtube", "lofi", "beats"},
			want: "https://www.youtube.com/results?search_query=lofi+beats",
		},
		{
			name: "domain override",
			args: []string{"engines", "url", "--domain", "co.uk", "Google", "tea"},
			want: "https://www.google.co.uk/search?q=tea",
		},
		{
			name: "blank query gives home page",
			args: []string{"engines", "url", "youtube"},
			want: "https://www.youtube.com/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestEnginesURL_UnknownEngine(t *testing.T) {
	restore := setupTestServices()
	defer restore()

	_, err := execute(t, "engines", "url", "altavista", "x")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestEnginesShortcut(t *testing.T) {
	restore := setupTestServices()
	defer restore()

	out, err := execute(t, "engines", "shortcut", "wikipedia", "WIKI")
	require.NoError(t, err)
	assert.Contains(t, out, "Wikipedia shortcut set")

	out, err = execute(t, "search", "wiki", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "Shortcut: wiki -> Wikipedia")
}

func TestEnginesShortcut_Rejected(t *testing.T) {
	restore := setupTestServices()
	defer restore()

	_, err := execute(t, "engines", "shortcut", "wikipedia", "yt")
	assert.ErrorIs(t, err, domain.ErrShortcutInUse)

	_, err = execute(t, "engines", "shortcut", "wikipedia", "w")
	assert.ErrorIs(t, err, domain.ErrShortcutInvalid)
}

func TestParseEngine(t *testing.T) {
	e, err := parseEngine(" YouTube ")
	require.NoError(t, err)
	assert.Equal(t, domain.EngineYouTube, e)

	_, err = parseEngine("")
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
