package file

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestNewPromptStore_NoIOInConstructor(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")

	_, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptDirectAnswer)
	require.NoError(t, err)
	assert.Contains(t, prompt, "%s")

	for _, name := range []string{driven.PromptDirectAnswer, driven.PromptFollowUp} {
		_, err := os.Stat(filepath.Join(dir, name+".txt"))
		assert.NoError(t, err, name)
	}
}

func TestPromptStore_Load_UserEditsAndReload(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptDirectAnswer)
	require.NoError(t, err)

	path := filepath.Join(dir, driven.PromptDirectAnswer+".txt")
	require.NoError(t, os.WriteFile(path, []byte("  Be brief: %s \n"), 0600))

	// Cached until reload.
	prompt, err := store.Load(driven.PromptDirectAnswer)
	require.NoError(t, err)
	assert.NotEqual(t, "Be brief: %s", prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptDirectAnswer)
	require.NoError(t, err)
	assert.Equal(t, "Be brief: %s", prompt)
}

func TestPromptStore_Load_EmptyFileUsesDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, driven.PromptFollowUp+".txt"), []byte("\n"), 0600))
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptFollowUp)

	require.NoError(t, err)
	assert.Equal(t, defaultPrompt(driven.PromptFollowUp), prompt)
}

func TestPromptStore_Load_WrongPlaceholdersUsesDefault(t *testing.T) {
	tests := []struct {
		name    string
		prompt  string
		content string
	}{
		{"direct answer without verb", driven.PromptDirectAnswer, "Answer briefly."},
		{"direct answer with two verbs", driven.PromptDirectAnswer, "%s and %s"},
		{"follow up with one verb", driven.PromptFollowUp, "Follow up: %s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, tt.prompt+".txt"), []byte(tt.content), 0o600))
			store, err := NewPromptStore(dir)
			require.NoError(t, err)

			got, err := store.Load(tt.prompt)

			require.NoError(t, err)
			assert.Equal(t, defaultPrompt(tt.prompt), got)
		})
	}
}

func TestDefaultPrompts_HaveExpectedPlaceholders(t *testing.T) {
	for name, want := range placeholders {
		assert.Equal(t, want, strings.Count(defaultPrompt(name), "%s"), name)
	}
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("summarise")
	assert.Error(t, err)
}

func TestPromptStore_Load_InitFailureFallsBack(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))
	store, err := NewPromptStore(filepath.Join(blocker, "prompts"))
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptDirectAnswer)

	require.NoError(t, err)
	assert.Equal(t, defaultPrompt(driven.PromptDirectAnswer), prompt)
}

func TestPromptStore_ConcurrentLoad(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Load(driven.PromptDirectAnswer)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
