package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func TestPreferenceStore_Hidden(t *testing.T) {
	store := NewPreferenceStore()
	ctx := context.Background()

	require.NoError(t, store.Hide(ctx, domain.SourceApps, domain.HiddenFromResults, "camera"))
	require.NoError(t, store.Hide(ctx, domain.SourceApps, domain.HiddenFromSuggestions, "clock"))
	require.NoError(t, store.Hide(ctx, domain.SourceFiles, domain.HiddenFromResults, "camera"))

	hidden, err := store.HiddenSet(ctx, domain.SourceApps, domain.HiddenFromResults)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"camera": {}}, hidden)

	require.NoError(t, store.Unhide(ctx, domain.SourceApps, domain.HiddenFromResults, "camera"))
	hidden, err = store.HiddenSet(ctx, domain.SourceApps, domain.HiddenFromResults)
	require.NoError(t, err)
	assert.Empty(t, hidden)

	files, err := store.HiddenSet(ctx, domain.SourceFiles, domain.HiddenFromResults)
	require.NoError(t, err)
	assert.Len(t, files, 1, "other sources are unaffected")
}

func TestPreferenceStore_Validation(t *testing.T) {
	store := NewPreferenceStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Hide(ctx, domain.SourceApps, "nowhere", "x"), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Pin(ctx, "widgets", "x"), domain.ErrUnsupportedType)
	assert.ErrorIs(t, store.RecordUsage(ctx, domain.SourceApps, ""), domain.ErrInvalidInput)

	_, err := store.HiddenSet(ctx, domain.SourceApps, "nowhere")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPreferenceStore_PinnedNicknamesUsage(t *testing.T) {
	store := NewPreferenceStore()
	ctx := context.Background()

	require.NoError(t, store.Pin(ctx, domain.SourceApps, "maps"))
	require.NoError(t, store.Pin(ctx, domain.SourceApps, "mail"))
	require.NoError(t, store.Unpin(ctx, domain.SourceApps, "mail"))
	pinned, err := store.PinnedSet(ctx, domain.SourceApps)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"maps": {}}, pinned)

	require.NoError(t, store.SetNickname(ctx, domain.SourceApps, "settings", "config"))
	nick, ok, err := store.Nickname(ctx, domain.SourceApps, "settings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "config", nick)

	require.NoError(t, store.SetNickname(ctx, domain.SourceApps, "settings", "  "))
	all, err := store.Nicknames(ctx, domain.SourceApps)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, store.RecordUsage(ctx, domain.SourceApps, "maps"))
	require.NoError(t, store.RecordUsage(ctx, domain.SourceApps, "maps"))
	counts, err := store.UsageCounts(ctx, domain.SourceApps)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"maps": 2}, counts)
}

func TestPreferenceStore_ReturnedSetsAreCopies(t *testing.T) {
	store := NewPreferenceStore()
	ctx := context.Background()
	require.NoError(t, store.Pin(ctx, domain.SourceApps, "maps"))

	pinned, err := store.PinnedSet(ctx, domain.SourceApps)
	require.NoError(t, err)
	delete(pinned, "maps")

	again, err := store.PinnedSet(ctx, domain.SourceApps)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestPreferenceStore_Concurrency(t *testing.T) {
	store := NewPreferenceStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.RecordUsage(ctx, domain.SourceApps, "maps")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.UsageCounts(ctx, domain.SourceApps)
		}()
	}
	wg.Wait()

	counts, err := store.UsageCounts(ctx, domain.SourceApps)
	require.NoError(t, err)
	assert.Equal(t, 100, counts["maps"])
}
