package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineDefinitions_UniqueShortcuts(t *testing.T) {
	seen := make(map[string]SearchEngine)
	for _, d := range EngineDefinitions() {
		prev, dup := seen[d.DefaultShortcut]
		assert.False(t, dup, "%s shares shortcut with %s", d.Engine, prev)
		seen[d.DefaultShortcut] = d.Engine
		assert.GreaterOrEqual(t, len(d.DefaultShortcut), 2)
	}
}

func TestEngineDefinitions_ReturnsCopy(t *testing.T) {
	defs := EngineDefinitions()
	defs[0].Name = "changed"

	d, ok := LookupEngine(defs[0].Engine)
	require.True(t, ok)
	assert.NotEqual(t, "changed", d.Name)
}

func TestLookupEngine(t *testing.T) {
	d, ok := LookupEngine(EngineAmazon)
	require.True(t, ok)
	assert.True(t, d.HasBrowserURL())
	assert.True(t, d.SupportsDomainOverride())
	assert.Contains(t, d.URLTemplate, QueryPlaceholder)

	_, ok = LookupEngine(SearchEngine("altavista"))
	assert.False(t, ok)
}

func TestDirectAnswerHasNoBrowserURL(t *testing.T) {
	d, ok := LookupEngine(EngineDirectAnswer)
	require.True(t, ok)
	assert.False(t, d.HasBrowserURL())
}

func TestSearchEngine_DisplayName(t *testing.T) {
	assert.Equal(t, "YouTube", EngineYouTube.DisplayName())
	assert.Equal(t, "Unknown", SearchEngine("x").DisplayName())
	assert.True(t, EngineBing.IsValid())
	assert.False(t, SearchEngine("").IsValid())
}
