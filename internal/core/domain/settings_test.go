package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLauncherSettings(t *testing.T) {
	s := DefaultLauncherSettings()

	assert.Equal(t, DefaultResultLimit, s.Search.ResultLimit)
	assert.Equal(t, DefaultDebounce, s.Search.Debounce)
	assert.True(t, s.Search.SortAppsByUsage)
	assert.True(t, s.Suggestions.Enabled)
	assert.Equal(t, EngineGoogle, s.Engines.Default)
	assert.True(t, s.Engines.ShortcutsEnabled)

	// Contacts and files require an explicit grant
	assert.False(t, s.Permissions.Granted(SourceContacts))
	assert.False(t, s.Permissions.Granted(SourceFiles))
	assert.True(t, s.Permissions.Granted(SourceApps))
	assert.True(t, s.Permissions.Granted(SourceSettings))

	require.Len(t, s.Search.Fuzzy, len(AllSources()))
	for _, kind := range AllSources() {
		assert.True(t, s.Sections.Enabled(kind), "section %s", kind)
		assert.NoError(t, s.Search.FuzzyFor(kind).Validate())
	}
}

func TestSearchSettings_FuzzyForFallsBackToDefault(t *testing.T) {
	s := SearchSettings{}

	assert.Equal(t, DefaultFuzzyConfig(), s.FuzzyFor(SourceFiles))
}

func TestSectionSettings_Enabled(t *testing.T) {
	s := SectionSettings{Apps: true, Files: true}

	tests := []struct {
		kind     SourceKind
		expected bool
	}{
		{SourceApps, true},
		{SourceContacts, false},
		{SourceFiles, true},
		{SourceSettings, false},
		{SourceKind("bogus"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Enabled(tt.kind))
		})
	}
}

func TestEngineSettings_IsEnabled(t *testing.T) {
	e := EngineSettings{Enabled: []SearchEngine{EngineGoogle, EngineYouTube}}

	assert.True(t, e.IsEnabled(EngineYouTube))
	assert.False(t, e.IsEnabled(EngineBing))
}

func TestAnswerSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings AnswerSettings
		want     bool
	}{
		{"no key", AnswerSettings{Provider: AnswerGemini, Model: "m"}, false},
		{"no provider", AnswerSettings{APIKey: "k"}, false},
		{"unknown provider", AnswerSettings{Provider: "watson", APIKey: "k"}, false},
		{"key", AnswerSettings{Provider: AnswerOpenAI, APIKey: "k"}, true},
		{"local provider needs no key", AnswerSettings{Provider: AnswerOllama}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.IsConfigured())
		})
	}
}

func TestAnswerProvider(t *testing.T) {
	for _, p := range AllAnswerProviders() {
		assert.True(t, p.IsValid(), p)
	}
	assert.False(t, AnswerProvider("").IsValid())
	assert.True(t, AnswerAnthropic.NeedsAPIKey())
	assert.False(t, AnswerOllama.NeedsAPIKey())
}
