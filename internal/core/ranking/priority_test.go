package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func TestCalculateMatchPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		query    string
		expected domain.MatchTier
	}{
		{"blank query", "Anything", "", domain.TierNoMatch},
		{"whitespace query", "Anything", "   ", domain.TierNoMatch},
		{"blank query on blank text", "", "", domain.TierNoMatch},
		{"prefix", "Chrome", "chr", domain.TierPrefix},
		{"prefix ignores case", "chrome", "CHR", domain.TierPrefix},
		{"word prefix", "Google Chrome", "chr", domain.TierWordPrefix},
		{"substring", "Telegram", "gram", domain.TierContains},
		{"no match", "Telegram", "xyz", domain.TierNoMatch},
		{"diacritics in text", "Café", "cafe", domain.TierPrefix},
		{"diacritics in query", "cafe", "CAFÉ", domain.TierPrefix},
		{"text whitespace collapsed", "Google   Chrome", "google chrome", domain.TierPrefix},
		{"multi-word prefix", "abc defxyz", "abc def", domain.TierPrefix},
		{"multi-word all tokens contained", "xyz abc def", "abc def", domain.TierContains},
		{"multi-word token missing", "abc xyz", "abc def", domain.TierNoMatch},
		{"apostrophe in text", "What'sApp Business", "whats", domain.TierPrefix},
		{"apostrophe in query", "WhatsApp", "what's", domain.TierPrefix},
		{"curly apostrophe in text", "What’sApp", "whatsapp", domain.TierPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateMatchPriority(tt.text, tt.query))
		})
	}
}

func TestCalculateMatchPriority_SingleTokenPrefixAlwaysTierOne(t *testing.T) {
	texts := []string{"Firefox", "Files", "F-Droid", "Éclair", "fm radio"}
	for _, text := range texts {
		normalized := NormalizeText(text)
		for i := 1; i <= len(normalized); i++ {
			prefix := normalized[:i]
			if len(NewQuery(prefix).Tokens) != 1 {
				continue
			}
			assert.Equal(t, domain.TierPrefix, CalculateMatchPriority(text, prefix), "%q / %q", text, prefix)
		}
	}
}

func TestCalculateMatchPriorityWithNickname(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		nickname string
		query    string
		expected domain.MatchTier
	}{
		{"nickname overrides", "Foo", "bar", "bar", domain.TierNickname},
		{"nickname beats prefix", "Settings", "config", "config", domain.TierNickname},
		{"nickname contains query", "Foo", "my work mail", "work", domain.TierNickname},
		{"nickname ignores case", "Foo", "Bar", "BAR", domain.TierNickname},
		{"empty nickname delegates", "Foo", "", "fo", domain.TierPrefix},
		{"nickname miss delegates", "Foo", "bar", "fo", domain.TierPrefix},
		{"blank query never matches", "Foo", "bar", "", domain.TierNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateMatchPriorityWithNickname(tt.text, tt.nickname, tt.query))
		})
	}
}

func TestPriorityForQuery_MatchesStringForm(t *testing.T) {
	q := NewQuery("Chr")
	for _, text := range []string{"Chrome", "Google Chrome", "Torch", "Mail"} {
		assert.Equal(t, CalculateMatchPriority(text, "Chr"), PriorityForQuery(text, q), text)
	}
}

func TestGetBestMatchPriority(t *testing.T) {
	assert.Equal(t, domain.TierContains, GetBestMatchPriority("mail", "Thunderbird", "E-Mail client"))
	assert.Equal(t, domain.TierPrefix, GetBestMatchPriority("mail", "Thunderbird", "E-Mail client", "Mailspring"))
	assert.Equal(t, domain.TierNoMatch, GetBestMatchPriority("mail", "Thunderbird", ""))
	assert.Equal(t, domain.TierNoMatch, GetBestMatchPriority("", "Mail"))
	assert.Equal(t, domain.TierNoMatch, GetBestMatchPriority("mail"))
}

func TestHasContainingMatch(t *testing.T) {
	assert.True(t, HasContainingMatch("Google Maps Navigation", NewQuery("maps goo")))
	assert.False(t, HasContainingMatch("Google Maps", NewQuery("maps nav")))
	assert.False(t, HasContainingMatch("Google Maps", NewQuery(" ")))
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("  Crème Brûlée  ")

	assert.Equal(t, "creme brulee", q.Normalized)
	assert.Equal(t, []string{"creme", "brulee"}, q.Tokens)
	assert.False(t, q.IsBlank())
	assert.Equal(t, 12, q.Len())
	assert.True(t, q.Extends("creme"))
	assert.False(t, q.Extends(""))
	assert.False(t, q.Extends("brulee"))
	assert.True(t, NewQuery("\t").IsBlank())
}
