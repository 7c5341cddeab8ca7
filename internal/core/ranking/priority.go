package ranking

import (
	"strings"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// Query is a normalised query split into tokens once, so hot loops over
// hundreds of candidates do not re-normalise or re-split it.
type Query struct {
	// Raw is the query as typed.
	Raw string

	// Normalized is whitespace-collapsed, lowercased and diacritic-free.
	Normalized string

	// Tokens is Normalized split on whitespace, never containing empties.
	Tokens []string

	folded       string
	foldedTokens []string
}

// NewQuery prepares a raw query for matching.
func NewQuery(raw string) Query {
	normalized := NormalizeText(raw)
	q := Query{
		Raw:        raw,
		Normalized: normalized,
		Tokens:     strings.Fields(normalized),
	}
	if hasApostrophe(normalized) {
		q.folded = NormalizeQueryWhitespace(foldApostrophes(normalized))
		q.foldedTokens = strings.Fields(q.folded)
	}
	return q
}

// IsBlank returns true if the query has no tokens.
func (q Query) IsBlank() bool {
	return len(q.Tokens) == 0
}

// Len returns the normalised query length in runes.
func (q Query) Len() int {
	return len([]rune(q.Normalized))
}

// Extends returns true if this query starts with prefix.
func (q Query) Extends(prefix string) bool {
	return prefix != "" && strings.HasPrefix(q.Normalized, prefix)
}

// CalculateMatchPriority returns the tier of text for query.
// A blank query never matches.
func CalculateMatchPriority(text, query string) domain.MatchTier {
	return PriorityForQuery(text, NewQuery(query))
}

// CalculateMatchPriorityWithNickname returns TierNickname when the nickname
// contains the query, otherwise the tier of text.
func CalculateMatchPriorityWithNickname(text, nickname, query string) domain.MatchTier {
	return PriorityWithNicknameForQuery(text, nickname, NewQuery(query))
}

// PriorityForQuery is CalculateMatchPriority with a prepared query.
func PriorityForQuery(text string, q Query) domain.MatchTier {
	return PriorityForNormalized(NormalizeText(text), q)
}

// PriorityWithNicknameForQuery is CalculateMatchPriorityWithNickname with a
// prepared query.
func PriorityWithNicknameForQuery(text, nickname string, q Query) domain.MatchTier {
	if NicknameMatches(NormalizeText(nickname), q) {
		return domain.TierNickname
	}
	return PriorityForQuery(text, q)
}

// NicknameMatches reports whether a nickname already passed through
// NormalizeText contains q.
func NicknameMatches(normalizedNickname string, q Query) bool {
	if q.IsBlank() || normalizedNickname == "" {
		return false
	}
	if strings.Contains(normalizedNickname, q.Normalized) {
		return true
	}
	if q.folded != "" || hasApostrophe(normalizedNickname) {
		folded := q.folded
		if folded == "" {
			folded = q.Normalized
		}
		return strings.Contains(foldApostrophes(normalizedNickname), folded)
	}
	return false
}

// PriorityForNormalized scores text that has already been through
// NormalizeText. Text containing apostrophes is also scored with them
// folded away, and the better tier wins.
func PriorityForNormalized(normalizedText string, q Query) domain.MatchTier {
	if q.IsBlank() {
		return domain.TierNoMatch
	}

	tier := tierFor(normalizedText, q.Normalized, q.Tokens)
	if tier == domain.TierPrefix {
		return tier
	}

	if q.folded != "" || hasApostrophe(normalizedText) {
		foldedQuery, foldedTokens := q.Normalized, q.Tokens
		if q.folded != "" {
			foldedQuery, foldedTokens = q.folded, q.foldedTokens
		}
		if len(foldedTokens) > 0 {
			if alt := tierFor(foldApostrophes(normalizedText), foldedQuery, foldedTokens); alt < tier {
				tier = alt
			}
		}
	}
	return tier
}

// tierFor applies the tier rules:
//
//   - multi-token: prefix of the full query is tier 1, every token contained
//     somewhere is tier 3, anything else is no match
//   - single token: prefix is tier 1, word prefix is tier 2, substring is tier 3
func tierFor(text, query string, tokens []string) domain.MatchTier {
	if strings.HasPrefix(text, query) {
		return domain.TierPrefix
	}

	if len(tokens) > 1 {
		if containsAll(text, tokens) {
			return domain.TierContains
		}
		return domain.TierNoMatch
	}

	token := tokens[0]
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) || strings.HasPrefix(word, token) {
			return domain.TierWordPrefix
		}
	}

	if strings.Contains(text, query) {
		return domain.TierContains
	}
	return domain.TierNoMatch
}

func containsAll(text string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}

// HasContainingMatch reports whether text contains every query token.
func HasContainingMatch(text string, q Query) bool {
	if q.IsBlank() {
		return false
	}
	return containsAll(NormalizeText(text), q.Tokens)
}

// GetBestMatchPriority returns the best tier across several text fields.
func GetBestMatchPriority(query string, fields ...string) domain.MatchTier {
	return BestPriorityForQuery(NewQuery(query), fields...)
}

// BestPriorityForQuery is GetBestMatchPriority with a prepared query.
func BestPriorityForQuery(q Query, fields ...string) domain.MatchTier {
	best := domain.TierNoMatch
	if q.IsBlank() {
		return best
	}
	for _, f := range fields {
		if f == "" {
			continue
		}
		if tier := PriorityForQuery(f, q); tier < best {
			best = tier
			if best == domain.TierPrefix {
				break
			}
		}
	}
	return best
}
