package ranking

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"github.com/xrash/smetrics"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// FuzzyMatcher scores approximate matches for queries that produced no tier.
// The score is a 0-100 similarity: the better of edit-distance similarity
// (against the whole text and each word) and subsequence coverage.
type FuzzyMatcher struct {
	cfg domain.FuzzyConfig
}

// NewFuzzyMatcher creates a matcher for one source's configuration.
func NewFuzzyMatcher(cfg domain.FuzzyConfig) *FuzzyMatcher {
	return &FuzzyMatcher{cfg: cfg}
}

// Config returns the matcher configuration.
func (m *FuzzyMatcher) Config() domain.FuzzyConfig {
	return m.cfg
}

// Applies reports whether fuzzy matching runs for q at all. Short queries
// are skipped so 1-2 character keystrokes never pay for fuzzy scoring.
func (m *FuzzyMatcher) Applies(q Query) bool {
	return m.cfg.Enabled && !q.IsBlank() && q.Len() >= m.cfg.MinQueryLength
}

// Match scores one candidate. It returns the score and whether it clears
// the threshold.
func (m *FuzzyMatcher) Match(q Query, text, nickname string) (float64, bool) {
	if !m.Applies(q) {
		return 0, false
	}
	score := Similarity(q, text)
	if nickname != "" {
		if s := Similarity(q, nickname); s > score {
			score = s
		}
	}
	return score, score >= m.cfg.MatchThreshold
}

// FindMatches returns every candidate whose primary text or nickname clears
// the threshold, best score first.
func (m *FuzzyMatcher) FindMatches(query string, candidates []domain.Candidate) []domain.Match {
	q := NewQuery(query)
	if !m.Applies(q) {
		return []domain.Match{}
	}

	matches := make([]domain.Match, 0)
	for i := range candidates {
		score, ok := m.Match(q, candidates[i].DisplayText, candidates[i].Nickname)
		if !ok {
			continue
		}
		matches = append(matches, domain.Match{
			Candidate: candidates[i],
			Tier:      m.cfg.Priority,
			Score:     score,
			IsFuzzy:   true,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return lessByName(matches[i].Candidate, matches[j].Candidate)
	})
	return matches
}

// Similarity returns a 0-100 score of how closely text resembles q.
func Similarity(q Query, text string) float64 {
	if q.IsBlank() {
		return 0
	}
	normalized := NormalizeText(text)
	if normalized == "" {
		return 0
	}

	best := editSimilarity(q.Normalized, normalized)
	words := strings.Fields(normalized)
	if len(words) > 1 {
		for _, w := range words {
			if s := editSimilarity(q.Normalized, w); s > best {
				best = s
			}
		}
	}

	if s := subsequenceCoverage(q.Normalized, normalized); s > best {
		best = s
	}
	return best
}

// editSimilarity is 100 * (1 - levenshtein / longer length), counted in runes.
func editSimilarity(a, b string) float64 {
	a, b = runeAlphabet(a, b)
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	dist := smetrics.WagnerFischer(a, b, 1, 1, 1)
	return 100 * (1 - float64(dist)/float64(longest))
}

// runeAlphabet re-encodes a and b with one byte per distinct rune, so
// byte-wise metrics see Cyrillic or CJK text rune by rune. ASCII input and
// pairs with more than 256 distinct runes are returned unchanged.
func runeAlphabet(a, b string) (string, string) {
	if isASCII(a) && isASCII(b) {
		return a, b
	}
	codes := make(map[rune]byte)
	encode := func(s string) ([]byte, bool) {
		out := make([]byte, 0, len(s))
		for _, r := range s {
			c, ok := codes[r]
			if !ok {
				if len(codes) == 256 {
					return nil, false
				}
				c = byte(len(codes))
				codes[r] = c
			}
			out = append(out, c)
		}
		return out, true
	}
	ea, ok := encode(a)
	if !ok {
		return a, b
	}
	eb, ok := encode(b)
	if !ok {
		return a, b
	}
	return string(ea), string(eb)
}

// subsequenceCoverage scores query characters found in order within text
// as the share of text they cover.
func subsequenceCoverage(query, text string) float64 {
	if utf8.RuneCountInString(query) > utf8.RuneCountInString(text) {
		return 0
	}
	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return 0
	}
	return 100 * float64(len(matches[0].MatchedIndexes)) / float64(len([]rune(text)))
}
