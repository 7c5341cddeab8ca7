package ranking

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

// SortOrder picks the secondary key for matches in the same tier.
type SortOrder int

const (
	// ByName orders by display text, case-insensitively.
	ByName SortOrder = iota

	// ByUsage orders by launch count, most used first, then by name.
	ByUsage
)

// SortMatches orders matches for display:
//
//  1. exact matches before fuzzy matches
//  2. exact: tier ascending; fuzzy: score descending
//  3. usage descending (ByUsage only), then display text
//  4. ID, so equal names never depend on input order
func SortMatches(matches []domain.Match, order SortOrder) {
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.IsFuzzy != b.IsFuzzy {
			return !a.IsFuzzy
		}
		if !a.IsFuzzy && a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.IsFuzzy && a.Score != b.Score {
			return a.Score > b.Score
		}
		if order == ByUsage && a.Candidate.UsageCount != b.Candidate.UsageCount {
			return a.Candidate.UsageCount > b.Candidate.UsageCount
		}
		if c := col.CompareString(a.Candidate.DisplayText, b.Candidate.DisplayText); c != 0 {
			return c < 0
		}
		return a.Candidate.ID < b.Candidate.ID
	})
}

// SortCandidatesByName orders candidates alphabetically, case-insensitively.
func SortCandidatesByName(candidates []domain.Candidate) {
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)

	sort.SliceStable(candidates, func(i, j int) bool {
		if c := col.CompareString(candidates[i].DisplayText, candidates[j].DisplayText); c != 0 {
			return c < 0
		}
		return candidates[i].ID < candidates[j].ID
	})
}

// lessByName is the cheap comparison used inside FindMatches.
func lessByName(a, b domain.Candidate) bool {
	an, bn := strings.ToLower(a.DisplayText), strings.ToLower(b.DisplayText)
	if an != bn {
		return an < bn
	}
	return a.ID < b.ID
}

// Truncate caps matches at limit. A non-positive limit keeps everything.
func Truncate(matches []domain.Match, limit int) []domain.Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
