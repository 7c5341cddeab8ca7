package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sercha-launcher/internal/core/domain"
)

func match(id, name string, tier domain.MatchTier, usage int) domain.Match {
	return domain.Match{
		Candidate: domain.Candidate{ID: id, DisplayText: name, UsageCount: usage},
		Tier:      tier,
	}
}

func fuzzyMatch(id, name string, score float64) domain.Match {
	return domain.Match{
		Candidate: domain.Candidate{ID: id, DisplayText: name},
		Tier:      domain.TierNoMatch,
		Score:     score,
		IsFuzzy:   true,
	}
}

func ids(matches []domain.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Candidate.ID
	}
	return out
}

func TestSortMatches_ExactBeforeFuzzy(t *testing.T) {
	matches := []domain.Match{
		fuzzyMatch("f", "Alpha", 99),
		match("e", "Zulu", domain.TierContains, 0),
	}

	SortMatches(matches, ByName)

	assert.Equal(t, []string{"e", "f"}, ids(matches))
}

func TestSortMatches_TierThenName(t *testing.T) {
	matches := []domain.Match{
		match("a", "Alpha", domain.TierWordPrefix, 0),
		match("c", "charlie", domain.TierPrefix, 0),
		match("b", "Bravo", domain.TierPrefix, 0),
		match("n", "November", domain.TierNickname, 0),
	}

	SortMatches(matches, ByName)

	assert.Equal(t, []string{"n", "b", "c", "a"}, ids(matches))
}

func TestSortMatches_ByUsage(t *testing.T) {
	build := func() []domain.Match {
		return []domain.Match{
			match("alpha", "Alpha", domain.TierPrefix, 5),
			match("zeta", "Zeta", domain.TierPrefix, 10),
		}
	}

	byUsage := build()
	SortMatches(byUsage, ByUsage)
	assert.Equal(t, []string{"zeta", "alpha"}, ids(byUsage))

	byName := build()
	SortMatches(byName, ByName)
	assert.Equal(t, []string{"alpha", "zeta"}, ids(byName))
}

func TestSortMatches_FuzzyByScoreThenName(t *testing.T) {
	matches := []domain.Match{
		fuzzyMatch("low", "Aardvark", 61),
		fuzzyMatch("tie-b", "Bravo", 80),
		fuzzyMatch("tie-a", "alpha", 80),
	}

	SortMatches(matches, ByName)

	assert.Equal(t, []string{"tie-a", "tie-b", "low"}, ids(matches))
}

func TestSortMatches_Deterministic(t *testing.T) {
	build := func(order []int) []domain.Match {
		all := []domain.Match{
			match("2", "Mail", domain.TierPrefix, 0),
			match("1", "Mail", domain.TierPrefix, 0),
			match("3", "mail", domain.TierPrefix, 0),
			fuzzyMatch("4", "Maps", 70),
		}
		out := make([]domain.Match, len(order))
		for i, idx := range order {
			out[i] = all[idx]
		}
		return out
	}

	first := build([]int{0, 1, 2, 3})
	second := build([]int{3, 2, 1, 0})
	SortMatches(first, ByName)
	SortMatches(second, ByName)

	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, "4", first[3].Candidate.ID)
}

func TestSortCandidatesByName(t *testing.T) {
	cands := []domain.Candidate{
		{ID: "3", DisplayText: "zoom"},
		{ID: "1", DisplayText: "Éclair"},
		{ID: "2", DisplayText: "apple"},
	}

	SortCandidatesByName(cands)

	assert.Equal(t, "apple", cands[0].DisplayText)
	assert.Equal(t, "Éclair", cands[1].DisplayText)
	assert.Equal(t, "zoom", cands[2].DisplayText)
}

func TestTruncate(t *testing.T) {
	matches := []domain.Match{{}, {}, {}}

	assert.Len(t, Truncate(matches, 2), 2)
	assert.Len(t, Truncate(matches, 5), 3)
	assert.Len(t, Truncate(matches, 0), 3)
}
