// Package ranking scores launcher candidates against a free-text query.
//
// Everything here is pure and total: no function returns an error and
// every input string, including blank and non-Latin text, is valid.
//
//   - NormalizeForSearch / NormalizeQueryWhitespace prepare text for comparison
//   - CalculateMatchPriority assigns a discrete tier (0 best, 4 no match)
//   - FuzzyMatcher scores approximate matches when no tier applies
//   - Sort orders matches deterministically for display
package ranking
