package ranking

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks builds a fresh transformer; transformers are stateful and
// must not be shared between goroutines.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// NormalizeForSearch removes combining diacritical marks and lowercases text
// using Unicode case mapping. Applying it twice yields the same result.
func NormalizeForSearch(text string) string {
	if text == "" {
		return ""
	}
	if isASCII(text) {
		return strings.ToLower(text)
	}

	stripped, _, err := transform.String(stripMarks(), text)
	if err != nil {
		stripped = text
	}
	lowered := cases.Lower(language.Und).String(stripped)
	if isASCII(lowered) {
		return lowered
	}

	// Lowercasing can decompose into base + mark (e.g. dotted capital I).
	again, _, err := transform.String(stripMarks(), lowered)
	if err != nil {
		return lowered
	}
	return again
}

// NormalizeQueryWhitespace turns non-breaking spaces into regular spaces,
// collapses whitespace runs to one space and trims both ends.
func NormalizeQueryWhitespace(text string) string {
	if text == "" {
		return ""
	}
	text = strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0', '\u2007', '\u202f':
			return ' '
		}
		return r
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeText applies NormalizeQueryWhitespace then NormalizeForSearch.
// Candidate text and queries both go through it before comparison.
func NormalizeText(text string) string {
	return NormalizeForSearch(NormalizeQueryWhitespace(text))
}

// apostrophes are folded away so "What'sApp" and "whatsapp" compare equal.
var apostrophes = map[rune]bool{
	'\'':     true,
	'`':      true,
	'\u00b4': true,
	'\u02bc': true,
	'\u2018': true,
	'\u2019': true,
}

func hasApostrophe(s string) bool {
	for _, r := range s {
		if apostrophes[r] {
			return true
		}
	}
	return false
}

func foldApostrophes(s string) string {
	return strings.Map(func(r rune) rune {
		if apostrophes[r] {
			return -1
		}
		return r
	}, s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
