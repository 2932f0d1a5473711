package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	zeroWidth    = runes.Remove(runes.Predicate(isZeroWidth))

	openGuillemet  = regexp.MustCompile(`«[\s\p{Zs}]*`)
	closeGuillemet = regexp.MustCompile(`[\s\p{Zs}]*»`)
	spacedPunct    = regexp.MustCompile(` ([!?;:])`)

	quoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'", "`", "'", "´", "'",
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "″", `"`,
	)
)

// Normalize returns the canonical form of a free-text answer. Two answers
// match iff their canonical forms are equal.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := strings.TrimSpace(strings.ToLower(text))
	if folded, _, err := transform.String(accentFolder, s); err == nil {
		s = folded
	}

	s = openGuillemet.ReplaceAllString(s, `"`)
	s = closeGuillemet.ReplaceAllString(s, `"`)
	s = quoteReplacer.Replace(s)
	s = tidySpaces(s)

	if stripped, _, err := transform.String(zeroWidth, s); err == nil && stripped != s {
		// Removing a zero-width character may leave two spaces side by side.
		s = tidySpaces(stripped)
	}

	return s
}

// Match reports whether two texts have the same canonical form.
func Match(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func tidySpaces(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return spacedPunct.ReplaceAllString(s, "$1")
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u2060', '\ufeff':
		return true
	}

	return false
}
