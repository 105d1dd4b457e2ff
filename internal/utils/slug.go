package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Slugify converts a title into a lowercase, hyphen-separated, ASCII-only
// identifier. Portuguese diacritics ("Notícias de Verão") fold to their base
// letters ("noticias-de-verao"). Returns "" for input with no usable characters.
func Slugify(input string) string {
	folded := removeDiacritics(input)
	lower := strings.ToLower(folded)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	normalized := hyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// removeDiacritics decomposes accented characters and strips the combining
// marks, so "ç" becomes "c" and "ã" becomes "a".
func removeDiacritics(input string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFKC)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}
