package recipe

import "strings"

// NormalizeTitle is the single normalization applied before comparing titles:
// surrounding whitespace is trimmed and the result lowercased. Conflict
// detection is an exact match on normalized titles, not a substring match.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// TitlesEqual reports whether two titles are the same after normalization.
func TitlesEqual(a, b string) bool {
	return NormalizeTitle(a) == NormalizeTitle(b)
}
