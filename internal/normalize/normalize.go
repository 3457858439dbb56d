// Package normalize canonicalizes free-text location and description
// strings so that keying, matching, and embedding all operate on one
// consistent form. Embeddings must always be computed on normalized text,
// never raw input, to keep the query space aligned with stored vectors.
package normalize

import (
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for performance.
var (
	// reNonWord matches every rune that is neither a word character nor
	// whitespace; each run is replaced with a single space.
	reNonWord = regexp.MustCompile(`[^\w\s]+`)

	// reSpaceRun matches runs of whitespace for collapsing.
	reSpaceRun = regexp.MustCompile(`\s+`)
)

// correction rewrites a known misspelling or squashed compound by plain
// substring replacement. Applied in order, after punctuation stripping and
// before whitespace collapsing, so corrected forms re-normalize cleanly.
type correction struct {
	wrong, right string
}

var corrections = []correction{
	{"sattion", "station"},
	{"stn", "station"},
	{"metrostation", "metro station"},
	{"busstop", "bus stop"},
	{"railwaystation", "railway station"},
}

// Text lower-cases the input, replaces every non-word/non-space character
// with a space, collapses whitespace runs to a single space, and trims the
// ends. Idempotent: Text(Text(x)) == Text(x). Returns "" for empty or
// whitespace-only input; there are no error conditions.
func Text(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	return collapse(s)
}

// Location is the strict variant used for location keys. It applies the
// same pipeline as Text plus the correction table, so "Bus Stn" and
// "Bus Station" normalize to the same key. Idempotent.
func Location(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	for _, c := range corrections {
		s = strings.ReplaceAll(s, c.wrong, c.right)
	}
	return collapse(s)
}

// Corrections returns a copy of the configured correction pairs, in
// application order. Exposed for tests and diagnostics.
func Corrections() [][2]string {
	out := make([][2]string, len(corrections))
	for i, c := range corrections {
		out[i] = [2]string{c.wrong, c.right}
	}
	return out
}

func collapse(s string) string {
	return strings.TrimSpace(reSpaceRun.ReplaceAllString(s, " "))
}
