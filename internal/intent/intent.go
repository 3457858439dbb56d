// Package intent extracts (location, hour) pairs from free-form
// natural-language queries like "is it safe to go to Metro Station at 22".
// It is a bounded pattern matcher: extend the verb or anchor lists by
// editing the pattern, and prefer a small explicit grammar over growing
// regex complexity if requirements outgrow it.
package intent

import (
	"regexp"
	"strconv"
)

// queryRe matches a travel verb phrase, a lazily-captured location phrase,
// an "at"/"around" anchor, and a 1-2 digit hour. Case-insensitive.
var queryRe = regexp.MustCompile(`(?i)(?:go to|going to|visit|travel to)\s(.+?)\s(?:at|around)\s(\d{1,2})`)

// Intent is a (location, hour) pair pulled from a query.
type Intent struct {
	// Location as written in the query, un-normalized.
	Location string

	// Hour as parsed from the query. Deliberately not range-checked
	// here: a query like "at 72" yields Hour=72 and callers decide how
	// to treat hours outside 0-23 (the engine degrades to semantic-only
	// search).
	Hour int
}

// Extract pulls a travel intent out of the query. The second return is
// false when no intent is present, which is a normal outcome rather than
// an error: callers skip risk scoring and fall back to semantic search.
func Extract(query string) (Intent, bool) {
	m := queryRe.FindStringSubmatch(query)
	if m == nil {
		return Intent{}, false
	}

	hour, err := strconv.Atoi(m[2])
	if err != nil {
		// Unreachable with a \d{1,2} capture, but keep the regex and
		// the parse honest independently.
		return Intent{}, false
	}

	return Intent{Location: m[1], Hour: hour}, true
}

// ValidHour reports whether the extracted hour is a real hour of day.
func (i Intent) ValidHour() bool {
	return i.Hour >= 0 && i.Hour <= 23
}
