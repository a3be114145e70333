// Package match decides whether an entry's text satisfies the keyword
// filter. Matching is plain case-insensitive substring containment; a
// keyword may match inside a longer word, which is accepted imprecision.
package match

import (
	"strings"

	"github.com/strazca-sk/monitor-dennikov/internal/domain"
)

// Keywords combines the global list with a source's extras. Order has no
// effect on the match outcome.
func Keywords(global, extra []string) []string {
	combined := make([]string, 0, len(global)+len(extra))
	combined = append(combined, global...)
	combined = append(combined, extra...)
	return combined
}

// Matches reports whether any keyword occurs in the entry's lower-cased
// title+summary haystack.
func Matches(entry domain.Entry, keywords []string) bool {
	haystack := strings.ToLower(entry.Title + " " + entry.Summary)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
