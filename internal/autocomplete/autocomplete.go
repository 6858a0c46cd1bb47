// Package autocomplete suggests the best historical value for a free-text
// field, seeded from distinct values the user has entered before.
package autocomplete

import (
	"sort"
	"strings"
)

// FindBestMatch returns the candidate that best completes input,
// case-insensitively. Ranking: an exact match wins immediately; otherwise the
// shortest candidate whose lowercase form starts with the lowercased input;
// otherwise the shortest candidate containing it as a substring. Among
// equal-length candidates the first-encountered one wins (the sort is stable).
// ok is false when nothing matches or input is empty.
func FindBestMatch(input string, candidates []string) (match string, ok bool) {
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	lower := strings.ToLower(input)

	var prefix, substring []string
	for _, c := range candidates {
		lc := strings.ToLower(c)
		switch {
		case lc == lower:
			return c, true
		case strings.HasPrefix(lc, lower):
			prefix = append(prefix, c)
		case strings.Contains(lc, lower):
			substring = append(substring, c)
		}
	}

	if best, ok := shortest(prefix); ok {
		return best, true
	}
	return shortest(substring)
}

func shortest(matches []string) (string, bool) {
	if len(matches) == 0 {
		return "", false
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i]) < len(matches[j])
	})
	return matches[0], true
}
