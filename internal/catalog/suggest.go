package catalog

import "strings"

// SuggestLimit is how many names the guess box offers at once.
const SuggestLimit = 3

// Suggest returns up to limit names that start with prefix, compared
// case-insensitively, in index order. An empty prefix suggests nothing.
func Suggest(names []string, prefix string, limit int) []string {
	out := []string{}
	if prefix == "" || limit <= 0 {
		return out
	}
	p := strings.ToLower(prefix)
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), p) {
			out = append(out, n)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
