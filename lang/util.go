package lang

import (
	"sort"

	"github.com/sahilm/fuzzy"
)

func sortedKeys[T any](m map[string]T) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// closestMatch returns the best fuzzy match for name among candidates, or
// "" when nothing is close. Used to attach did-you-mean hints to unknown
// function and undefined variable errors.
func closestMatch(name string, candidates []string) string {
	matches := fuzzy.Find(name, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}
