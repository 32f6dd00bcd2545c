package cache

import (
	"sort"
	"strings"
)

// Key builds a deterministic cache key from an operation prefix and a
// parameter map. Parameters are rendered "name:value" in lexicographic name
// order, so identical parameter sets produce identical keys regardless of map
// iteration order, and distinct prefixes never collide on the same parameters.
func Key(prefix string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ":" + params[name]
	}

	return prefix + "::" + strings.Join(parts, "|")
}
