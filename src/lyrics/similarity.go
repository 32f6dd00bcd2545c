package lyrics

import (
	"strings"

	"github.com/gosimple/unidecode"
)

// Similarity computes a normalized Levenshtein similarity between a and b in
// [0,1]. Comparison is case-insensitive, ignores leading/trailing whitespace
// and folds accented characters to their ASCII form, so "Café" and "cafe"
// compare equal. Two empty strings score 1.
func Similarity(a, b string) float64 {
	na := normalize(a)
	nb := normalize(b)

	if na == nb {
		return 1
	}

	ra := []rune(na)
	rb := []rune(nb)
	longest := max(len(ra), len(rb))

	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

func normalize(s string) string {
	return unidecode.Unidecode(strings.ToLower(strings.TrimSpace(s)))
}

// levenshtein is the classic dynamic-programming edit distance with unit costs
// for insertion, deletion and substitution, kept to two rows of the table.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
