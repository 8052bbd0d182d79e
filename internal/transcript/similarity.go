package transcript

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

// Similarity returns the normalized edit-distance similarity of a and b in
// [0, 1]: (maxLen − levenshtein(a, b)) / maxLen, where maxLen is the rune
// count of the longer string. Identical strings score 1.0; two empty
// strings score 1.0 by convention; empty vs non-empty scores 0.0.
//
// The score is symmetric: the longer/shorter roles are assigned by length,
// not by argument order. Cost is O(len(a)·len(b)).
func Similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := matchr.Levenshtein(a, b)
	return float64(maxLen-dist) / float64(maxLen)
}
