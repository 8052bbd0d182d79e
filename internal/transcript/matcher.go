package transcript

import "strings"

const (
	// containmentBonus is the scoring slack granted to vocabulary entries
	// that contain the input as a substring: a contained fragment is
	// accepted even when its similarity is up to this much below the
	// current best. A short correct fragment ("curl") should beat a longer
	// weak fuzzy match.
	containmentBonus = 0.1

	// containmentMinLen is the input length the containment tie-break
	// requires (strictly greater than), so that tiny fragments like "up"
	// cannot hijack the scan.
	containmentMinLen = 3
)

// FindBestExerciseMatch returns the vocabulary entry that best matches
// input, or ok=false when no entry's similarity strictly exceeds
// threshold. Exact vocabulary hits and correction-table hits bypass the
// threshold entirely.
//
// Pass [DefaultMatchThreshold] unless a caller-specific bar is needed.
func (e *Engine) FindBestExerciseMatch(input string, threshold float64) (match string, ok bool) {
	match, _, ok = e.bestMatch(input, threshold)
	return match, ok
}

// bestMatch implements the selection order: exact vocabulary lookup,
// correction-table lookup, then a full fuzzy scan. The fuzzy scan tracks
// the best score starting at threshold, so a candidate must score strictly
// greater than threshold to be selected; containment candidates may be
// accepted within [containmentBonus] below the running best, which can
// lower the bar for subsequent entries.
func (e *Engine) bestMatch(input string, threshold float64) (match string, score float64, ok bool) {
	input = strings.ToLower(strings.TrimSpace(input))

	if e.vocab.Contains(input) {
		return input, 1.0, true
	}
	if repl, hit := e.corrections.Lookup(input); hit {
		return repl, 1.0, true
	}

	best := threshold
	for _, phrase := range e.vocab.Phrases() {
		s := Similarity(input, phrase)
		contained := len(input) > containmentMinLen && strings.Contains(phrase, input)
		if s > best || (contained && s > best-containmentBonus) {
			best = s
			match = phrase
		}
	}
	if match == "" {
		return "", 0, false
	}
	return match, best, true
}
