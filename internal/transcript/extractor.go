package transcript

import "strings"

// ExtractExerciseName returns the most likely exercise name in transcript.
// The transcript is normalized first, then scanned left to right: two-word
// windows at [BigramMatchThreshold], then single words at
// [WordMatchThreshold]. When nothing matches, the first min(3, wordCount)
// normalized words are returned as a best-effort default — structurally
// valid output even when it is semantically wrong.
//
// ExtractExerciseName never fails; the empty transcript yields "".
func (e *Engine) ExtractExerciseName(transcript string) string {
	name, _ := e.extractNormalized(e.CorrectTranscript(transcript))
	return name
}

// extractNormalized runs the extraction scans over text that has already
// been through [Engine.CorrectTranscript]. The second return value reports
// whether the first-words fallback was used.
func (e *Engine) extractNormalized(normalized string) (string, bool) {
	words := strings.Fields(normalized)

	for i := 0; i+1 < len(words); i++ {
		if match, _, ok := e.bestMatch(words[i]+" "+words[i+1], e.bigramThreshold); ok {
			return match, false
		}
	}
	for _, w := range words {
		if match, _, ok := e.bestMatch(w, e.wordThreshold); ok {
			return match, false
		}
	}

	n := min(3, len(words))
	return strings.Join(words[:n], " "), true
}
