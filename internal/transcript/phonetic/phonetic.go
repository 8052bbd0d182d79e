// Package phonetic implements the transcript.PhoneticMatcher interface
// using Double Metaphone codes combined with Jaro-Winkler similarity for
// ranked candidate selection.
//
// The matcher proceeds in two stages:
//
//  1. Phonetic candidate filtering: Double Metaphone codes are computed
//     for each word of the input and of each vocabulary phrase. A phrase
//     becomes a candidate when any code overlaps.
//
//  2. Jaro-Winkler ranking: among phonetic candidates, the phrase with
//     the highest Jaro-Winkler similarity (case-insensitive, on the
//     original strings) wins — provided its score clears the phonetic
//     threshold. When no phonetic candidate exists, a secondary pass
//     accepts a pure Jaro-Winkler match at a stricter fuzzy threshold.
//
// Multi-word phrases ("romanian deadlift") are supported: codes are
// computed per word, and ranking considers the best pairwise word score
// in addition to the full-string score.
package phonetic

import (
	"strings"

	"github.com/antzucaro/matchr"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched phrase to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic candidate is found and the matcher falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.fuzzyThreshold = threshold
	}
}

// Matcher matches misheard words to vocabulary phrases by pronunciation.
// It is read-only after construction and safe for concurrent use.
type Matcher struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
}

// New returns a [Matcher] configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match finds the phrase from phrases most phonetically similar to word.
// word may be a single word or a space-separated n-gram window.
//
// When matched is false, corrected equals word unchanged and confidence
// is 0.
func (m *Matcher) Match(word string, phrases []string) (corrected string, confidence float64, matched bool) {
	wordLower := strings.ToLower(strings.TrimSpace(word))
	if len(phrases) == 0 || wordLower == "" {
		return word, 0, false
	}

	wordTokens := strings.Fields(wordLower)
	inputCodes := metaphoneCodes(wordTokens)

	var (
		bestPhrase   string
		bestScore    float64
		bestPhonetic bool
	)

	for _, phrase := range phrases {
		phraseLower := strings.ToLower(strings.TrimSpace(phrase))
		if phraseLower == "" {
			continue
		}
		phraseTokens := strings.Fields(phraseLower)

		score := rankScore(wordLower, phraseLower, wordTokens, phraseTokens)
		phonetic := codesOverlap(inputCodes, metaphoneCodes(phraseTokens))

		switch {
		case phonetic && score >= m.phoneticThreshold:
			if !bestPhonetic || score > bestScore {
				bestPhrase, bestScore, bestPhonetic = phrase, score, true
			}
		case !phonetic && !bestPhonetic:
			if score >= m.fuzzyThreshold && score > bestScore {
				bestPhrase, bestScore = phrase, score
			}
		}
	}

	if bestPhrase == "" {
		return word, 0, false
	}
	return bestPhrase, bestScore, true
}

// rankScore is the Jaro-Winkler score used for candidate ranking: the
// maximum of the full-string comparison and the best pairwise token
// comparison (one spoken word often corresponds to one phrase word).
func rankScore(inputFull, phraseFull string, inputTokens, phraseTokens []string) float64 {
	score := matchr.JaroWinkler(inputFull, phraseFull, false)
	for _, it := range inputTokens {
		for _, pt := range phraseTokens {
			if s := matchr.JaroWinkler(it, pt, false); s > score {
				score = s
			}
		}
	}
	return score
}

// metaphoneCodes returns the union of all Double Metaphone codes for the
// tokens. Empty codes (too-short words, no consonants) are excluded.
func metaphoneCodes(tokens []string) map[string]struct{} {
	codes := make(map[string]struct{}, len(tokens)*2)
	for _, t := range tokens {
		primary, secondary := matchr.DoubleMetaphone(t)
		if primary != "" {
			codes[primary] = struct{}{}
		}
		if secondary != "" {
			codes[secondary] = struct{}{}
		}
	}
	return codes
}

// codesOverlap reports whether the two code sets share at least one code.
func codesOverlap(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for code := range a {
		if _, ok := b[code]; ok {
			return true
		}
	}
	return false
}
