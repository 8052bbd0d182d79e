// Package transcript implements GymSage's voice transcript correction and
// exercise-name matching engine.
//
// Raw speech-to-text output describing a gym set is rarely clean — "bentch
// press tree sets of for reps" is typical. The engine normalizes such
// transcripts into vocabulary the downstream set/rep parser understands,
// using three deterministic layers:
//
//  1. Correction table: exact O(1) replacement of known noisy tokens
//     (number words, units, frequent mishearings).
//  2. Fuzzy matching: normalized Levenshtein similarity against the
//     exercise vocabulary, with a containment tie-break that favours
//     short correct fragments over longer weak matches.
//  3. Extraction: progressively looser threshold scans (bigrams, then
//     single words) that always produce a usable exercise name.
//
// The deterministic [Engine] is total: every operation accepts any string,
// never fails, and degrades to passing unrecognized text through
// unchanged. On top of it, [CorrectionPipeline] adds optional phonetic and
// LLM-assisted stages and records every substitution as a [Correction].
//
// All types are immutable after construction and safe for concurrent use.
package transcript

import "github.com/gymsage/voicelift/internal/vocab"

// Matching thresholds. Multi-word phrases are more distinctive, so bigram
// extraction uses a lower bar than single-word extraction.
const (
	// DefaultMatchThreshold is the similarity a candidate must strictly
	// exceed in general-purpose matching.
	DefaultMatchThreshold = 0.6

	// BigramMatchThreshold is used when extracting exercise names from
	// two-word windows.
	BigramMatchThreshold = 0.7

	// WordMatchThreshold is used when extracting exercise names from
	// single words.
	WordMatchThreshold = 0.8
)

// Engine is the deterministic transcript correction core. It holds the
// exercise vocabulary and correction table, both immutable, and exposes
// the three total operations: [Engine.CorrectTranscript],
// [Engine.FindBestExerciseMatch], and [Engine.ExtractExerciseName].
//
// Engine performs no I/O and allocates only per-call working memory; it is
// safe for concurrent use without locks.
type Engine struct {
	vocab       *vocab.Vocabulary
	corrections *vocab.Corrections

	matchThreshold  float64
	bigramThreshold float64
	wordThreshold   float64
}

// EngineOption is a functional option for configuring an [Engine].
type EngineOption func(*Engine)

// WithVocabulary replaces the default exercise vocabulary.
func WithVocabulary(v *vocab.Vocabulary) EngineOption {
	return func(e *Engine) {
		e.vocab = v
	}
}

// WithCorrections replaces the default correction table.
func WithCorrections(c *vocab.Corrections) EngineOption {
	return func(e *Engine) {
		e.corrections = c
	}
}

// WithMatchThreshold overrides [DefaultMatchThreshold] for the
// normalization passes. Non-positive values are ignored.
func WithMatchThreshold(t float64) EngineOption {
	return func(e *Engine) {
		if t > 0 {
			e.matchThreshold = t
		}
	}
}

// WithBigramThreshold overrides [BigramMatchThreshold] for bigram
// extraction. Non-positive values are ignored.
func WithBigramThreshold(t float64) EngineOption {
	return func(e *Engine) {
		if t > 0 {
			e.bigramThreshold = t
		}
	}
}

// WithWordThreshold overrides [WordMatchThreshold] for single-word
// extraction. Non-positive values are ignored.
func WithWordThreshold(t float64) EngineOption {
	return func(e *Engine) {
		if t > 0 {
			e.wordThreshold = t
		}
	}
}

// NewEngine returns an [Engine] backed by the compiled-in vocabulary and
// correction table unless overridden by options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		vocab:           vocab.Default(),
		corrections:     vocab.DefaultCorrections(),
		matchThreshold:  DefaultMatchThreshold,
		bigramThreshold: BigramMatchThreshold,
		wordThreshold:   WordMatchThreshold,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Vocabulary returns the engine's exercise vocabulary.
func (e *Engine) Vocabulary() *vocab.Vocabulary {
	return e.vocab
}
