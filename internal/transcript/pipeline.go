package transcript

import "context"

// Well-known Correction.Method values.
const (
	// MethodTable marks an exact correction-table substitution.
	MethodTable = "table"

	// MethodBigram marks a fuzzy two-word vocabulary substitution.
	MethodBigram = "bigram"

	// MethodWord marks a fuzzy single-word vocabulary substitution.
	MethodWord = "word"

	// MethodPhonetic marks a substitution produced by a [PhoneticMatcher].
	MethodPhonetic = "phonetic"

	// MethodLLM marks a substitution produced by the LLM correction stage.
	MethodLLM = "llm"
)

// Correction captures a single substitution made while normalizing a
// transcript.
type Correction struct {
	// Original is the text as produced by the speech recognizer.
	Original string

	// Corrected is the replacement selected by the pipeline.
	Corrected string

	// Confidence is the pipeline's confidence in this substitution
	// (0.0–1.0). Exact table hits are 1.0; fuzzy hits carry their
	// similarity score.
	Confidence float64

	// Method is one of the Method* constants and identifies the stage
	// that produced the substitution.
	Method string
}

// WordConfidence is an optional per-word confidence score supplied by the
// client-side speech recognizer alongside the transcript text.
type WordConfidence struct {
	Word       string
	Confidence float64
}

// Transcript is the input to a correction [Pipeline]: the raw
// speech-to-text output and, when the recognizer provides them, per-word
// confidence scores used to gate the LLM stage.
type Transcript struct {
	// Text is the raw transcript as spoken, e.g. "bentch press tree sets
	// of for reps".
	Text string

	// Words carries per-word confidence data. May be empty.
	Words []WordConfidence
}

// CorrectedTranscript is the output of a [Pipeline.Correct] call.
type CorrectedTranscript struct {
	// Original is the input transcript, unmodified.
	Original Transcript

	// Corrected is the fully normalized transcript text, suitable for the
	// downstream set/rep parser.
	Corrected string

	// ExerciseName is the most likely exercise name found in Corrected.
	// Always non-empty for non-empty input (best-effort fallback).
	ExerciseName string

	// Corrections itemises every substitution applied, in the order the
	// stages ran. An empty (non-nil) slice means the transcript was
	// already clean.
	Corrections []Correction
}

// Pipeline normalizes raw voice transcripts for workout logging.
//
// Implementations must be safe for concurrent use.
type Pipeline interface {
	// Correct normalizes t and returns the corrected text, the extracted
	// exercise name, and an itemised record of every substitution.
	//
	// Returns a non-nil *CorrectedTranscript on success. The only error
	// sources are optional network-backed stages (LLM correction); the
	// deterministic stages never fail.
	Correct(ctx context.Context, t Transcript) (*CorrectedTranscript, error)
}

// PhoneticMatcher resolves a word or short phrase to a vocabulary phrase
// based on pronunciation similarity. It supplements edit-distance matching
// for mishearings that are phonetically close but textually far
// ("skwaat" → "squat").
//
// Implementations must be safe for concurrent use.
type PhoneticMatcher interface {
	// Match attempts to find the phrase from phrases most phonetically
	// similar to word.
	//
	// When matched is false, corrected must equal word unchanged and
	// confidence must be 0. Implementations define their own similarity
	// threshold for deciding when a match is sufficient.
	Match(word string, phrases []string) (corrected string, confidence float64, matched bool)
}
