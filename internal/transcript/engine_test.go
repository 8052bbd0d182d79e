package transcript

import (
	"testing"

	"github.com/gymsage/voicelift/internal/vocab"
)

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	e := NewEngine()
	if e.Vocabulary() != vocab.Default() {
		t.Error("NewEngine should use the compiled-in vocabulary")
	}
}

func TestNewEngine_WithVocabulary(t *testing.T) {
	t.Parallel()

	v := vocab.NewVocabulary("zercher squat")
	e := NewEngine(WithVocabulary(v))

	if got, ok := e.FindBestExerciseMatch("zercher squat", DefaultMatchThreshold); !ok || got != "zercher squat" {
		t.Errorf("got (%q, %v), want (zercher squat, true)", got, ok)
	}
	if got, ok := e.FindBestExerciseMatch("bench press", DefaultMatchThreshold); ok {
		t.Errorf("default vocabulary leaked: got (%q, true)", got)
	}
}

func TestNewEngine_WithCorrections(t *testing.T) {
	t.Parallel()

	c := vocab.NewCorrections(map[string]string{"zerker": "zercher squat"})
	e := NewEngine(
		WithVocabulary(vocab.NewVocabulary("zercher squat")),
		WithCorrections(c),
	)

	if got := e.CorrectTranscript("zerker felt heavy"); got != "zercher squat felt heavy" {
		t.Errorf("CorrectTranscript = %q, want %q", got, "zercher squat felt heavy")
	}
	if got := e.CorrectTranscript("tree sets"); got != "tree sets" {
		t.Errorf("default corrections leaked: got %q", got)
	}
}

func TestNewEngine_ThresholdOptions(t *testing.T) {
	t.Parallel()

	// "squxy" scores 0.5 against "squats": below the default 0.6 bar,
	// above a lowered one.
	v := vocab.NewVocabulary("squats")

	strict := NewEngine(WithVocabulary(v))
	if got := strict.CorrectTranscript("squxy felt strong"); got != "squxy felt strong" {
		t.Errorf("default threshold: CorrectTranscript = %q, want input unchanged", got)
	}

	loose := NewEngine(WithVocabulary(v), WithMatchThreshold(0.45))
	if got := loose.CorrectTranscript("squxy felt strong"); got != "squats felt strong" {
		t.Errorf("lowered threshold: CorrectTranscript = %q, want %q", got, "squats felt strong")
	}

	extractor := NewEngine(WithVocabulary(v), WithWordThreshold(0.45))
	if got := extractor.ExtractExerciseName("squxy"); got != "squats" {
		t.Errorf("lowered word threshold: ExtractExerciseName = %q, want squats", got)
	}

	// Non-positive values keep the defaults.
	noop := NewEngine(WithMatchThreshold(0), WithBigramThreshold(-1), WithWordThreshold(0))
	if noop.matchThreshold != DefaultMatchThreshold ||
		noop.bigramThreshold != BigramMatchThreshold ||
		noop.wordThreshold != WordMatchThreshold {
		t.Error("non-positive threshold options should be ignored")
	}
}
