package transcript_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/gymsage/voicelift/internal/observe"
	"github.com/gymsage/voicelift/internal/transcript"
	"github.com/gymsage/voicelift/internal/transcript/llmcorrect"
	llm "github.com/gymsage/voicelift/pkg/provider/llm"
	"github.com/gymsage/voicelift/pkg/provider/llm/mock"
)

// stubPhonetic maps exact window strings to replacements.
type stubPhonetic struct {
	mapping map[string]string
}

func (s *stubPhonetic) Match(word string, _ []string) (string, float64, bool) {
	if repl, ok := s.mapping[word]; ok {
		return repl, 0.8, true
	}
	return word, 0, false
}

func TestPipeline_EngineOnly(t *testing.T) {
	t.Parallel()
	p := transcript.NewPipeline(transcript.NewEngine())

	result, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "bentch press tree sets of for reps",
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if result.Corrected != "bench press 3 sets of 4 reps" {
		t.Errorf("Corrected = %q, want %q", result.Corrected, "bench press 3 sets of 4 reps")
	}
	if result.ExerciseName != "bench press" {
		t.Errorf("ExerciseName = %q, want bench press", result.ExerciseName)
	}
	if len(result.Corrections) == 0 {
		t.Fatal("expected itemised corrections")
	}
	for _, c := range result.Corrections {
		if c.Method == "" {
			t.Errorf("correction %+v has no method", c)
		}
	}
}

func TestPipeline_PhoneticStage(t *testing.T) {
	t.Parallel()
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithPhoneticMatcher(&stubPhonetic{
			mapping: map[string]string{"skwatz": "squats"},
		}),
	)

	result, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "skwatz heavy today",
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if result.Corrected != "squats heavy today" {
		t.Errorf("Corrected = %q, want %q", result.Corrected, "squats heavy today")
	}

	found := false
	for _, c := range result.Corrections {
		if c.Method == transcript.MethodPhonetic && c.Original == "skwatz" && c.Corrected == "squats" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing phonetic correction record, got %+v", result.Corrections)
	}
}

func TestPipeline_LLMStageOnLowConfidence(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{
			Content: `{"corrected_text": "squats 3 sets", "corrections": [{"original": "blorp", "corrected": "squats", "confidence": 0.8}]}`,
		},
	}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	result, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "blorp 3 sets",
		Words: []transcript.WordConfidence{
			{Word: "blorp", Confidence: 0.2},
			{Word: "3", Confidence: 0.95},
			{Word: "sets", Confidence: 0.95},
		},
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if len(provider.CompleteCalls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.CompleteCalls))
	}
	if result.Corrected != "squats 3 sets" {
		t.Errorf("Corrected = %q, want %q", result.Corrected, "squats 3 sets")
	}
	if result.ExerciseName != "squats" {
		t.Errorf("ExerciseName = %q, want squats", result.ExerciseName)
	}

	found := false
	for _, c := range result.Corrections {
		if c.Method == transcript.MethodLLM && c.Corrected == "squats" {
			found = true
		}
	}
	if !found {
		t.Errorf("missing llm correction record, got %+v", result.Corrections)
	}

	// The low-confidence span must be surfaced to the model.
	msg := provider.CompleteCalls[0].Req.Messages[0].Content
	if !strings.Contains(msg, "blorp") {
		t.Errorf("user message should mention the low-confidence span, got: %s", msg)
	}
}

func TestPipeline_LLMSkippedWhenConfident(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	_, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "bench press 3 sets",
		Words: []transcript.WordConfidence{
			{Word: "bench", Confidence: 0.95},
			{Word: "press", Confidence: 0.95},
			{Word: "3", Confidence: 0.95},
			{Word: "sets", Confidence: 0.95},
		},
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if len(provider.CompleteCalls) != 0 {
		t.Errorf("provider called %d times, want 0", len(provider.CompleteCalls))
	}
}

func TestPipeline_LLMSkippedForAlreadyCorrectedWords(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	// "bentch" is low confidence but the correction table already fixed it.
	_, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "bentch press",
		Words: []transcript.WordConfidence{
			{Word: "bentch", Confidence: 0.2},
			{Word: "press", Confidence: 0.95},
		},
	})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if len(provider.CompleteCalls) != 0 {
		t.Errorf("provider called %d times, want 0", len(provider.CompleteCalls))
	}
}

func TestPipeline_LLMRunsWithoutWordConfidences(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{
		CompleteResponse: &llm.CompletionResponse{
			Content: `{"corrected_text": "bench press", "corrections": []}`,
		},
	}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	_, err := p.Correct(context.Background(), transcript.Transcript{Text: "bench press"})
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if len(provider.CompleteCalls) != 1 {
		t.Errorf("provider called %d times, want 1", len(provider.CompleteCalls))
	}
}

func TestPipeline_LLMErrorPropagated(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{CompleteErr: errors.New("backend down")}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	_, err := p.Correct(context.Background(), transcript.Transcript{Text: "bentch press something"})
	if err == nil {
		t.Fatal("expected error from failing LLM stage")
	}
}

func TestPipeline_CorrectBatchPreservesOrder(t *testing.T) {
	t.Parallel()
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithBatchConcurrency(2),
	)

	inputs := []transcript.Transcript{
		{Text: "bentch press tree sets"},
		{Text: "dead lift won set"},
		{Text: "squad heavy"},
		{Text: "pull up five reps"},
	}
	results, err := p.CorrectBatch(context.Background(), inputs)
	if err != nil {
		t.Fatalf("CorrectBatch: %v", err)
	}
	if len(results) != len(inputs) {
		t.Fatalf("results count = %d, want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("results[%d] is nil", i)
		}
		if r.Original.Text != inputs[i].Text {
			t.Errorf("results[%d].Original = %q, want %q", i, r.Original.Text, inputs[i].Text)
		}
	}
	if !strings.Contains(results[1].Corrected, "deadlift") {
		t.Errorf("results[1].Corrected = %q, want it to contain deadlift", results[1].Corrected)
	}
}

func TestPipeline_CorrectBatchError(t *testing.T) {
	t.Parallel()

	provider := &mock.Provider{CompleteErr: errors.New("backend down")}
	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithLLMCorrector(llmcorrect.New(provider)),
	)

	_, err := p.CorrectBatch(context.Background(), []transcript.Transcript{
		{Text: "bentch press"},
		{Text: "squad heavy"},
	})
	if err == nil {
		t.Fatal("expected batch error when a transcript fails")
	}
}

func TestPipeline_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	p := transcript.NewPipeline(transcript.NewEngine(),
		transcript.WithMetrics(metrics),
	)
	if _, err := p.Correct(context.Background(), transcript.Transcript{
		Text: "bentch press tree sets",
	}); err != nil {
		t.Fatalf("Correct: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	var foundDuration, foundCorrections bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch m.Name {
			case "voicelift.correction.duration":
				foundDuration = true
			case "voicelift.corrections.applied":
				foundCorrections = true
			}
		}
	}
	if !foundDuration {
		t.Error("correction duration was not recorded")
	}
	if !foundCorrections {
		t.Error("applied corrections were not recorded")
	}
}
