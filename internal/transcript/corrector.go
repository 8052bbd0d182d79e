package transcript

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gymsage/voicelift/internal/observe"
	"github.com/gymsage/voicelift/internal/transcript/llmcorrect"
)

const (
	defaultLLMConfidenceThreshold = 0.5
	defaultBatchConcurrency       = 4
)

// PipelineOption is a functional option for configuring a
// [CorrectionPipeline].
type PipelineOption func(*CorrectionPipeline)

// WithPhoneticMatcher attaches a [PhoneticMatcher] stage that runs after
// the deterministic engine. When nil (the default), the stage is skipped.
func WithPhoneticMatcher(m PhoneticMatcher) PipelineOption {
	return func(p *CorrectionPipeline) {
		p.phonetic = m
	}
}

// WithLLMCorrector attaches an [llmcorrect.Corrector] as the final
// correction stage. When nil (the default), the stage is skipped.
func WithLLMCorrector(c *llmcorrect.Corrector) PipelineOption {
	return func(p *CorrectionPipeline) {
		p.llmCorrector = c
	}
}

// WithLLMOnLowConfidence sets the recognizer word-confidence threshold
// below which a word is flagged as a low-confidence span and passed to the
// LLM corrector (when one is configured). Default: 0.5.
//
// Words without any confidence data (the transcript has no Words slice)
// always trigger the LLM stage when it is configured.
func WithLLMOnLowConfidence(threshold float64) PipelineOption {
	return func(p *CorrectionPipeline) {
		p.llmThreshold = threshold
	}
}

// WithMetrics attaches an [observe.Metrics] instance. When nil (the
// default), no metrics are recorded.
func WithMetrics(m *observe.Metrics) PipelineOption {
	return func(p *CorrectionPipeline) {
		p.metrics = m
	}
}

// WithBatchConcurrency bounds the number of transcripts corrected
// concurrently by [CorrectionPipeline.CorrectBatch]. Default: 4.
func WithBatchConcurrency(n int) PipelineOption {
	return func(p *CorrectionPipeline) {
		if n > 0 {
			p.batchLimit = n
		}
	}
}

// CorrectionPipeline is the staged [Pipeline] implementation. Stages run
// in order:
//
//  1. [Engine] — the deterministic table/bigram/word normalization core.
//     Always runs, never fails.
//  2. [PhoneticMatcher] — optional in-process phonetic alignment for
//     mishearings edit distance cannot reach.
//  3. [llmcorrect.Corrector] — optional LLM review of low-confidence
//     spans. The only stage that can return an error.
//
// CorrectionPipeline is safe for concurrent use.
type CorrectionPipeline struct {
	engine       *Engine
	phonetic     PhoneticMatcher
	llmCorrector *llmcorrect.Corrector
	llmThreshold float64
	metrics      *observe.Metrics
	batchLimit   int
}

// Ensure CorrectionPipeline satisfies the Pipeline interface at compile time.
var _ Pipeline = (*CorrectionPipeline)(nil)

// NewPipeline constructs a [CorrectionPipeline] around engine with the
// supplied options. The phonetic and LLM stages are disabled by default.
func NewPipeline(engine *Engine, opts ...PipelineOption) *CorrectionPipeline {
	p := &CorrectionPipeline{
		engine:       engine,
		llmThreshold: defaultLLMConfidenceThreshold,
		batchLimit:   defaultBatchConcurrency,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Correct normalizes t through the configured stages and extracts the
// exercise name from the result.
//
// Context cancellation is respected by the LLM stage; the deterministic
// stages are CPU-bound and bounded, so they run to completion.
func (p *CorrectionPipeline) Correct(ctx context.Context, t Transcript) (*CorrectedTranscript, error) {
	start := time.Now()
	ctx, span := observe.StartSpan(ctx, "transcript.Correct")
	defer span.End()

	result := &CorrectedTranscript{
		Original:    t,
		Corrections: []Correction{},
	}

	// Stage 1: deterministic engine.
	corrected, corrections := p.engine.correct(t.Text)

	// Stage 2: phonetic alignment over the residual text.
	if p.phonetic != nil {
		corrected, corrections = p.applyPhonetic(corrected, corrections)
	}

	// Stage 3: LLM review of low-confidence spans.
	if p.llmCorrector != nil {
		spans := p.lowConfidenceSpans(t.Words, corrections)
		if len(t.Words) == 0 || len(spans) > 0 {
			llmStart := time.Now()
			text, llmCorrections, err := p.llmCorrector.Correct(ctx, corrected, p.engine.vocab.Phrases(), spans)
			if p.metrics != nil {
				p.metrics.LLMDuration.Record(ctx, time.Since(llmStart).Seconds())
			}
			if err != nil {
				return nil, err
			}
			corrected = text
			for _, c := range llmCorrections {
				corrections = append(corrections, Correction{
					Original:   c.Original,
					Corrected:  c.Corrected,
					Confidence: c.Confidence,
					Method:     MethodLLM,
				})
			}
		}
	}

	name, usedFallback := p.engine.extractNormalized(corrected)
	result.Corrected = corrected
	result.ExerciseName = name
	result.Corrections = append(result.Corrections, corrections...)

	if p.metrics != nil {
		p.metrics.CorrectionDuration.Record(ctx, time.Since(start).Seconds())
		for _, c := range result.Corrections {
			p.metrics.RecordCorrection(ctx, c.Method)
			p.metrics.RecordMatchScore(ctx, c.Method, c.Confidence)
		}
		if usedFallback {
			p.metrics.RecordFallbackExtraction(ctx)
		}
	}
	return result, nil
}

// CorrectBatch corrects transcripts concurrently, preserving input order
// in the result slice. Concurrency is bounded by [WithBatchConcurrency].
// The first stage error cancels the remaining work.
func (p *CorrectionPipeline) CorrectBatch(ctx context.Context, transcripts []Transcript) ([]*CorrectedTranscript, error) {
	results := make([]*CorrectedTranscript, len(transcripts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.batchLimit)
	for i, t := range transcripts {
		g.Go(func() error {
			r, err := p.Correct(ctx, t)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// applyPhonetic scans the corrected text with n-gram windows, largest
// first, so multi-word vocabulary phrases take precedence over partial
// single-word matches. Tokens that already are canonical phrases are
// skipped.
func (p *CorrectionPipeline) applyPhonetic(text string, corrections []Correction) (string, []Correction) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return text, corrections
	}

	phrases := p.engine.vocab.Phrases()
	maxWords := 1
	for _, ph := range phrases {
		if n := strings.Count(ph, " ") + 1; n > maxWords {
			maxWords = n
		}
	}

	var output []string
	i := 0
	for i < len(tokens) {
		maxN := maxWords
		if i+maxN > len(tokens) {
			maxN = len(tokens) - i
		}

		matched := false
		for n := maxN; n >= 1; n-- {
			window := strings.Join(tokens[i:i+n], " ")
			if p.engine.vocab.Contains(window) {
				// Already canonical; consume as-is.
				output = append(output, tokens[i:i+n]...)
				i += n
				matched = true
				break
			}
			phrase, conf, ok := p.phonetic.Match(window, phrases)
			if !ok || phrase == window {
				continue
			}
			output = append(output, strings.Fields(phrase)...)
			corrections = append(corrections, Correction{
				Original:   window,
				Corrected:  phrase,
				Confidence: conf,
				Method:     MethodPhonetic,
			})
			i += n
			matched = true
			break
		}
		if !matched {
			output = append(output, tokens[i])
			i++
		}
	}

	return strings.Join(output, " "), corrections
}

// lowConfidenceSpans returns the recognizer words scored below the LLM
// threshold that no earlier stage has already corrected.
func (p *CorrectionPipeline) lowConfidenceSpans(words []WordConfidence, corrections []Correction) []string {
	if len(words) == 0 {
		return nil
	}

	alreadyCorrected := make(map[string]struct{}, len(corrections))
	for _, c := range corrections {
		for _, w := range strings.Fields(strings.ToLower(c.Original)) {
			alreadyCorrected[w] = struct{}{}
		}
	}

	var spans []string
	for _, wc := range words {
		if wc.Confidence >= p.llmThreshold {
			continue
		}
		if _, done := alreadyCorrected[strings.ToLower(wc.Word)]; done {
			continue
		}
		spans = append(spans, wc.Word)
	}
	return spans
}
