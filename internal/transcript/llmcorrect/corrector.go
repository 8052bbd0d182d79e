// Package llmcorrect implements a language-model-backed transcript
// correction stage for exercise names the deterministic engine could not
// resolve.
//
// The [Corrector] sends the working transcript text to an [llm.Provider]
// together with the exercise vocabulary. A conservative system prompt
// instructs the model to fix only words that look like misheard exercise
// names and to answer with structured JSON: the corrected text plus an
// itemised list of substitutions. Every change the model makes is then
// cross-checked against its own declared substitutions
// (see verify.go) — undeclared edits are reverted, so the model cannot
// silently rewrite sets, reps, or weights.
//
// This stage runs off the interactive path, so the round-trip latency is
// acceptable. An unparseable model response degrades to the input text
// unchanged rather than an error; the pipeline must continue.
package llmcorrect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gymsage/voicelift/pkg/provider/llm"
)

const defaultTemperature = 0.1

// systemPromptTemplate is the base system prompt. The exercise vocabulary
// is appended at call time.
const systemPromptTemplate = `You are a transcript correction assistant for a workout logging app.

Your task: fix misheard exercise names in the provided voice transcript.

Rules:
- ONLY correct words that appear to be misheard versions of the known exercise names listed below.
- Do NOT change numbers, units (kg, lbs), set/rep counts, or sentence structure.
- Be conservative — if you are not confident a word is a misheard exercise name, leave it unchanged.
- Corrected exercise names must match the canonical spelling from the list exactly.

Known exercises:
%s

Respond with ONLY a JSON object in this exact format (no markdown, no prose):
{
  "corrected_text": "<full corrected transcript>",
  "corrections": [
    {"original": "<original word>", "corrected": "<corrected word>", "confidence": <0.0-1.0>}
  ]
}

If no corrections are needed, return an empty corrections array and corrected_text equal to the input.`

// Correction captures a single substitution produced by the LLM stage.
// The pipeline maps these to its own correction records.
type Correction struct {
	// Original is the text as it appeared in the input transcript.
	Original string

	// Corrected is the canonical exercise name suggested by the model.
	Corrected string

	// Confidence is the model's reported confidence (0.0–1.0).
	Confidence float64
}

// modelResponse is the JSON structure the model is instructed to return.
type modelResponse struct {
	CorrectedText string `json:"corrected_text"`
	Corrections   []struct {
		Original   string  `json:"original"`
		Corrected  string  `json:"corrected"`
		Confidence float64 `json:"confidence"`
	} `json:"corrections"`
}

// Option is a functional option for configuring a [Corrector].
type Option func(*Corrector)

// WithTemperature sets the sampling temperature. Lower values produce more
// deterministic corrections. Default: 0.1.
func WithTemperature(temp float64) Option {
	return func(c *Corrector) {
		c.temperature = temp
	}
}

// Corrector uses an [llm.Provider] to fix misheard exercise names in
// transcript text. It is safe for concurrent use.
type Corrector struct {
	llm         llm.Provider
	temperature float64
}

// New returns a [Corrector] backed by provider.
func New(provider llm.Provider, opts ...Option) *Corrector {
	c := &Corrector{
		llm:         provider,
		temperature: defaultTemperature,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Correct asks the model to fix misheard exercise names in text, given the
// canonical vocabulary in phrases. lowConfidenceSpans, when non-empty, are
// highlighted in the user message as candidate mishearings.
//
// When the model response cannot be parsed, Correct returns text unchanged
// with a nil corrections slice and a nil error (graceful degradation).
// Context cancellation and transport errors are returned as errors.
func (c *Corrector) Correct(
	ctx context.Context,
	text string,
	phrases []string,
	lowConfidenceSpans []string,
) (string, []Correction, error) {
	if len(phrases) == 0 || strings.TrimSpace(text) == "" {
		return text, nil, nil
	}

	userMsg := text
	if len(lowConfidenceSpans) > 0 {
		userMsg = fmt.Sprintf(
			"Transcript: %s\n\nLow-confidence spans that may be misheard: %s",
			text,
			strings.Join(lowConfidenceSpans, ", "),
		)
	}

	resp, err := c.llm.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: buildSystemPrompt(phrases),
		Temperature:  c.temperature,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
	})
	if err != nil {
		return text, nil, fmt.Errorf("llmcorrect: complete: %w", err)
	}

	corrected, corrections, parseErr := parseResponse(resp.Content, text)
	if parseErr != nil {
		// Unparseable response: return the input unchanged, no error.
		return text, nil, nil //nolint:nilerr // intentional graceful fallback
	}

	// Revert any edit the model made but did not declare.
	corrected, corrections = verifyCorrectedText(text, corrected, corrections)

	return corrected, corrections, nil
}

// buildSystemPrompt formats the system prompt with the vocabulary list.
func buildSystemPrompt(phrases []string) string {
	var sb strings.Builder
	for _, p := range phrases {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	return fmt.Sprintf(systemPromptTemplate, sb.String())
}

// parseResponse unmarshals the model output, stripping markdown code
// fences first. Self-referential or empty substitutions are dropped.
func parseResponse(content, originalText string) (string, []Correction, error) {
	cleaned := stripMarkdown(content)

	var r modelResponse
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return "", nil, fmt.Errorf("llmcorrect: parse response: %w", err)
	}

	if r.CorrectedText == "" {
		return originalText, nil, nil
	}

	corrections := make([]Correction, 0, len(r.Corrections))
	for _, c := range r.Corrections {
		if c.Original == c.Corrected || c.Original == "" {
			continue
		}
		corrections = append(corrections, Correction{
			Original:   c.Original,
			Corrected:  c.Corrected,
			Confidence: c.Confidence,
		})
	}

	return r.CorrectedText, corrections, nil
}

// stripMarkdown removes optional code fences (```json ... ```) that some
// models wrap around JSON output.
func stripMarkdown(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```"} {
		if after, ok := strings.CutPrefix(s, prefix); ok {
			s = after
			break
		}
	}
	if before, ok := strings.CutSuffix(s, "```"); ok {
		s = before
	}
	return strings.TrimSpace(s)
}
