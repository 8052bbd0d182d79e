// Package observe provides application-wide observability primitives for
// voicelift: OpenTelemetry metrics, tracing helpers, structured-logging
// enrichment, and HTTP middleware for the ops listener.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so the standard /metrics
// endpoint keeps working. A package-level default [Metrics] instance
// ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all voicelift metrics.
const meterName = "github.com/gymsage/voicelift"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types
// handle their own synchronisation.
type Metrics struct {
	// CorrectionDuration tracks end-to-end transcript correction latency,
	// including optional phonetic and LLM stages.
	CorrectionDuration metric.Float64Histogram

	// LLMDuration tracks the latency of LLM correction requests.
	LLMDuration metric.Float64Histogram

	// CorrectionsApplied counts substitutions applied to transcripts.
	// Use with attribute.String("method", ...) — table, bigram, word,
	// phonetic, or llm.
	CorrectionsApplied metric.Int64Counter

	// MatchScore tracks the confidence of accepted substitutions, by
	// method. Exact table hits record 1.0; fuzzy hits record their
	// similarity score.
	MatchScore metric.Float64Histogram

	// FallbackExtractions counts extractions that found no vocabulary
	// match and degraded to the first-words heuristic.
	FallbackExtractions metric.Int64Counter

	// ProviderRequests counts LLM provider API calls. Use with
	// attribute.String("provider", ...) and attribute.String("status", ...).
	ProviderRequests metric.Int64Counter

	// ProviderErrors counts LLM provider errors by provider name.
	ProviderErrors metric.Int64Counter

	// HTTPRequestDuration tracks ops-endpoint request time. Use with
	// attribute.String("method", ...), attribute.String("path", ...).
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). The
// deterministic passes land in the sub-millisecond buckets; LLM round
// trips land in the 0.1–5 s range.
var latencyBuckets = []float64{
	0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
}

// scoreBuckets covers the similarity range with the interesting resolution
// around the 0.6–0.8 thresholds.
var scoreBuckets = []float64{0.5, 0.6, 0.7, 0.75, 0.8, 0.85, 0.9, 0.95, 1}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CorrectionDuration, err = m.Float64Histogram("voicelift.correction.duration",
		metric.WithDescription("End-to-end transcript correction latency."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LLMDuration, err = m.Float64Histogram("voicelift.llm.duration",
		metric.WithDescription("Latency of LLM correction requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.CorrectionsApplied, err = m.Int64Counter("voicelift.corrections.applied",
		metric.WithDescription("Total transcript substitutions by correction method."),
	); err != nil {
		return nil, err
	}
	if met.MatchScore, err = m.Float64Histogram("voicelift.match.score",
		metric.WithDescription("Confidence of accepted substitutions by correction method."),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	); err != nil {
		return nil, err
	}
	if met.FallbackExtractions, err = m.Int64Counter("voicelift.extraction.fallbacks",
		metric.WithDescription("Total extractions that degraded to the first-words heuristic."),
	); err != nil {
		return nil, err
	}
	if met.ProviderRequests, err = m.Int64Counter("voicelift.provider.requests",
		metric.WithDescription("Total LLM provider API requests by provider and status."),
	); err != nil {
		return nil, err
	}
	if met.ProviderErrors, err = m.Int64Counter("voicelift.provider.errors",
		metric.WithDescription("Total LLM provider errors by provider."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("voicelift.http.request.duration",
		metric.WithDescription("Ops HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it
// on first call using [otel.GetMeterProvider]. Subsequent calls return the
// same pointer. Panics if instrument creation fails (should not happen
// with the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity
// at call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordCorrection increments the corrections counter for one applied
// substitution.
func (m *Metrics) RecordCorrection(ctx context.Context, method string) {
	m.CorrectionsApplied.Add(ctx, 1,
		metric.WithAttributes(attribute.String("method", method)),
	)
}

// RecordMatchScore records the confidence of one accepted substitution.
func (m *Metrics) RecordMatchScore(ctx context.Context, method string, score float64) {
	m.MatchScore.Record(ctx, score,
		metric.WithAttributes(attribute.String("method", method)),
	)
}

// RecordFallbackExtraction increments the fallback-extraction counter.
func (m *Metrics) RecordFallbackExtraction(ctx context.Context) {
	m.FallbackExtractions.Add(ctx, 1)
}

// RecordProviderRequest records one LLM provider request with its outcome.
func (m *Metrics) RecordProviderRequest(ctx context.Context, provider, status string) {
	m.ProviderRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("provider", provider),
			attribute.String("status", status),
		),
	)
}

// RecordProviderError records one LLM provider error.
func (m *Metrics) RecordProviderError(ctx context.Context, provider string) {
	m.ProviderErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("provider", provider)),
	)
}
