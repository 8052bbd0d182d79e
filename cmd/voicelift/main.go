// Command voicelift corrects voice workout transcripts and extracts
// exercise names from them.
//
// Transcripts are taken from the command line arguments, or from stdin
// (one per line) when no arguments are given:
//
//	voicelift "bentch press tree sets of for reps"
//	voicelift -extract "dead lift five sets"
//	cat transcripts.txt | voicelift -config config.yaml
//
// With -serve the process instead runs the operational HTTP listener
// (/healthz, /readyz, /metrics) until interrupted.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	anyllmlib "github.com/mozilla-ai/any-llm-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gymsage/voicelift/internal/config"
	"github.com/gymsage/voicelift/internal/health"
	"github.com/gymsage/voicelift/internal/observe"
	"github.com/gymsage/voicelift/internal/resilience"
	"github.com/gymsage/voicelift/internal/transcript"
	"github.com/gymsage/voicelift/internal/transcript/llmcorrect"
	"github.com/gymsage/voicelift/internal/transcript/phonetic"
	"github.com/gymsage/voicelift/internal/vocab"
	"github.com/gymsage/voicelift/pkg/provider/llm"
	"github.com/gymsage/voicelift/pkg/provider/llm/anyllm"
	"github.com/gymsage/voicelift/pkg/provider/llm/openai"
)

// defaultOpsListenAddr is used with -serve when the config does not name
// an ops listener address.
const defaultOpsListenAddr = ":9090"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	extract := flag.Bool("extract", false, "print the extracted exercise name instead of the corrected transcript")
	serve := flag.Bool("serve", false, "run the operational HTTP listener until interrupted")
	tips := flag.Bool("tips", false, "print voice input tips and exit")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg := &config.Config{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "voicelift: config file %q not found; copy configs/example.yaml to get started\n", *configPath)
			} else {
				fmt.Fprintf(os.Stderr, "voicelift: %v\n", err)
			}
			return 1
		}
		cfg = loaded
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	slog.SetDefault(newLogger(cfg.Service.LogLevel))

	if *tips {
		for _, tip := range transcript.VoiceInputTips() {
			fmt.Println("- " + tip)
		}
		return 0
	}

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	otelShutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("telemetry init failed", "err", err)
		return 1
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(sctx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Pipeline ──────────────────────────────────────────────────────────────
	pipeline, vocabulary, err := buildPipeline(cfg)
	if err != nil {
		slog.Error("failed to build correction pipeline", "err", err)
		return 1
	}

	if *serve {
		return runOps(ctx, cfg, vocabulary)
	}

	// ── Batch correction ──────────────────────────────────────────────────────
	transcripts, err := collectTranscripts(flag.Args())
	if err != nil {
		slog.Error("failed to read transcripts", "err", err)
		return 1
	}
	if len(transcripts) == 0 {
		fmt.Fprintln(os.Stderr, "voicelift: no transcripts given; pass them as arguments or on stdin")
		return 2
	}

	results, err := pipeline.CorrectBatch(ctx, transcripts)
	if err != nil {
		slog.Error("correction failed", "err", err)
		return 1
	}
	for _, r := range results {
		if *extract {
			fmt.Println(r.ExerciseName)
		} else {
			fmt.Println(r.Corrected)
		}
	}
	return 0
}

// buildPipeline assembles the correction pipeline from the configuration:
// the deterministic engine with the merged vocabulary, plus the optional
// phonetic and LLM stages.
func buildPipeline(cfg *config.Config) (*transcript.CorrectionPipeline, *vocab.Vocabulary, error) {
	vocabulary, corrections, err := buildVocabulary(cfg.Vocabulary)
	if err != nil {
		return nil, nil, err
	}

	engine := transcript.NewEngine(
		transcript.WithVocabulary(vocabulary),
		transcript.WithCorrections(corrections),
		transcript.WithMatchThreshold(cfg.Matching.MatchThreshold),
		transcript.WithBigramThreshold(cfg.Matching.BigramThreshold),
		transcript.WithWordThreshold(cfg.Matching.WordThreshold),
	)

	opts := []transcript.PipelineOption{
		transcript.WithMetrics(observe.DefaultMetrics()),
		transcript.WithBatchConcurrency(cfg.Service.BatchConcurrency),
	}

	if cfg.Phonetic.Enabled {
		var popts []phonetic.Option
		if cfg.Phonetic.PhoneticThreshold > 0 {
			popts = append(popts, phonetic.WithPhoneticThreshold(cfg.Phonetic.PhoneticThreshold))
		}
		if cfg.Phonetic.FuzzyThreshold > 0 {
			popts = append(popts, phonetic.WithFuzzyThreshold(cfg.Phonetic.FuzzyThreshold))
		}
		opts = append(opts, transcript.WithPhoneticMatcher(phonetic.New(popts...)))
		slog.Info("phonetic stage enabled")
	}

	if cfg.LLM.Enabled {
		provider, err := buildLLMProvider(cfg.LLM)
		if err != nil {
			return nil, nil, err
		}
		var copts []llmcorrect.Option
		if cfg.LLM.Temperature > 0 {
			copts = append(copts, llmcorrect.WithTemperature(cfg.LLM.Temperature))
		}
		opts = append(opts, transcript.WithLLMCorrector(llmcorrect.New(provider, copts...)))
		if cfg.LLM.OnLowConfidence > 0 {
			opts = append(opts, transcript.WithLLMOnLowConfidence(cfg.LLM.OnLowConfidence))
		}
		slog.Info("llm stage enabled",
			"provider", cfg.LLM.Provider.Name,
			"model", cfg.LLM.Provider.Model,
			"fallbacks", len(cfg.LLM.Fallbacks),
		)
	}

	return transcript.NewPipeline(engine, opts...), vocabulary, nil
}

// buildVocabulary merges the configured vocabulary file and inline extras
// on top of the compiled-in defaults.
func buildVocabulary(vc config.VocabularyConfig) (*vocab.Vocabulary, *vocab.Corrections, error) {
	var file *vocab.File
	if vc.File != "" {
		loaded, err := vocab.LoadFile(vc.File)
		if err != nil {
			return nil, nil, err
		}
		file = loaded
	}
	vocabulary, corrections := file.Build()

	if len(vc.ExtraPhrases) > 0 {
		vocabulary = vocabulary.Merge(vc.ExtraPhrases...)
	}
	if len(vc.ExtraCorrections) > 0 {
		corrections = corrections.Merge(vc.ExtraCorrections)
	}
	return vocabulary, corrections, nil
}

// buildLLMProvider instantiates the primary LLM backend and wraps it with
// circuit-breaker failover across the configured fallbacks.
func buildLLMProvider(lc config.LLMConfig) (llm.Provider, error) {
	reg := config.NewRegistry()
	registerBuiltinProviders(reg)

	primary, err := reg.CreateLLM(lc.Provider)
	if err != nil {
		return nil, fmt.Errorf("create llm provider %q: %w", lc.Provider.Name, err)
	}
	if len(lc.Fallbacks) == 0 {
		return primary, nil
	}

	fb := resilience.NewLLMFallback(primary, lc.Provider.Name, resilience.FallbackConfig{})
	for _, entry := range lc.Fallbacks {
		p, err := reg.CreateLLM(entry)
		if err != nil {
			return nil, fmt.Errorf("create llm fallback %q: %w", entry.Name, err)
		}
		fb.AddFallback(entry.Name, p)
	}
	return fb, nil
}

// registerBuiltinProviders wires the shipped LLM provider factories into
// reg. "openai" uses the OpenAI SDK directly; every any-llm-go backend is
// registered under its plain name and under an "anyllm:" alias.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterLLM("openai", func(entry config.ProviderEntry) (llm.Provider, error) {
		var opts []openai.Option
		if entry.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(entry.BaseURL))
		}
		if org := optString(entry.Options, "organization"); org != "" {
			opts = append(opts, openai.WithOrganization(org))
		}
		return openai.New(entry.APIKey, entry.Model, opts...)
	})

	for _, backend := range []string{
		"openai", "anthropic", "gemini", "ollama",
		"deepseek", "mistral", "groq", "llamacpp", "llamafile",
	} {
		factory := func(entry config.ProviderEntry) (llm.Provider, error) {
			var opts []anyllmlib.Option
			if entry.APIKey != "" {
				opts = append(opts, anyllmlib.WithAPIKey(entry.APIKey))
			}
			if entry.BaseURL != "" {
				opts = append(opts, anyllmlib.WithBaseURL(entry.BaseURL))
			}
			return anyllm.New(backend, entry.Model, opts...)
		}
		reg.RegisterLLM("anyllm:"+backend, factory)
		if backend != "openai" {
			reg.RegisterLLM(backend, factory)
		}
	}
}

// runOps serves the operational endpoints until the signal context is
// cancelled.
func runOps(ctx context.Context, cfg *config.Config, vocabulary *vocab.Vocabulary) int {
	addr := cfg.Service.OpsListenAddr
	if addr == "" {
		addr = defaultOpsListenAddr
	}

	mux := http.NewServeMux()
	health.New(health.Checker{
		Name: "vocabulary",
		Check: func(context.Context) error {
			if vocabulary.Len() == 0 {
				return errors.New("vocabulary is empty")
			}
			return nil
		},
	}).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(observe.DefaultMetrics())(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("ops listener started", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		slog.Error("ops listener failed", "err", err)
		return 1
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping")
	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		slog.Error("ops listener shutdown error", "err", err)
		return 1
	}
	return 0
}

// collectTranscripts returns one transcript per argument, or one per
// non-blank stdin line when no arguments are given.
func collectTranscripts(args []string) ([]transcript.Transcript, error) {
	var transcripts []transcript.Transcript
	if len(args) > 0 {
		for _, a := range args {
			transcripts = append(transcripts, transcript.Transcript{Text: a})
		}
		return transcripts, nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		transcripts = append(transcripts, transcript.Transcript{Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return transcripts, nil
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// optString extracts a string value from a provider Options map[string]any.
// Returns "" if the map is nil, the key is absent, or the value is not a string.
func optString(opts map[string]any, key string) string {
	if opts == nil {
		return ""
	}
	s, _ := opts[key].(string)
	return s
}
