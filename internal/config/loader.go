package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known LLM provider names. Used by [Validate] to
// warn about unrecognised provider names. Names of the form "anyllm:<backend>"
// are validated against the backend part.
var ValidProviderNames = []string{
	"openai", "anthropic", "ollama", "gemini", "deepseek", "mistral", "groq",
	"llamacpp", "llamafile",
}

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Service
	if cfg.Service.LogLevel != "" && !cfg.Service.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("service.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Service.LogLevel))
	}
	if cfg.Service.BatchConcurrency < 0 {
		errs = append(errs, fmt.Errorf("service.batch_concurrency %d must not be negative", cfg.Service.BatchConcurrency))
	}

	// Matching thresholds must stay inside the similarity range.
	for _, th := range []struct {
		name  string
		value float64
	}{
		{"matching.match_threshold", cfg.Matching.MatchThreshold},
		{"matching.bigram_threshold", cfg.Matching.BigramThreshold},
		{"matching.word_threshold", cfg.Matching.WordThreshold},
		{"phonetic.phonetic_threshold", cfg.Phonetic.PhoneticThreshold},
		{"phonetic.fuzzy_threshold", cfg.Phonetic.FuzzyThreshold},
		{"llm.on_low_confidence", cfg.LLM.OnLowConfidence},
	} {
		if th.value < 0 || th.value > 1 {
			errs = append(errs, fmt.Errorf("%s %.2f is out of range [0, 1]", th.name, th.value))
		}
	}

	// Vocabulary extras must not be blank entries.
	for i, p := range cfg.Vocabulary.ExtraPhrases {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("vocabulary.extra_phrases[%d] is blank", i))
		}
	}
	for k, v := range cfg.Vocabulary.ExtraCorrections {
		if strings.TrimSpace(k) == "" || strings.TrimSpace(v) == "" {
			errs = append(errs, fmt.Errorf("vocabulary.extra_corrections entry %q: %q has a blank side", k, v))
		}
	}

	// LLM stage
	if cfg.LLM.Enabled {
		if cfg.LLM.Provider.Name == "" {
			errs = append(errs, errors.New("llm.provider.name is required when llm.enabled is true"))
		} else {
			validateProviderName("llm.provider", cfg.LLM.Provider.Name)
		}
		for i, fb := range cfg.LLM.Fallbacks {
			prefix := fmt.Sprintf("llm.fallbacks[%d]", i)
			if fb.Name == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			} else {
				validateProviderName(prefix, fb.Name)
			}
		}
		if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
			errs = append(errs, fmt.Errorf("llm.temperature %.2f is out of range [0, 2]", cfg.LLM.Temperature))
		}
	} else if cfg.LLM.Provider.Name != "" {
		slog.Warn("llm.provider is configured but llm.enabled is false; the LLM stage will not run")
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is not found in the
// [ValidProviderNames] list. "anyllm:<backend>" names are checked against
// the backend part.
func validateProviderName(field, name string) {
	candidate := strings.TrimPrefix(name, "anyllm:")
	for _, known := range ValidProviderNames {
		if candidate == known {
			return
		}
	}
	slog.Warn("unknown provider name, may be a typo or a third-party provider",
		"field", field,
		"name", name,
		"known", ValidProviderNames,
	)
}
