// Package config provides the configuration schema, loader, and provider
// registry for the voicelift transcript correction service.
package config

// LogLevel controls log verbosity for the voicelift service.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for voicelift.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Matching   MatchingConfig   `yaml:"matching"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Phonetic   PhoneticConfig   `yaml:"phonetic"`
	LLM        LLMConfig        `yaml:"llm"`
}

// ServiceConfig holds process-level settings: the ops listener and logging.
type ServiceConfig struct {
	// OpsListenAddr is the TCP address for the operational HTTP endpoints
	// (/healthz, /readyz, /metrics). Empty disables the ops listener.
	OpsListenAddr string `yaml:"ops_listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// BatchConcurrency bounds how many transcripts are corrected in
	// parallel in batch mode. Zero means the built-in default.
	BatchConcurrency int `yaml:"batch_concurrency"`
}

// MatchingConfig holds the similarity thresholds for the deterministic
// correction engine. Zero values mean the built-in defaults.
type MatchingConfig struct {
	// MatchThreshold is the minimum similarity for exercise-name lookup.
	MatchThreshold float64 `yaml:"match_threshold"`

	// BigramThreshold is the minimum similarity for two-word phrase
	// correction during transcript normalization.
	BigramThreshold float64 `yaml:"bigram_threshold"`

	// WordThreshold is the minimum similarity for single-word correction
	// during transcript normalization.
	WordThreshold float64 `yaml:"word_threshold"`
}

// VocabularyConfig extends or replaces the built-in exercise vocabulary and
// correction table.
type VocabularyConfig struct {
	// File is the path to a YAML file with extra phrases and corrections,
	// merged on top of the built-in defaults. Empty means defaults only.
	File string `yaml:"file"`

	// ExtraPhrases are additional exercise names merged into the
	// vocabulary, applied after File.
	ExtraPhrases []string `yaml:"extra_phrases"`

	// ExtraCorrections are additional correction-table entries merged in,
	// applied after File. Keys are misheard tokens, values replacements.
	ExtraCorrections map[string]string `yaml:"extra_corrections"`
}

// PhoneticConfig controls the optional phonetic matching stage.
type PhoneticConfig struct {
	// Enabled turns the phonetic stage on.
	Enabled bool `yaml:"enabled"`

	// PhoneticThreshold is the minimum ranking score for a phonetically
	// matched phrase. Zero means the built-in default.
	PhoneticThreshold float64 `yaml:"phonetic_threshold"`

	// FuzzyThreshold is the minimum score for the pure string-similarity
	// fallback. Zero means the built-in default.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// LLMConfig controls the optional language-model correction stage.
type LLMConfig struct {
	// Enabled turns the LLM stage on. When false the remaining fields are
	// ignored.
	Enabled bool `yaml:"enabled"`

	// Provider selects and configures the primary LLM backend.
	Provider ProviderEntry `yaml:"provider"`

	// Fallbacks lists additional backends tried in order when the primary
	// fails or its circuit breaker is open.
	Fallbacks []ProviderEntry `yaml:"fallbacks"`

	// OnLowConfidence is the recognizer word-confidence threshold below
	// which a word is escalated to the LLM stage. Zero means the built-in
	// default.
	OnLowConfidence float64 `yaml:"on_low_confidence"`

	// Temperature is the sampling temperature for correction requests.
	// Zero means the built-in default.
	Temperature float64 `yaml:"temperature"`
}

// ProviderEntry is the configuration block shared by all LLM backends.
// The Name field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation (e.g., "openai",
	// "anyllm:anthropic").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API if any.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider (e.g., "gpt-4o").
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by the
	// standard fields above. Values may be strings, numbers, booleans, or nested maps.
	Options map[string]any `yaml:"options"`
}
