package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath = "FIELDMAPPER_CONFIG"
	EnvAPIKey     = "FIELDMAPPER_API_KEY"
	EnvEndpoint   = "FIELDMAPPER_ENDPOINT"
)

// SuggesterKind selects the suggestion source implementation.
type SuggesterKind string

const (
	// KindAuto picks remote when an endpoint is configured and none otherwise.
	KindAuto      SuggesterKind = ""
	KindNone      SuggesterKind = "none"
	KindRemote    SuggesterKind = "remote"
	KindHeuristic SuggesterKind = "heuristic"
)

// Defaults of the suggester section.
const (
	DefaultMaxRetries       = 3
	DefaultBaseDelay        = 500 * time.Millisecond
	DefaultTimeout          = 60 * time.Second
	DefaultResponseTextPath = "choices.0.message.content"
	DefaultModel            = "gpt-4.1-mini"
	DefaultMinScore         = 0.45
	DefaultMaxPerSource     = 3
)

// ErrUnknownKind is returned for an unsupported suggester kind.
var ErrUnknownKind = errors.New("unknown suggester kind")

// Suggester configures the suggestion source.
type Suggester struct {
	Kind SuggesterKind `yaml:"kind"`

	// Remote similarity service.
	Endpoint         string            `yaml:"endpoint"`
	Model            string            `yaml:"model"`
	APIKey           string            `yaml:"api_key"`
	APIKeyEnv        string            `yaml:"api_key_env"`
	MaxRetries       int               `yaml:"max_retries"`
	BaseDelay        time.Duration     `yaml:"base_delay"`
	Timeout          time.Duration     `yaml:"timeout"`
	ResponseTextPath string            `yaml:"response_text_path"`
	Headers          map[string]string `yaml:"headers"`
	ExtraBody        map[string]any    `yaml:"extra_body"`

	// Heuristic source.
	MinScore     float64 `yaml:"min_score"`
	MaxPerSource int     `yaml:"max_per_source"`
}

// ResolvedKind returns the effective kind after applying KindAuto.
func (s Suggester) ResolvedKind() SuggesterKind {
	if s.Kind != KindAuto {
		return s.Kind
	}

	if strings.TrimSpace(s.Endpoint) != "" {
		return KindRemote
	}

	return KindNone
}

// ResolveAPIKey returns the inline key or the value of the configured
// environment variable.
func (s Suggester) ResolveAPIKey(getenv func(string) string) string {
	if key := strings.TrimSpace(s.APIKey); key != "" {
		return key
	}

	env := s.APIKeyEnv
	if env == "" {
		env = EnvAPIKey
	}

	return strings.TrimSpace(getenv(env))
}

// Config is the whole run configuration.
type Config struct {
	Weights   Weights   `yaml:"weights"`
	Suggester Suggester `yaml:"suggester"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Weights: DefaultWeights(),
		Suggester: Suggester{
			Kind:             KindAuto,
			Model:            DefaultModel,
			APIKeyEnv:        EnvAPIKey,
			MaxRetries:       DefaultMaxRetries,
			BaseDelay:        DefaultBaseDelay,
			Timeout:          DefaultTimeout,
			ResponseTextPath: DefaultResponseTextPath,
			MinScore:         DefaultMinScore,
			MaxPerSource:     DefaultMaxPerSource,
		},
	}
}

// ResolveConfigPath normalizes a config path, falling back to the environment.
// An empty result means "no config file".
func ResolveConfigPath(p string, getenv func(string) string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = strings.TrimSpace(getenv(EnvConfigPath))
	}

	if trimmed == "" {
		return ""
	}

	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}

	return trimmed
}

// Load reads the YAML config at path, overlays the environment and validates
// the result. An empty path starts from Default.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		cfg, err = Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.ApplyEnv(getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults. It does not validate.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment overrides.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if endpoint := strings.TrimSpace(getenv(EnvEndpoint)); endpoint != "" {
		c.Suggester.Endpoint = endpoint
	}
}

// Validate checks weights and suggester settings.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}

	s := c.Suggester

	switch s.ResolvedKind() {
	case KindNone, KindHeuristic:
	case KindRemote:
		if strings.TrimSpace(s.Endpoint) == "" {
			return errors.New("suggester.endpoint is required for kind remote")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}

	if s.MaxRetries < 0 {
		return fmt.Errorf("suggester.max_retries: must not be negative, got %d", s.MaxRetries)
	}

	if s.BaseDelay < 0 || s.Timeout < 0 {
		return errors.New("suggester: durations must not be negative")
	}

	return nil
}
