package types

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the transport default.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "briefing-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchProvider identifies the web search service.
type SearchProvider string

const (
	SearchTavily  SearchProvider = "tavily"
	SearchSearXNG SearchProvider = "searxng"
)

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the search service: tavily or searxng (default tavily).
	Provider SearchProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// SearXNGBaseURL is the base URL of a SearXNG instance, required for the
	// searxng provider.
	SearXNGBaseURL string `json:"searxng_base_url,omitempty" yaml:"searxng_base_url,omitempty" mapstructure:"searxng_base_url"`
}

// GenerationProvider identifies the text-generation service.
type GenerationProvider string

const (
	GenerationAnthropic GenerationProvider = "anthropic"
	GenerationOpenAI    GenerationProvider = "openai"
)

// GenerationConfig holds settings for the digest composition stage.
type GenerationConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the generation service: anthropic or openai (default anthropic).
	Provider GenerationProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the model identifier (e.g. "claude-sonnet-4-20250514").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// MaxTokens is the output token budget (default 4000).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// APIKey authenticates against the generation service.
	APIKey string `json:"-" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the service endpoint (OpenAI-compatible providers only).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// File, when set, receives a copy of every log line.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`
}

// ServerConfig holds settings for the web UI.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Timeout bounds a single HTTP request, including both pipeline calls.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// Config groups all settings.
type Config struct {
	Search     SearchConfig     `json:"search" yaml:"search" mapstructure:"search"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
}

const (
	DefaultUserAgent = "briefing-engine/0.1"
	DefaultModel     = "claude-sonnet-4-20250514"
	DefaultMaxTokens = 4000
)

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{UserAgent: DefaultUserAgent},
			Provider:   SearchTavily,
		},
		Generation: GenerationConfig{
			HTTPConfig: HTTPConfig{UserAgent: DefaultUserAgent},
			Provider:   GenerationAnthropic,
			Model:      DefaultModel,
			MaxTokens:  DefaultMaxTokens,
		},
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:    ":8080",
			Timeout: 2 * time.Minute,
		},
	}
}

// LoadConfigFile reads a YAML config file on top of DefaultConfig.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
