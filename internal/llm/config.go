package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects a backend and carries the settings of every backend.
// Provider is one of "anthropic", "openai", "gemini", "openrouter" or
// "mock".
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one text request including retries.
	Timeout time.Duration
	// VisionTimeout bounds one image description request.
	VisionTimeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // any OpenAI-compatible endpoint
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string // vendor/model form
	BaseURL string
}

// RetryConfig shapes the exponential backoff in WithRetry.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-sonnet"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout:       2 * time.Minute,
		VisionTimeout: time.Minute,
	}
}

// backend binds one provider's settings to its environment variables.
// Fields with no variable are nil.
type backend struct {
	name    string
	stdKey  string // the vendor's own variable, e.g. ANTHROPIC_API_KEY
	key     *string
	model   *string
	baseURL *string
}

// envPrefix is the prefix of the application's own variables.
const envPrefix = "STUDYDECK_"

// backends lists the providers in discovery order.
func (c *Config) backends() []backend {
	return []backend{
		{"anthropic", "ANTHROPIC_API_KEY", &c.Anthropic.APIKey, &c.Anthropic.Model, &c.Anthropic.BaseURL},
		{"openai", "OPENAI_API_KEY", &c.OpenAI.APIKey, &c.OpenAI.Model, &c.OpenAI.BaseURL},
		{"gemini", "GEMINI_API_KEY", &c.Gemini.APIKey, &c.Gemini.Model, nil},
		{"openrouter", "OPENROUTER_API_KEY", &c.OpenRouter.APIKey, &c.OpenRouter.Model, nil},
	}
}

func (b backend) envVar(suffix string) string {
	return envPrefix + strings.ToUpper(b.name) + "_" + suffix
}

// ConfigFromEnv overlays STUDYDECK_* variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	setFromEnv(&cfg.Provider, envPrefix+"LLM_PROVIDER")
	for _, b := range cfg.backends() {
		setFromEnv(b.key, b.envVar("API_KEY"))
		setFromEnv(b.model, b.envVar("MODEL"))
		if b.baseURL != nil {
			setFromEnv(b.baseURL, b.envVar("BASE_URL"))
		}
	}
	if d, err := time.ParseDuration(os.Getenv(envPrefix + "LLM_TIMEOUT")); err == nil {
		cfg.Timeout = d
	}
	return cfg
}

// HasCredentials reports whether a STUDYDECK_* provider or key is set.
func HasCredentials() bool {
	if os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return true
	}
	var cfg Config
	for _, b := range cfg.backends() {
		if os.Getenv(b.envVar("API_KEY")) != "" {
			return true
		}
	}
	return false
}

// DiscoverConfig picks the first provider whose vendor key variable is
// set, in the order Anthropic, OpenAI, Gemini, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, b := range cfg.backends() {
		if k := os.Getenv(b.stdKey); k != "" {
			cfg.Provider = b.name
			*b.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	for _, b := range c.backends() {
		if b.name != c.Provider {
			continue
		}
		if *b.key == "" {
			return fmt.Errorf("%s is required for the %s provider", b.envVar("API_KEY"), b.name)
		}
		return nil
	}
	return fmt.Errorf("unknown LLM provider %q", c.Provider)
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
