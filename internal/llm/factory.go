package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

// ErrNoCredentials is returned by NewProviderFromEnv when no provider key
// is configured. The application treats it as a startup failure.
var ErrNoCredentials = errors.New("no LLM provider credentials found: set STUDYDECK_LLM_PROVIDER and its API key, or one of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY, OPENROUTER_API_KEY")

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with timeout, retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, events RequestLogger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	var p Provider = base
	if events != nil {
		p = WithLogging(p, cfg.Provider, events)
	}
	p = WithRetry(p, cfg.Retry)
	p = WithTimeout(p, cfg.Timeout)

	return p, nil
}

// NewProviderFromEnv loads a .env file from the working directory if one
// exists, resolves the configuration from STUDYDECK_* variables or the
// standard provider key variables, and builds the provider.
func NewProviderFromEnv(ctx context.Context, events RequestLogger) (Provider, Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	var cfg Config
	if HasCredentials() {
		cfg = ConfigFromEnv()
	} else {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, Config{}, ErrNoCredentials
		}
		cfg = discovered
	}

	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	p, err := NewProvider(ctx, cfg, events)
	if err != nil {
		return nil, cfg, err
	}
	return p, cfg, nil
}

// TimeoutProvider is a decorator that bounds every request with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider so each Generate call is cancelled after d.
// A non-positive d disables the bound. A caller deadline that is already
// shorter wins.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
