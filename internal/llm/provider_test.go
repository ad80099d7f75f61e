package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_RepliesInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"one_line":"Cells"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("Mitochondria make ATP."),
	)

	first, err := mock.Generate(t.Context(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"one_line":"Cells"}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, "end", first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(t.Context(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "Mitochondria make ATP.", second.Text())
	assert.Zero(t, mock.Pending())
}

func TestMockProvider_ExhaustedQueueIsAnOutage(t *testing.T) {
	mock := NewMockProvider()

	_, err := mock.Generate(t.Context(), Request{})

	var unavail *ErrProviderUnavailable
	require.ErrorAs(t, err, &unavail)
	assert.Equal(t, "model provider unavailable", err.Error())
}

func TestMockProvider_RecordsRequestsAndPurposes(t *testing.T) {
	mock := NewMockProvider(MockText("ok"), MockText("ok"))

	_, _ = mock.Generate(WithPurpose(t.Context(), "summary"), Request{System: "sys"})
	_, _ = mock.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	require.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
	assert.Equal(t, "hi", mock.Calls[1].Messages[0].Content)
	assert.Equal(t, []string{"summary", "unknown"}, mock.Purposes)
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	mock.AddResponse(MockText("after"))

	_, err := mock.Generate(t.Context(), Request{})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 1, mock.Pending())
}

func TestMockProvider_AppliesRequestSchema(t *testing.T) {
	mock := NewMockProvider(
		MockText("Here you go:\n```json\n{\"name\":\"Ada\",\"age\":36}\n```"),
		MockResponse{Content: json.RawMessage(`{"name":"Ada","age":"36"}`)},
		MockText("no json here"),
	)
	req := Request{Schema: testSchema()}

	resp, err := mock.Generate(t.Context(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(resp.Content))

	for range 2 {
		_, err = mock.Generate(t.Context(), req)
		var invalid *ErrInvalidResponse
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "test-object", invalid.Schema)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "quiz", PurposeFrom(WithPurpose(ctx, "quiz")))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"rate limit with wait", &ErrRateLimit{RetryAfter: 2e9, Err: errString("429")}, "model rate limited (retry after 2s): 429"},
		{"rate limit", &ErrRateLimit{Err: errString("429")}, "model rate limited: 429"},
		{"invalid with schema", &ErrInvalidResponse{Schema: "quiz-set", Err: errString("missing stages")}, "invalid quiz-set response: missing stages"},
		{"invalid", &ErrInvalidResponse{Err: errString("empty")}, "invalid model response: empty"},
		{"unavailable", &ErrProviderUnavailable{Err: errString("503")}, "model provider unavailable: 503"},
		{"truncated", &ErrMaxTokensExceeded{Content: json.RawMessage(`{"st`)}, "model response truncated at max tokens (4 bytes received)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"openrouter with key", Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "bedrock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("STUDYDECK_LLM_PROVIDER", "openai")
	t.Setenv("STUDYDECK_OPENAI_API_KEY", "sk-oai")
	t.Setenv("STUDYDECK_OPENAI_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("STUDYDECK_GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("STUDYDECK_LLM_TIMEOUT", "45s")

	cfg := ConfigFromEnv()

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "sk-oai", cfg.OpenAI.APIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model, "unset model keeps its default")
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.True(t, HasCredentials())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ValidateNamesVariable(t *testing.T) {
	err := Config{Provider: "openrouter"}.Validate()
	assert.EqualError(t, err, "STUDYDECK_OPENROUTER_API_KEY is required for the openrouter provider")
}
