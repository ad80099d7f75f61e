package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     OpenRouterConfig
		wantErr bool
	}{
		{"valid config", OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.0-flash-exp"}, false},
		{"empty API key", OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}, true},
		{"custom base URL", OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku", BaseURL: "https://proxy.example/v1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Model, p.ModelID(), "model ids are passed through unmapped")
		})
	}
}

func TestOpenRouterProvider_UsesBaseURL(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "gen-1",
			"model": "meta-llama/llama-3-8b",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": "Mitochondria produce ATP."},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "meta-llama/llama-3-8b", BaseURL: server.URL + "/api/v1"})
	require.NoError(t, err)

	resp, err := p.Generate(t.Context(), Request{Messages: []Message{{Role: RoleUser, Content: "What makes ATP?"}}})

	require.NoError(t, err)
	assert.Equal(t, "/api/v1/chat/completions", path)
	assert.Equal(t, "Mitochondria produce ATP.", resp.Text())
}
