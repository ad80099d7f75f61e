package llm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newChatCompletionsProvider("test-key", srv.URL+"/v1", "gpt-4o-mini")
}

func chatCompletion(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "chatcmpl-1",
			"model": "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func chatFailure(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": http.StatusText(status)}})
	}
}

func TestOpenAIProvider_StructuredReply(t *testing.T) {
	var sent map[string]any
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
		chatCompletion("```json\n{\"name\":\"Krebs\",\"age\":37}\n```", "stop")(w, r)
	})

	resp, err := p.Generate(t.Context(), Request{System: "You write quizzes.", Messages: userAsks("describe"), Schema: testSchema(), MaxTokens: 256})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Krebs","age":37}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "end", resp.StopReason)

	format, _ := sent["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
}

func TestOpenAIProvider_TruncatedStructuredReply(t *testing.T) {
	p := openAIServer(t, chatCompletion(`{"name":`, "length"))

	_, err := p.Generate(t.Context(), Request{Messages: userAsks("describe"), Schema: testSchema()})

	var mt *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &mt)
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := openAIServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","model":"gpt-4o-mini","choices":[]}`))
	})

	_, err := p.Generate(t.Context(), Request{Messages: userAsks("q")})

	var inv *ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(t *testing.T, err error)
	}{
		{http.StatusTooManyRequests, func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{http.StatusBadGateway, func(t *testing.T, err error) {
			var un *ErrProviderUnavailable
			assert.ErrorAs(t, err, &un)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := openAIServer(t, chatFailure(tt.status))
			_, err := p.Generate(t.Context(), Request{Messages: userAsks("q")})
			tt.check(t, err)
		})
	}
}

func TestOpenAIProvider_ImagesAsDataURLs(t *testing.T) {
	var sent struct {
		Messages []struct {
			Content []struct {
				Type     string `json:"type"`
				ImageURL struct {
					URL string `json:"url"`
				} `json:"image_url"`
			} `json:"content"`
		} `json:"messages"`
	}
	p := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
		chatCompletion("A diagram of a cell.", "stop")(w, r)
	})

	resp, err := p.Generate(t.Context(), Request{Messages: []Message{{
		Role:    RoleUser,
		Content: "Describe this image.",
		Images:  []Image{{MediaType: "image/jpeg", Data: []byte("jpg")}},
	}}})

	require.NoError(t, err)
	assert.Equal(t, "A diagram of a cell.", resp.Text())
	require.Len(t, sent.Messages, 1)
	parts := sent.Messages[0].Content
	require.Len(t, parts, 2)
	assert.Equal(t, "image_url", parts[0].Type)
	assert.Equal(t, "data:image/jpeg;base64,anBn", parts[0].ImageURL.URL)
	assert.Equal(t, "text", parts[1].Type)
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o", BaseURL: "https://proxy.example/v1"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())
}
