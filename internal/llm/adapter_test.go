package llm

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinish(t *testing.T) {
	t.Run("plain text keeps truncation as stop reason", func(t *testing.T) {
		resp, err := finish(Request{}, reply{text: "partial", truncated: true, model: "m"})
		require.NoError(t, err)
		assert.Equal(t, "max_tokens", resp.StopReason)
		assert.Equal(t, "m", resp.Model)
	})

	t.Run("schema reply is validated", func(t *testing.T) {
		_, err := finish(Request{Schema: testSchema()}, reply{text: `{"name":"Ada","age":-1}`})
		var inv *ErrInvalidResponse
		assert.ErrorAs(t, err, &inv)
	})
}

func TestMaxTokens(t *testing.T) {
	assert.Equal(t, defaultMaxTokens, maxTokens(Request{}))
	assert.Equal(t, 300, maxTokens(Request{MaxTokens: 300}))
}

func TestRetryAfterHeader(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"12", 12 * time.Second},
		{"", 0},
		{"0", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		h.Set("Retry-After", tt.value)
		assert.Equal(t, tt.want, retryAfter(h), tt.value)
	}
	assert.Zero(t, retryAfter(nil))
}
