package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"bare array", `[1,2,3]`, `[1,2,3]`},
		{"code fence", "```json\n{\"a\":[1,2]}\n```", `{"a":[1,2]}`},
		{"leading prose", "Here is the quiz:\n{\"stages\":[]} Hope this helps!", `{"stages":[]}`},
		{"brackets inside strings", `{"q":"what is {x} and [y]?","n":"\"}"}`, `{"q":"what is {x} and [y]?","n":"\"}"}`},
		{"nested", `xx {"a":{"b":[{"c":1}]}} yy {"d":2}`, `{"a":{"b":[{"c":1}]}}`},
		{"skips invalid candidate", `{not json} then {"ok":true}`, `{"ok":true}`},
		{"array before object", `[{"a":1}] {"b":2}`, `[{"a":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.text)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestExtractJSON_NoValue(t *testing.T) {
	for _, text := range []string{"", "no json here", `{"unterminated": [1, 2`, "} ] mismatched"} {
		_, err := ExtractJSON(text)
		assert.ErrorIs(t, err, errNoJSON, "text %q", text)
	}
}

func TestStructuredContent_WrapsExtractionFailure(t *testing.T) {
	_, err := structuredContent(testSchema(), "sorry, I can't do that")
	require.Error(t, err)

	var inv *ErrInvalidResponse
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "sorry, I can't do that", string(inv.Content))
}

func TestStructuredContent_ValidatesExtracted(t *testing.T) {
	raw, err := structuredContent(testSchema(), "```json\n{\"name\":\"Ada\",\"age\":36}\n```")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","age":36}`, string(raw))

	_, err = structuredContent(testSchema(), `{"name":"Ada"}`)
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestStructuredContent_NoSchemaPassesText(t *testing.T) {
	raw, err := structuredContent(nil, "plain answer")
	require.NoError(t, err)
	assert.Equal(t, "plain answer", string(raw))
}
