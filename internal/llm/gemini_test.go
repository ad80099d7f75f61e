package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiAliases(t *testing.T) {
	assert.Equal(t, "gemini-2.0-flash", modelAlias("gemini-flash", geminiAliases))
	assert.Equal(t, "gemini-2.0-pro", modelAlias("gemini-pro", geminiAliases))
	assert.Equal(t, "gemini-2.5-flash", modelAlias("gemini-2.5-flash", geminiAliases), "unknown names pass through")
}

func TestGeminiSchema_QuizShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stages": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"level": map[string]any{"type": "string", "enum": []any{"basic", "applied", "advanced"}},
						"questions": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "integer", "minimum": 1},
						},
					},
					"required": []any{"level"},
				},
			},
			"fallback": map[string]any{"type": "boolean"},
		},
		"required": []any{"stages"},
	}

	schema := geminiSchema(def)

	assert.Equal(t, genai.Type("OBJECT"), schema.Type)
	assert.Equal(t, []string{"stages"}, schema.Required)
	stages := schema.Properties["stages"]
	require.NotNil(t, stages)
	assert.Equal(t, genai.Type("ARRAY"), stages.Type)
	stage := stages.Items
	require.NotNil(t, stage)
	assert.Equal(t, genai.Type("OBJECT"), stage.Type)
	assert.Len(t, stage.Properties["level"].Enum, 3)
	slide := stage.Properties["questions"].Items
	assert.Equal(t, genai.Type("INTEGER"), slide.Type)
	require.NotNil(t, slide.Minimum)
	assert.Equal(t, 1.0, *slide.Minimum)
	assert.Equal(t, genai.Type("BOOLEAN"), schema.Properties["fallback"].Type)
}

func TestGeminiContents(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "Describe this slide.", Images: []Image{{MediaType: "image/png", Data: []byte{0x89, 'P'}}}},
		{Role: RoleAssistant, Content: "A cell diagram."},
	}

	out := geminiContents(msgs)

	require.Len(t, out, 2)
	assert.Equal(t, "user", out[0].Role)
	require.Len(t, out[0].Parts, 2)
	require.NotNil(t, out[0].Parts[0].InlineData)
	assert.Equal(t, "image/png", out[0].Parts[0].InlineData.MIMEType)
	assert.Equal(t, "Describe this slide.", out[0].Parts[1].Text)
	assert.Equal(t, "model", out[1].Role)
	assert.Len(t, out[1].Parts, 1)
}

func TestGeminiSchema_UnknownTypeFallsBackToString(t *testing.T) {
	s := geminiSchema(map[string]any{"type": "tuple", "description": "nothing"})
	assert.Equal(t, genai.TypeString, s.Type)
	assert.Equal(t, "nothing", s.Description)
	assert.Nil(t, s.Properties)
}

func TestGeminiSchema_UnionTypes(t *testing.T) {
	answer := geminiSchema(map[string]any{"type": []any{"null", "number", "string"}})
	assert.Equal(t, genai.TypeNumber, answer.Type)
	require.NotNil(t, answer.Nullable)
	assert.True(t, *answer.Nullable)

	slides := geminiSchema(map[string]any{
		"type":  []any{"array", "null"},
		"items": map[string]any{"type": []any{"integer", "string"}},
	})
	assert.Equal(t, genai.TypeArray, slides.Type)
	assert.Equal(t, genai.TypeInteger, slides.Items.Type)
	assert.Nil(t, slides.Items.Nullable)
}
