package quiz

import "github.com/abhisek/studydeck/internal/llm"

// SetSchema defines the JSON schema for quiz generation responses.
var SetSchema = &llm.Schema{
	Name:        "quiz-set",
	Description: "A three-stage quiz generated from slide content",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stages": map[string]any{
				"type":        "array",
				"description": "Exactly three stages in order: basic, applied, advanced",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"stage": map[string]any{
							"type":        "string",
							"description": "Stage name: basic, applied or advanced",
						},
						"questions": map[string]any{
							"type":  "array",
							"items": questionSchema,
						},
					},
					"required": []any{"stage", "questions"},
				},
			},
		},
		"required": []any{"stages"},
	},
}

// questionSchema only pins the fields every kind needs. Kind-specific
// fields may be null or, for answer, a number; normalize drops questions
// that are unusable for their kind.
var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type": "string",
			"enum": []any{"multiple_choice", "short_answer", "fill_blank", "essay"},
		},
		"question": map[string]any{
			"type":        "string",
			"description": "The question prompt. For fill_blank, mark the blank with ____",
		},
		"options": map[string]any{
			"type":        []any{"array", "null"},
			"items":       map[string]any{"type": "string"},
			"description": "Exactly 4 options for multiple_choice. Empty for other types.",
		},
		"correct_index": map[string]any{
			"type":        []any{"integer", "null"},
			"description": "0-based index of the correct option for multiple_choice",
		},
		"answer": map[string]any{
			"type":        []any{"string", "number", "null"},
			"description": "The expected answer for short_answer and fill_blank (1-3 words), or a model answer for essay",
		},
		"source_slide": map[string]any{
			"type":        "integer",
			"description": "The slide number the question is based on",
		},
		"explanation": map[string]any{
			"type":        "string",
			"description": "Why the answer is correct",
		},
	},
	"required": []any{"type", "question", "source_slide", "explanation"},
}
