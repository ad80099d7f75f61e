package feedback

import "github.com/abhisek/studydeck/internal/llm"

// FeedbackSchema defines the JSON schema for remedial feedback.
var FeedbackSchema = &llm.Schema{
	Name:        "study-feedback",
	Description: "Analysis of a learner's wrong answers with weak areas and recommendations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"analysis": map[string]any{
				"type":        "string",
				"description": "2-4 sentences on the pattern behind the mistakes",
			},
			"weak_areas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area":        map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
						"related_slides": map[string]any{
							"type":  []any{"array", "null"},
							"items": map[string]any{"type": []any{"integer", "string"}},
						},
					},
					"required": []any{"area", "description"},
				},
			},
			"recommendations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps, each naming slides to review",
			},
		},
		"required": []any{"analysis", "weak_areas", "recommendations"},
	},
}
