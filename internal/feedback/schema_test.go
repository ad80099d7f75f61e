package feedback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackSchema_Validate(t *testing.T) {
	valid := `{"analysis":"Confuses the two stages of respiration.",
		"weak_areas":[{"area":"Glycolysis","description":"Location in the cell","related_slides":[4,5]}],
		"recommendations":["Review slides 4-5"]}`
	assert.NoError(t, FeedbackSchema.Validate(json.RawMessage(valid)))

	for name, raw := range map[string]string{
		"slide numbers as text": `{"analysis":"a","weak_areas":[{"area":"x","description":"y","related_slides":["4","Slide 5"]}],"recommendations":[]}`,
		"null slides":           `{"analysis":"a","weak_areas":[{"area":"x","description":"y","related_slides":null}],"recommendations":[]}`,
		"slides omitted":        `{"analysis":"a","weak_areas":[{"area":"x","description":"y"}],"recommendations":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, FeedbackSchema.Validate(json.RawMessage(raw)))
		})
	}

	for name, raw := range map[string]string{
		"missing recommendations": `{"analysis":"a","weak_areas":[]}`,
		"slides as an object":     `{"analysis":"a","weak_areas":[{"area":"x","description":"y","related_slides":{"first":4}}],"recommendations":[]}`,
		"weak area without area":  `{"analysis":"a","weak_areas":[{"description":"y","related_slides":[]}],"recommendations":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, FeedbackSchema.Validate(json.RawMessage(raw)))
		})
	}
}
