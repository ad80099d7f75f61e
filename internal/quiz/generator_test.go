package quiz

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
)

func testSlides() []deck.Slide {
	return []deck.Slide{
		{Index: 1, Texts: []string{"Photosynthesis", "Plants convert light into chemical energy"}},
		{Index: 2, Texts: []string{"Chlorophyll absorbs red and blue light"}},
	}
}

func validSetJSON() json.RawMessage {
	return json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "multiple_choice", "question": "What absorbs light?", "options": ["Chlorophyll", "Water", "Oxygen", "Soil"], "correct_index": 0, "source_slide": 2, "explanation": "Chlorophyll is the pigment."},
				{"type": "fill_blank", "question": "Plants convert ____ into chemical energy.", "answer": "light", "source_slide": 1, "explanation": "See slide 1."}
			]},
			{"stage": "applied", "questions": [
				{"type": "short_answer", "question": "Which colors does chlorophyll absorb best?", "answer": "red and blue", "source_slide": 2, "explanation": "Green is reflected."}
			]},
			{"stage": "advanced", "questions": [
				{"type": "essay", "question": "Why are leaves green?", "answer": "They reflect green light.", "source_slide": 2, "explanation": "Reflection."}
			]}
		]
	}`)
}

func TestGenerator_BuildsThreeStages(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	opts := DefaultOptions()
	opts.Kinds = AllKinds
	g := NewGenerator(mock, opts)

	set := g.Generate(t.Context(), testSlides())

	require.False(t, set.Fallback)
	require.Len(t, set.Stages, 3)
	assert.Equal(t, LevelBasic, set.Stages[0].Level)
	assert.Equal(t, "Foundations", set.Stages[0].Title)
	assert.Equal(t, LevelAdvanced, set.Stages[2].Level)
	assert.Equal(t, 4, set.Count())
	require.NoError(t, set.Validate())

	q, stage, ok := set.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, 1, stage)
	assert.Equal(t, KindShortAnswer, q.Kind())
	assert.Equal(t, "red and blue", q.CorrectText())
}

func TestGenerator_DefaultKindsSkipEssays(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	set := NewGenerator(mock, Options{NumQuestions: 6}).Generate(t.Context(), testSlides())

	require.False(t, set.Fallback)
	assert.Equal(t, 3, set.Count())
	assert.Empty(t, set.Stages[2].Questions)
	for _, q := range set.Questions() {
		assert.NotEqual(t, KindEssay, q.Kind())
	}
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Allowed question types: multiple_choice, short_answer, fill_blank")
}

func TestGenerator_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	opts := DefaultOptions()
	opts.NumQuestions = 12
	opts.Kinds = []Kind{KindMultipleChoice}
	g := NewGenerator(mock, opts)

	g.Generate(t.Context(), testSlides())

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, SetSchema, req.Schema)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Questions per stage: 4")
	assert.Contains(t, msg, "Allowed question types: multiple_choice")
	assert.Contains(t, msg, "[Slide 2]")
}

func TestGenerator_RenumbersIDs(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "short_answer", "id": 7, "question": "A?", "answer": "a", "source_slide": 1, "explanation": ""}
			]},
			{"stage": "applied", "questions": [
				{"type": "short_answer", "id": 7, "question": "B?", "answer": "b", "source_slide": 1, "explanation": ""}
			]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	require.Len(t, set.Stages, 3)
	ids := []int{}
	for _, q := range set.Questions() {
		ids = append(ids, q.ID)
	}
	assert.Equal(t, []int{1, 2}, ids)
	assert.Empty(t, set.Stages[2].Questions)
}

func TestGenerator_MergesExtraStagesIntoAdvanced(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": []},
			{"stage": "applied", "questions": []},
			{"stage": "advanced", "questions": [{"type": "short_answer", "question": "One?", "answer": "one", "source_slide": 1, "explanation": ""}]},
			{"stage": "bonus", "questions": [{"type": "short_answer", "question": "Two?", "answer": "two", "source_slide": 1, "explanation": ""}]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	require.Len(t, set.Stages, 3)
	require.Len(t, set.Stages[2].Questions, 2)
	assert.Equal(t, "Two?", set.Stages[2].Questions[1].Prompt)
}

func TestGenerator_DropsMalformedQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "multiple_choice", "question": "Bad index?", "options": ["a", "b"], "correct_index": 5, "source_slide": 1, "explanation": ""},
				{"type": "multiple_choice", "question": "One option?", "options": ["a"], "correct_index": 0, "source_slide": 1, "explanation": ""},
				{"type": "short_answer", "question": "No answer?", "source_slide": 1, "explanation": ""},
				{"type": "fill_blank", "question": "   ", "answer": "x", "source_slide": 1, "explanation": ""},
				{"type": "fill_blank", "question": "Null answer ____", "answer": null, "options": null, "correct_index": null, "source_slide": 1, "explanation": ""},
				{"type": "short_answer", "question": "Good?", "answer": "yes", "source_slide": 1, "explanation": ""}
			]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	require.False(t, set.Fallback)
	require.Equal(t, 1, set.Count())
	assert.Equal(t, "Good?", set.Stages[0].Questions[0].Prompt)
	assert.Equal(t, 1, set.Stages[0].Questions[0].ID)
}

func TestGenerator_SchemaViolationFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "true_false", "question": "Unknown kind?", "source_slide": 1, "explanation": ""},
				{"type": "short_answer", "question": "Good?", "answer": "yes", "source_slide": 1, "explanation": ""}
			]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	assert.True(t, set.Fallback)
}

func TestNormalize_DropsUnknownKinds(t *testing.T) {
	raw := setOutput{Stages: []stageOutput{{Stage: "basic", Questions: []questionOutput{
		{Type: "true_false", Question: "Unknown kind?", SourceSlide: 1},
		{Type: "short_answer", Question: "Good?", Answer: json.RawMessage(`"yes"`), SourceSlide: 1},
	}}}}

	set := normalize(raw, AllKinds)

	require.Equal(t, 1, set.Count())
	assert.Equal(t, "Good?", set.Questions()[0].Prompt)
}

func TestGenerator_NumericAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "fill_blank", "question": "A glucose molecule has ____ carbon atoms.", "answer": 6, "options": null, "correct_index": null, "source_slide": 1, "explanation": "C6H12O6"}
			]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	require.False(t, set.Fallback)
	require.Equal(t, 1, set.Count())
	assert.Equal(t, "6", set.Questions()[0].CorrectText())
}

func TestGenerator_MultipleChoiceIndexFromAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"stages": [
			{"stage": "basic", "questions": [
				{"type": "multiple_choice", "question": "By text?", "options": ["Red", "Green"], "answer": "green", "source_slide": 1, "explanation": ""},
				{"type": "multiple_choice", "question": "By number?", "options": ["Red", "Green"], "answer": 0, "source_slide": 1, "explanation": ""}
			]}
		]
	}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	qs := set.Questions()
	require.Len(t, qs, 2)
	assert.Equal(t, 1, qs[0].Body.(*MultipleChoice).CorrectIndex)
	assert.Equal(t, 0, qs[1].Body.(*MultipleChoice).CorrectIndex)
}

func TestGenerator_FiltersDisallowedKinds(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	opts := DefaultOptions()
	opts.Kinds = []Kind{KindEssay}
	set := NewGenerator(mock, opts).Generate(t.Context(), testSlides())

	require.Equal(t, 1, set.Count())
	assert.Equal(t, KindEssay, set.Questions()[0].Kind())
}

func TestGenerator_FallbackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	assert.True(t, set.Fallback)
	assert.NoError(t, set.Validate())
}

func TestGenerator_FallbackOnNoQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"stages": []}`)})
	set := NewGenerator(mock, DefaultOptions()).Generate(t.Context(), testSlides())

	assert.True(t, set.Fallback)
}

func TestGenerator_ClipsLongDecks(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validSetJSON()})
	slides := []deck.Slide{{Index: 1, Texts: []string{strings.Repeat("x", 20000)}}}
	NewGenerator(mock, DefaultOptions()).Generate(t.Context(), slides)

	msg := mock.Calls[0].Messages[0].Content
	assert.Less(t, len([]rune(msg)), 13000)
}

func TestPerStage(t *testing.T) {
	assert.Equal(t, 2, perStage(0))
	assert.Equal(t, 2, perStage(5))
	assert.Equal(t, 3, perStage(10))
	assert.Equal(t, 10, perStage(30))
}
