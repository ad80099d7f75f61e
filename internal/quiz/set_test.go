package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() Set {
	return Set{Stages: []Stage{
		{Level: LevelBasic, Questions: []Question{
			{ID: 1, Prompt: "Pick", Body: &MultipleChoice{Options: []string{"a", "b"}, CorrectIndex: 1}},
			{ID: 2, Prompt: "Type", Body: &ShortAnswer{Answer: "Mitochondria"}},
		}},
		{Level: LevelApplied, Questions: []Question{
			{ID: 3, Prompt: "Write", Body: &Essay{}},
		}},
	}}
}

func TestSet_Validate(t *testing.T) {
	require.NoError(t, sampleSet().Validate())

	assert.ErrorIs(t, Set{}.Validate(), ErrEmptySet)

	gap := sampleSet()
	gap.Stages[1].Questions[0].ID = 4
	assert.Error(t, gap.Validate())

	badMC := sampleSet()
	badMC.Stages[0].Questions[0].Body = &MultipleChoice{Options: []string{"a", "b"}, CorrectIndex: 2}
	assert.Error(t, badMC.Validate())

	noBody := sampleSet()
	noBody.Stages[1].Questions[0].Body = nil
	assert.Error(t, noBody.Validate())
}

func TestSet_EmptyStagesAreValid(t *testing.T) {
	s := Set{Stages: []Stage{{Level: LevelBasic}, {Level: LevelApplied}}}
	assert.NoError(t, s.Validate())
	assert.Equal(t, 0, s.Count())
}

func TestSet_Renumber(t *testing.T) {
	s := sampleSet()
	s.Stages[0].Questions[0].ID = 9
	s.Stages[1].Questions[0].ID = 9

	r := s.Renumber()
	require.NoError(t, r.Validate())
	assert.Equal(t, 9, s.Stages[0].Questions[0].ID, "original untouched")
}

func TestSet_Lookup(t *testing.T) {
	q, stage, ok := sampleSet().Lookup(3)
	require.True(t, ok)
	assert.Equal(t, 1, stage)
	assert.Equal(t, "Write", q.Prompt)

	_, _, ok = sampleSet().Lookup(42)
	assert.False(t, ok)
}

func TestFallback(t *testing.T) {
	f := Fallback()
	require.NoError(t, f.Validate())
	assert.True(t, f.Fallback)
	assert.Len(t, f.Stages, 3)
	assert.Equal(t, 1, f.Count())
	assert.Equal(t, KindMultipleChoice, f.Stages[0].Questions[0].Kind())
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("fill_blank")
	require.NoError(t, err)
	assert.Equal(t, KindFillBlank, k)

	_, err = ParseKind("true_false")
	assert.Error(t, err)
}
