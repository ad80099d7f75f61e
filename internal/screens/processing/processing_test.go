package processing

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/pipeline"
	"github.com/abhisek/studydeck/internal/quiz"
	"github.com/abhisek/studydeck/internal/screen"
)

type fakeRunner struct {
	steps []pipeline.Step
	res   *pipeline.Result
	err   error
}

func (f *fakeRunner) Process(_ context.Context, _ string, _ config.Study, onStep func(pipeline.Step)) (*pipeline.Result, error) {
	for _, st := range f.steps {
		onStep(st)
	}
	return f.res, f.err
}

// drive feeds every message the screen produces back into it until the
// pipeline is finished, returning the final message.
func drive(t *testing.T, s *Screen) tea.Msg {
	t.Helper()
	cmd := s.Init()
	for range 50 {
		require.NotNil(t, cmd)
		msg := cmd()
		var next screen.Screen
		next, cmd = s.Update(msg)
		s = next.(*Screen)
		if _, ok := msg.(finishedMsg); ok {
			if cmd == nil {
				return msg
			}
			return cmd()
		}
	}
	t.Fatal("pipeline did not finish")
	return nil
}

func TestScreen_EmitsDone(t *testing.T) {
	res := &pipeline.Result{RunID: "run-1", Quiz: quiz.Fallback()}
	runner := &fakeRunner{
		steps: []pipeline.Step{
			{Stage: pipeline.StageParsing},
			{Stage: pipeline.StageParsing, Detail: "3 slides", Done: 1, Total: 1},
			{Stage: pipeline.StageSummary, Total: 1},
			{Stage: pipeline.StageQuiz, Total: 1},
			{Stage: pipeline.StageTutorContext},
			{Stage: pipeline.StageDone},
		},
		res: res,
	}
	s := New(t.Context(), runner, "/decks/bio.pptx", config.Default())

	msg := drive(t, s)

	done, ok := msg.(DoneMsg)
	require.True(t, ok)
	assert.Equal(t, "run-1", done.Result.RunID)

	view := s.View(100, 30)
	assert.Contains(t, view, "bio.pptx")
	assert.Contains(t, view, "Reading slides (3 slides)")
	assert.Contains(t, view, "Analyzing images (skipped)")
}

func TestScreen_ShowsErrorAndQuitsOnKey(t *testing.T) {
	runner := &fakeRunner{
		steps: []pipeline.Step{{Stage: pipeline.StageParsing}},
		err:   errors.New("invalid deck: not a .pptx package"),
	}
	s := New(t.Context(), runner, "broken.pptx", config.Default())

	msg := drive(t, s)
	_, isFinished := msg.(finishedMsg)
	assert.True(t, isFinished)

	assert.Contains(t, s.View(100, 30), "not a .pptx package")
	assert.Equal(t, "any key", s.KeyHints()[0].Key)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestScreen_Title(t *testing.T) {
	s := New(context.Background(), &fakeRunner{}, "/a/b/lecture.pptx", config.Default())
	assert.Equal(t, "Processing lecture.pptx", s.Title())
}
