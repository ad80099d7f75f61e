package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/pipeline"
	"github.com/abhisek/studydeck/internal/quiz"
	"github.com/abhisek/studydeck/internal/screens/processing"
	"github.com/abhisek/studydeck/internal/screens/study"
)

type stubRunner struct {
	calls []string
}

func (r *stubRunner) Process(_ context.Context, path string, _ config.Study, _ func(pipeline.Step)) (*pipeline.Result, error) {
	r.calls = append(r.calls, path)
	return &pipeline.Result{RunID: "run-1", Path: path, Quiz: quiz.Fallback()}, nil
}

func testModel(t *testing.T) (AppModel, *stubRunner) {
	t.Helper()
	runner := &stubRunner{}
	m := newAppModel(t.Context(), Deps{
		Processor: runner,
		Provider:  llm.NewMockProvider(),
		Config:    config.Default(),
		Path:      "/decks/cells.pptx",
	})
	return m, runner
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestApp_StartsOnProcessing(t *testing.T) {
	m, _ := testModel(t)

	_, ok := m.router.Active().(*processing.Screen)
	assert.True(t, ok)
	assert.Equal(t, "Processing cells.pptx", m.router.Active().Title())
}

func TestApp_DoneSwapsInStudy(t *testing.T) {
	m, _ := testModel(t)

	res := &pipeline.Result{RunID: "run-1", Path: "/decks/cells.pptx", Quiz: quiz.Fallback()}
	m, _ = update(m, processing.DoneMsg{Result: res})

	_, ok := m.router.Active().(*study.Screen)
	require.True(t, ok)
	assert.Equal(t, 1, m.router.Depth())
}

func TestApp_ReprocessSwapsInProcessing(t *testing.T) {
	m, runner := testModel(t)
	m, _ = update(m, processing.DoneMsg{Result: &pipeline.Result{Path: "/decks/cells.pptx", Quiz: quiz.Fallback()}})

	m, cmd := update(m, study.ReprocessMsg{Path: "/decks/cells.pptx"})

	_, ok := m.router.Active().(*processing.Screen)
	require.True(t, ok)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, []string{"/decks/cells.pptx"}, runner.calls)
	assert.NotNil(t, msg)
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := testModel(t)

	_, cmd := update(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_View(t *testing.T) {
	m, _ := testModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Contains(t, m.router.View(100, 20), "Reading slides")
}
