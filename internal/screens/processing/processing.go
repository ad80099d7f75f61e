// Package processing shows pipeline progress while a deck is processed.
package processing

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/pipeline"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/ui/layout"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// Runner processes a deck. *pipeline.Processor satisfies it.
type Runner interface {
	Process(ctx context.Context, path string, cfg config.Study, onStep func(pipeline.Step)) (*pipeline.Result, error)
}

// DoneMsg is emitted once the deck has been processed successfully.
type DoneMsg struct {
	Result *pipeline.Result
}

type stepMsg pipeline.Step

type finishedMsg struct {
	result *pipeline.Result
	err    error
}

var stageOrder = []pipeline.Stage{
	pipeline.StageParsing,
	pipeline.StageImages,
	pipeline.StageSummary,
	pipeline.StageQuiz,
	pipeline.StageTutorContext,
}

var stageLabels = map[pipeline.Stage]string{
	pipeline.StageParsing:      "Reading slides",
	pipeline.StageImages:       "Analyzing images",
	pipeline.StageSummary:      "Writing summary",
	pipeline.StageQuiz:         "Generating quiz",
	pipeline.StageTutorContext: "Preparing tutor",
}

// Screen runs the pipeline in the background and renders a checklist.
type Screen struct {
	ctx    context.Context
	runner Runner
	path   string
	cfg    config.Study

	events chan tea.Msg
	steps  map[pipeline.Stage]pipeline.Step
	err    error
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a processing screen for the deck at path.
func New(ctx context.Context, runner Runner, path string, cfg config.Study) *Screen {
	return &Screen{
		ctx:    ctx,
		runner: runner,
		path:   path,
		cfg:    cfg,
		steps:  make(map[pipeline.Stage]pipeline.Step),
	}
}

func (s *Screen) Init() tea.Cmd {
	s.events = make(chan tea.Msg, 16)
	go func() {
		res, err := s.runner.Process(s.ctx, s.path, s.cfg, func(st pipeline.Step) {
			s.events <- stepMsg(st)
		})
		s.events <- finishedMsg{result: res, err: err}
		close(s.events)
	}()
	return s.wait()
}

// wait delivers the next pipeline event.
func (s *Screen) wait() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (s *Screen) Title() string {
	return "Processing " + filepath.Base(s.path)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.err != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	}
	return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		s.steps[msg.Stage] = pipeline.Step(msg)
		return s, s.wait()

	case finishedMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		res := msg.result
		return s, func() tea.Msg { return DoneMsg{Result: res} }

	case tea.KeyPressMsg:
		if s.err != nil {
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render("  " + filepath.Base(s.path)))
	b.WriteString("\n\n")

	for _, stage := range stageOrder {
		b.WriteString("  ")
		b.WriteString(s.renderStage(stage))
		b.WriteString("\n")
	}

	if s.err != nil {
		b.WriteString("\n")
		errText := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Width(width - 4).
			Render(fmt.Sprintf("Could not process deck: %v", s.err))
		b.WriteString("  " + errText + "\n\n")
		b.WriteString(theme.Hint.Render("  Press any key to quit."))
	}
	return b.String()
}

func (s *Screen) renderStage(stage pipeline.Stage) string {
	label := stageLabels[stage]
	st, seen := s.steps[stage]
	_, finished := s.steps[pipeline.StageDone]

	switch {
	case !seen && (finished || s.stageSkipped(stage)):
		return theme.Subtitle.Render("–  " + label + " (skipped)")
	case !seen:
		return theme.Subtitle.Render("·  " + label)
	case finished || (st.Total > 0 && st.Done >= st.Total) || s.later(stage):
		return theme.Correct.Render("✓  ") + theme.Body.Render(label+detail(st))
	case s.err != nil:
		return theme.Incorrect.Render("✗  ") + theme.Body.Render(label)
	default:
		return theme.Pending.Render("…  ") + theme.Body.Render(label+detail(st))
	}
}

// stageSkipped reports stages the pipeline passed without reporting,
// such as image analysis on a deck without pictures.
func (s *Screen) stageSkipped(stage pipeline.Stage) bool {
	return stage == pipeline.StageImages && (s.seen(pipeline.StageSummary) || s.seen(pipeline.StageQuiz))
}

// later reports whether a sequential stage after this one has started.
// Summary and quiz run together, so neither finishes the other.
func (s *Screen) later(stage pipeline.Stage) bool {
	switch stage {
	case pipeline.StageParsing:
		return s.seen(pipeline.StageImages) || s.seen(pipeline.StageSummary) || s.seen(pipeline.StageQuiz)
	case pipeline.StageImages:
		return s.seen(pipeline.StageSummary) || s.seen(pipeline.StageQuiz)
	case pipeline.StageSummary, pipeline.StageQuiz:
		return s.seen(pipeline.StageTutorContext)
	}
	return false
}

func (s *Screen) seen(stage pipeline.Stage) bool {
	_, ok := s.steps[stage]
	return ok
}

func detail(st pipeline.Step) string {
	switch {
	case st.Stage == pipeline.StageImages && st.Total > 0:
		return fmt.Sprintf(" (%d/%d)", st.Done, st.Total)
	case st.Detail != "" && st.Done > 0:
		return " (" + st.Detail + ")"
	}
	return ""
}
