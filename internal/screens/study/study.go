// Package study is the main screen: dashboard, quiz, review and tutor
// tabs over one processed deck.
package study

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/feedback"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/pipeline"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/tutor"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/layout"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

type tab int

const (
	tabDashboard tab = iota
	tabQuiz
	tabReview
	tabTutor
	tabCount
)

var tabLabels = []string{"Dashboard", "Quiz", "Review", "Tutor"}

// Deps are the collaborators the study screen calls.
type Deps struct {
	Provider llm.Provider
	Config   config.Study
}

// Screen implements screen.Screen for a processed deck.
type Screen struct {
	ctx      context.Context
	deps     Deps
	result   *pipeline.Result
	sess     *session.Session
	tutor    *tutor.Manager
	feedback *feedback.Generator

	tab    tab
	status string
	failed bool

	// attempt increments on every restart so late feedback for an
	// earlier attempt is dropped.
	attempt int

	dashOffset   int
	reviewOffset int

	quiz quizState
	chat chatState

	feedbackPending bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates a study screen for res. The quiz set is loaded into a fresh
// session; an invalid set is replaced by the fallback set.
func New(ctx context.Context, res *pipeline.Result, deps Deps) *Screen {
	s := &Screen{
		ctx:      ctx,
		deps:     deps,
		result:   res,
		sess:     session.New(),
		feedback: feedback.NewGenerator(deps.Provider),
		quiz:     newQuizState(),
		chat:     newChatState(),
	}

	if err := s.sess.Load(res.Quiz); err != nil {
		slog.Warn("generated quiz rejected", "error", err)
		s.setStatus(fmt.Sprintf("Quiz could not be loaded: %v", err), true)
	}

	mgr, err := tutor.NewManager(deps.Provider, tutor.NewMemoryStore(), deps.Config.Level, res.Context)
	if err != nil {
		slog.Warn("tutor unavailable", "error", err)
	}
	s.tutor = mgr
	s.quiz.sync(s.sess)
	return s
}

func (s *Screen) Init() tea.Cmd {
	if s.tutor == nil {
		return nil
	}
	mgr, ctx := s.tutor, s.ctx
	return func() tea.Msg {
		return suggestionsMsg{items: mgr.Suggestions(ctx)}
	}
}

func (s *Screen) Title() string {
	return tabLabels[s.tab]
}

// Status summarizes quiz progress for the header.
func (s *Screen) Status() string {
	if !s.sess.Loaded() {
		return filepath.Base(s.result.Path)
	}
	if s.sess.IsComplete() {
		st := s.sess.Stats()
		return fmt.Sprintf("Complete · %d/%d answered", st.Answered, st.TotalQuestions)
	}
	p := s.sess.Progress()
	return fmt.Sprintf("Stage %d/%d · %d/%d", s.sess.StageIndex()+1, len(s.sess.Set().Stages), p.Answered, p.Total)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.tab == tabQuiz && s.quiz.editing:
		return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Cancel"}}
	case s.tab == tabQuiz && s.sess.IsComplete():
		return []layout.KeyHint{{Key: "r", Description: "Restart"}, {Key: "p", Description: "Back"}, {Key: "Tab", Description: "Next tab"}}
	case s.tab == tabQuiz:
		return []layout.KeyHint{{Key: "←→", Description: "Question"}, {Key: "↑↓", Description: "Option"}, {Key: "Enter", Description: "Answer"}, {Key: "n/p", Description: "Stage"}}
	case s.tab == tabReview:
		return []layout.KeyHint{{Key: "f", Description: "Analyze"}, {Key: "↑↓", Description: "Scroll"}, {Key: "Tab", Description: "Next tab"}}
	case s.tab == tabTutor:
		return []layout.KeyHint{{Key: "Enter", Description: "Ask"}, {Key: "↑↓", Description: "Suggestions"}, {Key: "Ctrl+L", Description: "Clear"}}
	}
	return []layout.KeyHint{{Key: "1-4", Description: "Tabs"}, {Key: "Ctrl+E", Description: "Export PDF"}, {Key: "Ctrl+R", Description: "Reprocess"}, {Key: "Ctrl+C", Description: "Quit"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return s, s.handleKey(msg)

	case feedbackMsg:
		if msg.attempt == s.attempt {
			s.feedbackPending = false
			s.sess.SetFeedback(msg.feedback)
		}
		return s, nil

	case tutorReplyMsg:
		s.chat.asking = false
		if msg.reply.Failed {
			s.setStatus("Tutor request failed", true)
		}
		return s, nil

	case suggestionsMsg:
		s.chat.setSuggestions(msg.items, s.askCmd)
		return s, nil

	case exportMsg:
		if msg.err != nil {
			s.setStatus(fmt.Sprintf("Export failed: %v", msg.err), true)
		} else {
			s.setStatus("Exported "+strings.Join(msg.paths, ", "), false)
		}
		return s, nil
	}

	return s, s.forwardToInput(msg)
}

// forwardToInput passes non-key messages such as cursor blinks to
// whichever text input has focus.
func (s *Screen) forwardToInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case s.tab == tabQuiz && s.quiz.editing:
		s.quiz.input, cmd = s.quiz.input.Update(msg)
	case s.tab == tabTutor:
		s.chat.input, cmd = s.chat.input.Update(msg)
	}
	return cmd
}

// inputFocused reports whether printable keys belong to a text input.
func (s *Screen) inputFocused() bool {
	return (s.tab == tabQuiz && s.quiz.editing) || s.tab == tabTutor
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab":
		return s.switchTab((s.tab + 1) % tabCount)
	case "shift+tab":
		return s.switchTab((s.tab + tabCount - 1) % tabCount)
	case "ctrl+r":
		path := s.result.Path
		return func() tea.Msg { return ReprocessMsg{Path: path} }
	case "ctrl+e":
		s.setStatus("Exporting…", false)
		return s.exportCmd()
	}

	if !s.inputFocused() && len(key) == 1 && key[0] >= '1' && key[0] <= '4' {
		return s.switchTab(tab(key[0] - '1'))
	}

	switch s.tab {
	case tabDashboard:
		s.dashOffset = scroll(s.dashOffset, key)
	case tabQuiz:
		return s.handleQuizKey(msg)
	case tabReview:
		return s.handleReviewKey(key)
	case tabTutor:
		return s.handleTutorKey(msg)
	}
	return nil
}

func (s *Screen) switchTab(t tab) tea.Cmd {
	if s.tab == tabQuiz && s.quiz.editing {
		s.quiz.stopEditing()
	}
	s.tab = t
	if t == tabTutor {
		return s.chat.input.Focus()
	}
	s.chat.input.Blur()
	return nil
}

func (s *Screen) setStatus(text string, failed bool) {
	s.status = text
	s.failed = failed
}

func scroll(offset int, key string) int {
	switch key {
	case "up", "k":
		return max(offset-1, 0)
	case "down", "j":
		return offset + 1
	case "pgup":
		return max(offset-10, 0)
	case "pgdown":
		return offset + 10
	case "home", "g":
		return 0
	}
	return offset
}

func (s *Screen) View(width, height int) string {
	tabs := components.RenderTabs(tabLabels, int(s.tab), width)
	statusLine := s.renderStatus(width)

	bodyHeight := max(height-lipgloss.Height(tabs)-lipgloss.Height(statusLine)-1, 0)

	var body string
	switch s.tab {
	case tabDashboard:
		body, s.dashOffset = layout.Window(s.renderDashboard(width), s.dashOffset, bodyHeight)
	case tabQuiz:
		body, _ = layout.Window(s.renderQuiz(width), 0, bodyHeight)
	case tabReview:
		body, s.reviewOffset = layout.Window(s.renderReview(width), s.reviewOffset, bodyHeight)
	case tabTutor:
		body = s.renderTutor(width, bodyHeight)
	}

	body = lipgloss.NewStyle().Height(bodyHeight).Render(body)
	return tabs + "\n" + body + "\n" + statusLine
}

func (s *Screen) renderStatus(width int) string {
	if s.status == "" {
		return ""
	}
	style := theme.Hint
	if s.failed {
		style = lipgloss.NewStyle().Foreground(theme.Error)
	}
	return style.Width(width - 2).Render("  " + s.status)
}

// wrap renders text at the given width with a left indent.
func wrap(text string, width int, style lipgloss.Style) string {
	return style.Width(max(width-4, 10)).PaddingLeft(2).Render(text)
}
