package study

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/quiz"
	"github.com/abhisek/studydeck/internal/session"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

// quizState is the view state of the quiz tab. The session holds the
// answers; this only tracks focus and per-question widgets.
type quizState struct {
	cursor  int
	choices map[int]components.MultiChoice
	input   components.TextInput
	editing bool
	err     string
}

func newQuizState() quizState {
	return quizState{
		choices: make(map[int]components.MultiChoice),
		input:   components.NewTextInput("Type your answer...", 200),
	}
}

// sync rebuilds the widgets for the current stage from the session.
func (q *quizState) sync(sess *session.Session) {
	q.cursor = 0
	q.err = ""
	q.stopEditing()
	q.choices = make(map[int]components.MultiChoice)

	st, ok := sess.Stage()
	if !ok {
		return
	}
	for _, question := range st.Questions {
		mc, isMC := question.Body.(*quiz.MultipleChoice)
		if !isMC {
			continue
		}
		c := components.NewMultiChoice(mc.Options)
		if a, answered := sess.Answer(question.ID); answered {
			if i, ok := a.Choice(); ok {
				c.Selected = i
				c.Reveal(i, mc.CorrectIndex)
			}
		}
		q.choices[question.ID] = c
	}
}

func (q *quizState) stopEditing() {
	q.editing = false
	q.input.Blur()
	q.input.Reset()
}

func (s *Screen) currentQuestion() (quiz.Question, bool) {
	st, ok := s.sess.Stage()
	if !ok || len(st.Questions) == 0 {
		return quiz.Question{}, false
	}
	s.quiz.cursor = min(max(s.quiz.cursor, 0), len(st.Questions)-1)
	return st.Questions[s.quiz.cursor], true
}

func (s *Screen) handleQuizKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	if s.quiz.editing {
		switch key {
		case "esc":
			s.quiz.stopEditing()
			return nil
		case "enter":
			q, ok := s.currentQuestion()
			if !ok {
				return nil
			}
			s.submit(q, quiz.TextAnswer(s.quiz.input.Value()))
			s.quiz.stopEditing()
			return nil
		}
		var cmd tea.Cmd
		s.quiz.input, cmd = s.quiz.input.Update(msg)
		return cmd
	}

	switch key {
	case "n":
		s.stageMove(s.sess.Advance)
		return nil
	case "p":
		s.stageMove(s.sess.Retreat)
		return nil
	case "r":
		if s.sess.IsComplete() {
			s.restart()
		}
		return nil
	}

	q, ok := s.currentQuestion()
	if !ok {
		return nil
	}

	switch key {
	case "left", "h":
		s.quiz.cursor = max(s.quiz.cursor-1, 0)
		s.quiz.err = ""
	case "right", "l":
		s.quiz.cursor++
		s.quiz.err = ""
		s.currentQuestion()
	case "up", "k", "down", "j":
		if c, isMC := s.quiz.choices[q.ID]; isMC {
			s.quiz.choices[q.ID], _ = c.Update(msg)
		}
	case "enter":
		if _, answered := s.sess.Answer(q.ID); answered {
			return nil
		}
		if c, isMC := s.quiz.choices[q.ID]; isMC {
			s.submit(q, quiz.ChoiceAnswer(c.Selected))
			return nil
		}
		s.quiz.editing = true
		s.quiz.input.Reset()
		return s.quiz.input.Focus()
	}
	return nil
}

func (s *Screen) submit(q quiz.Question, a quiz.Answer) {
	_, err := s.sess.SubmitAnswer(q.ID, a)
	if err != nil {
		s.quiz.err = submitError(err)
		return
	}
	s.quiz.err = ""
	if c, isMC := s.quiz.choices[q.ID]; isMC {
		i, _ := a.Choice()
		c.Reveal(i, q.Body.(*quiz.MultipleChoice).CorrectIndex)
		s.quiz.choices[q.ID] = c
	}
}

func submitError(err error) string {
	switch {
	case errors.Is(err, session.ErrAlreadyAnswered):
		return "You already answered this question."
	case errors.Is(err, session.ErrAnswerMismatch):
		return "That answer does not fit this question."
	default:
		return err.Error()
	}
}

func (s *Screen) stageMove(move func() error) {
	if err := move(); err != nil {
		if errors.Is(err, session.ErrAtFinalStage) || errors.Is(err, session.ErrAtFirstStage) {
			return
		}
		s.setStatus(err.Error(), true)
		return
	}
	s.quiz.sync(s.sess)
}

func (s *Screen) restart() {
	if err := s.sess.Reset(); err != nil {
		s.setStatus(err.Error(), true)
		return
	}
	s.attempt++
	s.feedbackPending = false
	s.reviewOffset = 0
	s.quiz.sync(s.sess)
}

func (s *Screen) renderQuiz(width int) string {
	if !s.sess.Loaded() {
		return wrap("No quiz is available for this deck. Press Ctrl+R to reprocess.", width, theme.Hint)
	}

	var b strings.Builder
	b.WriteString(s.renderStageList())
	b.WriteString("\n")

	if s.sess.IsComplete() {
		b.WriteString(s.renderComplete(width))
		return b.String()
	}

	st, _ := s.sess.Stage()
	p := s.sess.Progress()
	bar := components.NewProgressBar(st.Title, p.Answered, p.Total, min(width-6, 60))
	b.WriteString("  " + bar.View() + "\n\n")

	q, ok := s.currentQuestion()
	if !ok {
		b.WriteString(wrap("This stage has no questions. Press n to continue.", width, theme.Hint))
		return b.String()
	}

	header := fmt.Sprintf("Question %d of %d · %s · slide %d", s.quiz.cursor+1, len(st.Questions), q.Kind().Label(), q.SourceSlide)
	b.WriteString(theme.Subtitle.Render("  "+header) + "\n\n")
	b.WriteString(wrap(q.Prompt, width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true)) + "\n\n")
	b.WriteString(s.renderAnswerArea(q, width))

	if s.quiz.err != "" {
		b.WriteString("\n" + wrap(s.quiz.err, width, lipgloss.NewStyle().Foreground(theme.Error)))
	}
	return b.String()
}

func (s *Screen) renderStageList() string {
	set := s.sess.Set()
	parts := make([]string, len(set.Stages))
	for i, st := range set.Stages {
		label := fmt.Sprintf("%s (%d)", st.Title, len(st.Questions))
		switch {
		case i < s.sess.StageIndex():
			parts[i] = theme.Correct.Render("✓ " + label)
		case i == s.sess.StageIndex():
			parts[i] = theme.Selected.Render("▸ " + label)
		default:
			parts[i] = theme.Subtitle.Render("· " + label)
		}
	}
	return "  " + strings.Join(parts, "   ") + "\n"
}

func (s *Screen) renderAnswerArea(q quiz.Question, width int) string {
	var b strings.Builder
	a, answered := s.sess.Answer(q.ID)

	if c, isMC := s.quiz.choices[q.ID]; isMC {
		for _, line := range strings.Split(strings.TrimRight(c.View(true), "\n"), "\n") {
			b.WriteString("  " + line + "\n")
		}
	} else if !answered {
		if s.quiz.editing {
			s.quiz.input.SetWidth(max(width-14, 10))
			b.WriteString("  Answer: " + s.quiz.input.View() + "\n")
		} else {
			b.WriteString(theme.Hint.Render("  Press Enter to type your answer.") + "\n")
		}
	} else {
		b.WriteString(wrap("Your answer: "+a.Display(q), width, theme.Body) + "\n")
	}

	if !answered {
		return b.String()
	}

	b.WriteString("\n")
	correct, graded := quiz.Grade(q, a)
	switch {
	case !graded:
		b.WriteString(theme.Pending.Render("  Recorded. Essays are not graded automatically.") + "\n")
		if model := q.CorrectText(); model != "" {
			b.WriteString(wrap("Model answer: "+model, width, theme.Subtitle) + "\n")
		}
	case correct:
		b.WriteString(theme.Correct.Render("  ✓ Correct") + "\n")
	default:
		b.WriteString(theme.Incorrect.Render("  ✗ Incorrect") + "\n")
		b.WriteString(wrap("Correct answer: "+q.CorrectText(), width, theme.Body) + "\n")
	}
	if q.Explanation != "" {
		b.WriteString(wrap(q.Explanation, width, theme.Hint) + "\n")
	}
	return b.String()
}

func (s *Screen) renderComplete(width int) string {
	st := s.sess.Stats()
	var b strings.Builder
	b.WriteString(theme.Title.Render("  Quiz complete") + "\n\n")
	b.WriteString(fmt.Sprintf("  Answered %d of %d questions\n", st.Answered, st.TotalQuestions))
	b.WriteString(fmt.Sprintf("  Wrong answers: %d\n", st.Wrong))
	if st.Answered > 0 {
		b.WriteString(fmt.Sprintf("  Accuracy: %.0f%%\n", st.Accuracy()*100))
	}
	b.WriteString("\n")
	b.WriteString(wrap("Press r to restart, or open the Review tab to go over your mistakes.", width, theme.Hint))
	return b.String()
}
