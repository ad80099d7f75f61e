package study

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

func (s *Screen) handleReviewKey(key string) tea.Cmd {
	if key != "f" {
		s.reviewOffset = scroll(s.reviewOffset, key)
		return nil
	}
	if s.feedbackPending {
		return nil
	}
	s.feedbackPending = true

	gen, ctx := s.feedback, s.ctx
	ledger := s.sess.Ledger()
	slides := s.result.Slides
	attempt := s.attempt
	return func() tea.Msg {
		return feedbackMsg{attempt: attempt, feedback: gen.Generate(ctx, ledger, slides)}
	}
}

func (s *Screen) renderReview(width int) string {
	var b strings.Builder
	ledger := s.sess.Ledger()

	b.WriteString(theme.Section.Render(fmt.Sprintf("  Wrong answers (%d)", len(ledger))) + "\n\n")
	if len(ledger) == 0 {
		b.WriteString(wrap("No wrong answers yet.", width, theme.Hint) + "\n\n")
	}
	for _, w := range ledger {
		q := w.Question
		b.WriteString(theme.Title.Render(fmt.Sprintf("  Q%d", q.ID)) +
			theme.Subtitle.Render(fmt.Sprintf(" · slide %d", q.SourceSlide)) + "\n")
		b.WriteString(wrap(q.Prompt, width, theme.Body) + "\n")
		b.WriteString(wrap("Your answer: "+w.UserAnswer, width, lipgloss.NewStyle().Foreground(theme.Error)) + "\n")
		b.WriteString(wrap("Correct answer: "+w.CorrectAnswer, width, lipgloss.NewStyle().Foreground(theme.Success)) + "\n")
		if q.Explanation != "" {
			b.WriteString(wrap(q.Explanation, width, theme.Hint) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Section.Render("  Weak areas") + "\n")
	fb, ok := s.sess.Feedback()
	switch {
	case s.feedbackPending:
		b.WriteString(theme.Pending.Render("  Analyzing your answers…") + "\n")
	case !ok:
		b.WriteString(wrap("Press f for an analysis of your weak areas.", width, theme.Hint) + "\n")
	default:
		b.WriteString(wrap(fb.Analysis, width, theme.Body) + "\n")
		for _, wa := range fb.WeakAreas {
			b.WriteString("\n" + theme.Title.Render("  "+wa.Area))
			if len(wa.RelatedSlides) > 0 {
				b.WriteString(theme.Subtitle.Render(" · slides " + joinInts(wa.RelatedSlides)))
			}
			b.WriteString("\n" + wrap(wa.Description, width, theme.Body) + "\n")
		}
		if len(fb.Recommendations) > 0 {
			b.WriteString("\n" + theme.Section.Render("  Recommendations") + "\n")
			for _, r := range fb.Recommendations {
				b.WriteString(wrap("• "+r, width, theme.Body) + "\n")
			}
		}
	}
	return b.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
