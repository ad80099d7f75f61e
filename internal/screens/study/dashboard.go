package study

import (
	"fmt"
	"strings"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/ui/layout"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

func (s *Screen) renderDashboard(width int) string {
	var b strings.Builder
	b.WriteString(s.renderStats(width) + "\n\n")

	sum := s.result.Summary
	if sum.Degraded {
		b.WriteString(wrap("The summary could not be generated. Press Ctrl+R to try again.", width, theme.Hint) + "\n")
		return b.String()
	}

	if sum.OneLine != "" {
		b.WriteString(theme.Section.Render("  Overview") + "\n")
		b.WriteString(wrap(sum.OneLine, width, theme.Body) + "\n\n")
	}

	if len(sum.Keywords) > 0 {
		b.WriteString(theme.Section.Render("  Keywords") + "\n")
		b.WriteString(wrap(renderKeywords(sum.Keywords), width, theme.Body) + "\n\n")
	}

	if len(sum.Slides) > 0 {
		b.WriteString(theme.Section.Render("  Slides") + "\n")
		for _, sl := range sum.Slides {
			b.WriteString(theme.Title.Render(fmt.Sprintf("  %d. %s", sl.Slide, sl.Title)) + "\n")
			for _, kp := range sl.KeyPoints {
				b.WriteString(wrap("• "+kp, width, theme.Body) + "\n")
			}
		}
	}
	return b.String()
}

func (s *Screen) renderStats(width int) string {
	st := s.sess.Stats()
	accuracy := "–"
	if st.Answered > 0 {
		accuracy = fmt.Sprintf("%.0f%%", st.Accuracy()*100)
	}
	items := []struct{ label, value string }{
		{"Slides", fmt.Sprint(len(s.result.Slides))},
		{"Images", fmt.Sprint(deck.CountImages(s.result.Slides))},
		{"Questions", fmt.Sprint(st.TotalQuestions)},
		{"Answered", fmt.Sprint(st.Answered)},
		{"Accuracy", accuracy},
	}

	parts := make([]string, len(items))
	for i, it := range items {
		if layout.IsCompactWidth(width) {
			parts[i] = theme.Subtitle.Render(it.label[:1]+" ") + theme.Title.Render(it.value)
		} else {
			parts[i] = theme.Subtitle.Render(it.label+" ") + theme.Title.Render(it.value)
		}
	}
	return theme.Card.Render(strings.Join(parts, "   "))
}

func renderKeywords(keywords []string) string {
	chips := make([]string, len(keywords))
	for i, k := range keywords {
		chips[i] = theme.Keyword.Render(k)
	}
	return strings.Join(chips, " ")
}
