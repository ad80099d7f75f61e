package deck

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// truncationMarker is appended by Clip when text is shortened.
const truncationMarker = "\n\n... (content truncated)"

// CombinedText joins a slide's text blocks and renders its tables as
// pipe-separated rows.
func CombinedText(s Slide) string {
	var b strings.Builder
	b.WriteString(strings.Join(s.Texts, "\n"))
	for _, t := range s.Tables {
		b.WriteString("\n[Table]\n")
		b.WriteString(renderTable(t))
	}
	return b.String()
}

func renderTable(t Table) string {
	rows := make([]string, len(t))
	for i, row := range t {
		rows[i] = strings.Join(row, " | ")
	}
	return strings.Join(rows, "\n")
}

// SlideText renders the text blocks of every slide that has any, each
// under a "[Slide N]" heading. Tables and image analysis are left out;
// this is the input for summary and quiz generation.
func SlideText(slides []Slide) string {
	var parts []string
	for _, s := range slides {
		if len(s.Texts) == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Slide %d]\n%s", s.Index, strings.Join(s.Texts, "\n")))
	}
	return strings.Join(parts, "\n\n")
}

// FormatContext renders the full deck for the tutor: text, tables and
// image analysis for every slide.
func FormatContext(slides []Slide) string {
	parts := make([]string, 0, len(slides))
	for _, s := range slides {
		lines := []string{fmt.Sprintf("[Slide %d]", s.Index)}
		if len(s.Texts) > 0 {
			lines = append(lines, strings.Join(s.Texts, "\n"))
		}
		for _, t := range s.Tables {
			lines = append(lines, "[Table]\n"+renderTable(t))
		}
		if s.VisionAnalysis != "" {
			lines = append(lines, "[Image analysis]\n"+s.VisionAnalysis)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// Clip shortens text to at most max runes, marking the cut. Text within
// the limit is returned unchanged.
func Clip(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	n := 0
	for i := range text {
		if n == max {
			return text[:i] + truncationMarker
		}
		n++
	}
	return text
}

// Find returns the slide with the given 1-based index.
func Find(slides []Slide, index int) (Slide, bool) {
	if index >= 1 && index <= len(slides) && slides[index-1].Index == index {
		return slides[index-1], true
	}
	for _, s := range slides {
		if s.Index == index {
			return s, true
		}
	}
	return Slide{}, false
}

// CountImages returns the number of embedded pictures across all slides.
func CountImages(slides []Slide) int {
	n := 0
	for _, s := range slides {
		n += len(s.Images)
	}
	return n
}
