// Package layout draws the frame around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// Below MinWidth x MinHeight only a resize notice is drawn.
const (
	MinWidth  = 80
	MinHeight = 24

	// Screens switch to a single-column layout below this width.
	compactBelow = 100
)

type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < compactBelow
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small.\n\nResize to at least %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Body.Render(msg))
}

// Chrome is the header and footer drawn around a screen. Each takes two
// lines: a text line and a rule.
type Chrome struct {
	Title  string
	Status string
	Hints  []KeyHint
}

const chromeLines = 4

// Render fills a width x height frame. body is called with the space
// left between header and footer.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	bodyHeight := max(height-chromeLines, 0)
	content := lipgloss.NewStyle().Width(width).Height(bodyHeight).MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))
	return lipgloss.JoinVertical(lipgloss.Left, c.header(width), rule(width), content, rule(width), c.footer(width))
}

// header puts the app name and screen title on the left and the status on
// the right.
func (c Chrome) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" StudyDeck")
	if c.Title != "" {
		left += theme.Subtitle.Render("  ›  ") + theme.Body.Render(c.Title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(c.Status + " ")
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func (c Chrome) footer(width int) string {
	parts := make([]string, len(c.Hints))
	for i, h := range c.Hints {
		parts[i] = theme.Body.Bold(true).Render(h.Key) + " " + theme.Subtitle.Render(h.Description)
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(" " + strings.Join(parts, theme.Subtitle.Render("  ·  ")))
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}

// Window returns at most height lines of content starting at offset. The
// offset is clamped so the last page stays full, and returned.
func Window(content string, offset, height int) (string, int) {
	if height <= 0 {
		return "", 0
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	offset = min(max(offset, 0), max(len(lines)-height, 0))
	return strings.Join(lines[offset:min(offset+height, len(lines))], "\n"), offset
}
