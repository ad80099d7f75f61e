package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// ProgressBar shows how many questions of a stage are answered.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// View renders "label ▰▰▰▱▱ done/total". The bar takes whatever width the
// label and counter leave, but never less than four cells.
func (p ProgressBar) View() string {
	label := ""
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}
	count := fmt.Sprintf("  %d/%d", p.Done, p.Total)

	cells := max(p.Width-lipgloss.Width(label)-len(count), 4)
	filled := 0
	if p.Total > 0 {
		filled = min(max(cells*p.Done/p.Total, 0), cells)
	}

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("▰", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", cells-filled))
	return label + bar + lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
}
