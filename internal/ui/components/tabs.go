package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// RenderTabs draws a tab bar with numbered labels and a rule beneath.
func RenderTabs(labels []string, active, width int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		label := fmt.Sprintf("%d %s", i+1, l)
		if i == active {
			parts[i] = theme.TabActive.Render(label)
		} else {
			parts[i] = theme.TabInactive.Render(label)
		}
	}
	bar := " " + strings.Join(parts, " ")
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-2, 0)))
	return bar + "\n" + rule
}
