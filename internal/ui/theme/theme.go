// Package theme holds the colors and text styles shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette for dark terminals.
var (
	Primary   = lipgloss.Color("#818CF8")
	Secondary = lipgloss.Color("#2DD4BF")
	Accent    = lipgloss.Color("#FBBF24")
	Success   = lipgloss.Color("#4ADE80")
	Error     = lipgloss.Color("#FB7185")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8B95A7")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#3F4A5C")
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title    = fg(Primary).Bold(true)
	Subtitle = fg(TextDim)
	Body     = fg(Text)
	Hint     = fg(TextDim).Italic(true)
	Section  = fg(Secondary).Bold(true)

	Selected  = fg(Primary).Bold(true)
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
	Pending   = fg(Accent)

	TabActive   = fg(Text).Background(Primary).Bold(true).Padding(0, 2)
	TabInactive = fg(TextDim).Padding(0, 2)
	Keyword     = fg(Secondary).Background(BgCard).Padding(0, 1)
	Card        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
)
