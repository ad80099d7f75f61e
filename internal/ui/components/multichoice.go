package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. Options are numbered from 1.
type MultiChoice struct {
	Options  []string
	Selected int

	// Chosen and Correct are set by Reveal; -1 means unknown.
	Chosen  int
	Correct int
}

// NewMultiChoice creates a selector with nothing revealed.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1, Correct: -1}
}

// Revealed reports whether the result is being shown.
func (m MultiChoice) Revealed() bool {
	return m.Chosen >= 0
}

// Reveal shows the learner's choice against the correct option.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.Chosen = chosen
	m.Correct = correct
}

// Update moves the cursor. Selection is confirmed by the caller.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}
	return m, nil
}

// View renders the options. With focused false the cursor is hidden.
func (m MultiChoice) View(focused bool) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if focused && i == m.Selected && !m.Revealed() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Revealed() && i == m.Correct:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Revealed() && i == m.Chosen:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.Revealed():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case focused && i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
