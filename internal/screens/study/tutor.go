package study

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/ui/components"
	"github.com/abhisek/studydeck/internal/ui/theme"
)

type chatState struct {
	input       components.TextInput
	suggestions components.Menu
	browsing    bool
	asking      bool
}

func newChatState() chatState {
	return chatState{input: components.NewTextInput("Ask about the slides...", 500)}
}

func (c *chatState) setSuggestions(items []string, ask func(string) tea.Cmd) {
	menuItems := make([]components.MenuItem, len(items))
	for i, q := range items {
		menuItems[i] = components.MenuItem{Label: q, Action: func() tea.Cmd { return ask(q) }}
	}
	c.suggestions = components.NewMenu(menuItems)
}

func (s *Screen) handleTutorKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.tutor == nil {
		return nil
	}
	key := msg.String()

	switch key {
	case "ctrl+l":
		s.tutor.Clear(s.result.RunID)
		return nil
	case "up", "down":
		if s.chat.input.Value() == "" && len(s.chat.suggestions.Items) > 0 {
			s.chat.browsing = true
			s.chat.suggestions, _ = s.chat.suggestions.Update(msg)
			return nil
		}
	case "enter":
		if s.chat.asking {
			return nil
		}
		question := strings.TrimSpace(s.chat.input.Value())
		if question == "" {
			if s.chat.browsing {
				var cmd tea.Cmd
				s.chat.suggestions, cmd = s.chat.suggestions.Update(msg)
				return cmd
			}
			return nil
		}
		s.chat.input.Reset()
		return s.askCmd(question)
	}

	s.chat.browsing = false
	var cmd tea.Cmd
	s.chat.input, cmd = s.chat.input.Update(msg)
	return cmd
}

// askCmd sends question to the tutor in the background.
func (s *Screen) askCmd(question string) tea.Cmd {
	if s.tutor == nil || s.chat.asking {
		return nil
	}
	s.chat.asking = true
	s.chat.browsing = false
	mgr, ctx, id := s.tutor, s.ctx, s.result.RunID
	return func() tea.Msg {
		return tutorReplyMsg{reply: mgr.Ask(ctx, id, question)}
	}
}

func (s *Screen) renderTutor(width, height int) string {
	if s.tutor == nil {
		return wrap("The tutor is unavailable.", width, theme.Hint)
	}

	var top strings.Builder
	if len(s.chat.suggestions.Items) > 0 {
		top.WriteString(theme.Section.Render("  Suggested questions") + "\n")
		top.WriteString(s.chat.suggestions.View(s.chat.browsing))
		top.WriteString("\n")
	}

	s.chat.input.SetWidth(max(width-8, 10))
	bottom := "  > " + s.chat.input.View()
	if s.chat.asking {
		bottom = theme.Pending.Render("  Thinking…") + "\n" + bottom
	}

	avail := height - lipgloss.Height(top.String()) - lipgloss.Height(bottom) - 1
	transcript := renderTranscript(s.tutor.History(s.result.RunID), width, avail)

	return top.String() + transcript + "\n" + bottom
}

// renderTranscript renders the newest messages that fit in height lines.
func renderTranscript(history []llm.Message, width, height int) string {
	if height <= 0 {
		return ""
	}
	if len(history) == 0 {
		return wrap("Ask anything about the deck.", width, theme.Hint)
	}

	var blocks []string
	used := 0
	for i := len(history) - 1; i >= 0; i-- {
		m := history[i]
		var block string
		if m.Role == llm.RoleUser {
			block = wrap("You: "+m.Content, width, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true))
		} else {
			block = wrap(m.Content, width, theme.Body)
		}
		h := lipgloss.Height(block) + 1
		if used+h > height && len(blocks) > 0 {
			break
		}
		blocks = append([]string{block}, blocks...)
		used += h
	}
	return strings.Join(blocks, "\n\n")
}
