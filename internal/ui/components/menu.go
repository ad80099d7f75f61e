package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studydeck/internal/ui/theme"
)

// MenuItem is one selectable line. Action runs when the item is chosen.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list with a cursor that wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor on up/down and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		if act := m.Items[m.Selected].Action; act != nil {
			return m, act()
		}
	}
	return m, nil
}

// View renders the items; the cursor is only drawn while focused.
func (m Menu) View(focused bool) string {
	plain := lipgloss.NewStyle().Foreground(theme.TextDim)
	cursor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	for i, item := range m.Items {
		if focused && i == m.Selected {
			b.WriteString(cursor.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(plain.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
