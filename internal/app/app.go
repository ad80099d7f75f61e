// Package app is the root Bubble Tea model. It runs the processing screen
// for a deck and swaps in the study screen once the deck is ready.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screen"
	"github.com/abhisek/studydeck/internal/screens/processing"
	"github.com/abhisek/studydeck/internal/screens/study"
	"github.com/abhisek/studydeck/internal/ui/layout"
)

// Deps holds the collaborators the TUI needs.
type Deps struct {
	Processor processing.Runner
	Provider  llm.Provider
	Config    config.Study
	Path      string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	ctx    context.Context
	deps   Deps
	router *router.Router
	width  int
	height int
}

// newAppModel creates an AppModel that starts processing deps.Path.
func newAppModel(ctx context.Context, deps Deps) AppModel {
	return AppModel{
		ctx:    ctx,
		deps:   deps,
		router: router.New(processing.New(ctx, deps.Processor, deps.Path, deps.Config)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case processing.DoneMsg:
		next := study.New(m.ctx, msg.Result, study.Deps{Provider: m.deps.Provider, Config: m.deps.Config})
		return m, m.router.Replace(next)

	case study.ReprocessMsg:
		next := processing.New(m.ctx, m.deps.Processor, msg.Path, m.deps.Config)
		return m, m.router.Replace(next)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	chrome := layout.Chrome{Hints: []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}}
	if active := m.router.Active(); active != nil {
		chrome.Title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			chrome.Status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			chrome.Hints = kp.KeyHints()
		}
	}
	frame := chrome.Render(m.width, m.height, m.router.View)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program on deps.Path.
func Run(ctx context.Context, deps Deps) error {
	p := tea.NewProgram(newAppModel(ctx, deps), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
