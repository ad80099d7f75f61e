package study

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/export"
)

// examPaths returns the exam and answer key paths next to the deck.
func examPaths(deckPath string) (exam, key string) {
	base := strings.TrimSuffix(deckPath, filepath.Ext(deckPath))
	return base + "-exam.pdf", base + "-answers.pdf"
}

func (s *Screen) exportCmd() tea.Cmd {
	set := s.sess.Set()
	if !s.sess.Loaded() {
		set = s.result.Quiz
	}
	path := s.result.Path
	fontPath := s.deps.Config.FontPath

	return func() tea.Msg {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		var opts []export.Option
		if fontPath != "" {
			opts = append(opts, export.WithFont(fontPath))
		}

		examPath, keyPath := examPaths(path)
		for _, out := range []struct {
			path    string
			answers bool
		}{{examPath, false}, {keyPath, true}} {
			data, err := export.Exam(set, title, out.answers, opts...)
			if err != nil {
				return exportMsg{err: err}
			}
			if err := os.WriteFile(out.path, data, 0o644); err != nil {
				return exportMsg{err: fmt.Errorf("write %s: %w", out.path, err)}
			}
		}
		return exportMsg{paths: []string{examPath, keyPath}}
	}
}
