package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/quiz"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
level: high school
num_questions: 12
kinds: [multiple_choice, essay]
analyze_images: false
font_path: /fonts/DejaVuSans.ttf
timeout: 90s
`))
	require.NoError(t, err)

	assert.Equal(t, LevelHighSchool, cfg.Level)
	assert.Equal(t, 12, cfg.NumQuestions)
	assert.False(t, cfg.ImagesEnabled())
	assert.Equal(t, "/fonts/DejaVuSans.ttf", cfg.FontPath)
	assert.Equal(t, 90*time.Second, cfg.Timeout)

	opts := cfg.QuizOptions()
	assert.Equal(t, []quiz.Kind{quiz.KindMultipleChoice, quiz.KindEssay}, opts.Kinds)
	assert.Equal(t, 12, opts.NumQuestions)
	assert.Equal(t, LevelHighSchool, opts.Level)
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, LevelUniversity, cfg.Level)
	assert.Equal(t, DefaultQuestions, cfg.NumQuestions)
	assert.True(t, cfg.ImagesEnabled())
	assert.Equal(t, quiz.DefaultKinds, cfg.QuizOptions().Kinds)
	assert.NotContains(t, cfg.QuizOptions().Kinds, quiz.KindEssay)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "levle: expert\n"},
		{"unknown level", "level: kindergarten\n"},
		{"too few questions", "num_questions: 2\n"},
		{"too many questions", "num_questions: 31\n"},
		{"unknown kind", "kinds: [true_false]\n"},
		{"two documents", "level: expert\n---\nlevel: expert\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Level, cfg.Level)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("level: expert\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, LevelExpert, cfg.Level)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/studydeck/config.yaml", DefaultPath())
}
