// Package config loads study preferences from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studydeck/internal/quiz"
)

// Audience levels the model writes for.
const (
	LevelMiddleSchool = "middle school"
	LevelHighSchool   = "high school"
	LevelUniversity   = "university"
	LevelExpert       = "expert"
)

// Levels lists the accepted audience levels.
var Levels = []string{LevelMiddleSchool, LevelHighSchool, LevelUniversity, LevelExpert}

const (
	MinQuestions     = 5
	MaxQuestions     = 30
	DefaultQuestions = 10
)

// Study holds per-user study preferences.
type Study struct {
	Level         string        `yaml:"level"`
	NumQuestions  int           `yaml:"num_questions"`
	Kinds         []string      `yaml:"kinds"`
	AnalyzeImages *bool         `yaml:"analyze_images"`
	FontPath      string        `yaml:"font_path"`
	Timeout       time.Duration `yaml:"timeout"`
	VisionTimeout time.Duration `yaml:"vision_timeout"`
}

// Default returns the preferences used when no file exists.
func Default() Study {
	on := true
	return Study{
		Level:         LevelUniversity,
		NumQuestions:  DefaultQuestions,
		AnalyzeImages: &on,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/studydeck/config.yaml, falling back
// to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "studydeck", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "studydeck", "config.yaml")
}

// Load reads preferences from path. A missing file yields Default.
func Load(path string) (Study, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Study{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a single YAML document, rejecting unknown fields, and
// fills defaults for unset values.
func Parse(data []byte) (Study, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Study{}, fmt.Errorf("parse config: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return Study{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Study{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Level == "" {
		cfg.Level = LevelUniversity
	}
	if cfg.NumQuestions == 0 {
		cfg.NumQuestions = DefaultQuestions
	}
	if cfg.AnalyzeImages == nil {
		on := true
		cfg.AnalyzeImages = &on
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and names.
func (s Study) Validate() error {
	if !validLevel(s.Level) {
		return fmt.Errorf("unknown level %q (want one of %q)", s.Level, Levels)
	}
	if s.NumQuestions < MinQuestions || s.NumQuestions > MaxQuestions {
		return fmt.Errorf("num_questions must be between %d and %d, got %d", MinQuestions, MaxQuestions, s.NumQuestions)
	}
	if _, err := s.QuestionKinds(); err != nil {
		return err
	}
	if s.Timeout < 0 || s.VisionTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	return nil
}

// QuestionKinds parses Kinds. Empty means quiz.DefaultKinds, so essays
// only appear when listed.
func (s Study) QuestionKinds() ([]quiz.Kind, error) {
	if len(s.Kinds) == 0 {
		return quiz.DefaultKinds, nil
	}
	out := make([]quiz.Kind, 0, len(s.Kinds))
	for _, name := range s.Kinds {
		k, err := quiz.ParseKind(name)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

// ImagesEnabled reports whether slide images should be analyzed.
func (s Study) ImagesEnabled() bool {
	return s.AnalyzeImages == nil || *s.AnalyzeImages
}

// QuizOptions converts the preferences into quiz generation options.
func (s Study) QuizOptions() quiz.Options {
	opts := quiz.DefaultOptions()
	opts.Level = s.Level
	opts.NumQuestions = s.NumQuestions
	if kinds, err := s.QuestionKinds(); err == nil {
		opts.Kinds = kinds
	}
	return opts
}

func validLevel(l string) bool {
	for _, v := range Levels {
		if v == l {
			return true
		}
	}
	return false
}
