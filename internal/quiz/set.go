package quiz

import (
	"errors"
	"fmt"
)

// Level is a stage's difficulty tier.
type Level string

const (
	LevelBasic    Level = "basic"
	LevelApplied  Level = "applied"
	LevelAdvanced Level = "advanced"
)

// Levels is the fixed stage order of every generated set.
var Levels = []Level{LevelBasic, LevelApplied, LevelAdvanced}

// Title returns the display name of the tier.
func (l Level) Title() string {
	switch l {
	case LevelBasic:
		return "Foundations"
	case LevelApplied:
		return "Practice"
	case LevelAdvanced:
		return "Deep Dive"
	default:
		return string(l)
	}
}

// Focus describes what questions in the tier test.
func (l Level) Focus() string {
	switch l {
	case LevelBasic:
		return "terms and definitions"
	case LevelApplied:
		return "applying concepts"
	case LevelAdvanced:
		return "synthesis and critical thinking"
	default:
		return ""
	}
}

// Stage is one difficulty tier of a quiz set.
type Stage struct {
	Level     Level
	Title     string
	Questions []Question
}

// Set is an ordered sequence of stages. A set is replaced wholesale when
// a deck is reprocessed and is never modified in place.
type Set struct {
	Stages []Stage

	// Fallback marks the placeholder set produced when generation failed.
	Fallback bool
}

// ErrEmptySet is returned by Validate for a set with no stages.
var ErrEmptySet = errors.New("quiz set has no stages")

// Validate checks that the set has at least one stage, that question IDs
// run 1..N across all stages in order, and that every question is well
// formed for its kind.
func (s Set) Validate() error {
	if len(s.Stages) == 0 {
		return ErrEmptySet
	}
	want := 1
	for _, st := range s.Stages {
		for _, q := range st.Questions {
			if q.ID != want {
				return fmt.Errorf("question IDs must be contiguous from 1: expected %d, got %d", want, q.ID)
			}
			if err := q.validate(); err != nil {
				return err
			}
			want++
		}
	}
	return nil
}

// Count returns the number of questions across all stages.
func (s Set) Count() int {
	n := 0
	for _, st := range s.Stages {
		n += len(st.Questions)
	}
	return n
}

// Questions returns every question in stage order.
func (s Set) Questions() []Question {
	out := make([]Question, 0, s.Count())
	for _, st := range s.Stages {
		out = append(out, st.Questions...)
	}
	return out
}

// Lookup finds a question by ID and reports its stage index.
func (s Set) Lookup(id int) (Question, int, bool) {
	for i, st := range s.Stages {
		for _, q := range st.Questions {
			if q.ID == id {
				return q, i, true
			}
		}
	}
	return Question{}, -1, false
}

// Renumber returns a copy of the set whose question IDs run 1..N in
// stage order, regardless of the IDs it had.
func (s Set) Renumber() Set {
	out := Set{Stages: make([]Stage, len(s.Stages)), Fallback: s.Fallback}
	id := 1
	for i, st := range s.Stages {
		qs := make([]Question, len(st.Questions))
		for j, q := range st.Questions {
			q.ID = id
			id++
			qs[j] = q
		}
		out.Stages[i] = Stage{Level: st.Level, Title: st.Title, Questions: qs}
	}
	return out
}
