// Package session holds the quiz session state machine: which stage the
// learner is on, what they answered, and the ledger of wrong answers.
package session

import (
	"fmt"
	"maps"

	"github.com/abhisek/studydeck/internal/quiz"
)

// Outcome is the result of grading one submission.
type Outcome int

const (
	Correct Outcome = iota
	Incorrect
	Ungraded
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Ungraded:
		return "ungraded"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// WrongAnswer is one ledger entry. For multiple choice UserAnswer and
// CorrectAnswer hold the option texts.
type WrongAnswer struct {
	Question      quiz.Question
	Given         quiz.Answer
	UserAnswer    string
	CorrectAnswer string
}

// Session tracks a learner's pass through a quiz set. The zero value is
// an empty session. A Session is owned by one goroutine and is not safe
// for concurrent use.
//
// The stage index runs from 0 to len(stages); len(stages) means the
// session is complete.
type Session struct {
	set      quiz.Set
	loaded   bool
	stage    int
	answers  map[int]quiz.Answer
	ledger   []WrongAnswer
	feedback *Feedback
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Load replaces the quiz set and starts over at the first stage.
func (s *Session) Load(set quiz.Set) error {
	if err := set.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuizSet, err)
	}
	s.set = set
	s.loaded = true
	s.clear()
	return nil
}

// Reset clears all answers, the ledger and feedback, and returns to the
// first stage. The quiz set is kept.
func (s *Session) Reset() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	s.clear()
	return nil
}

func (s *Session) clear() {
	s.stage = 0
	s.answers = make(map[int]quiz.Answer)
	s.ledger = nil
	s.feedback = nil
}

// Advance moves to the next stage, or to completion after the last one.
func (s *Session) Advance() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.IsComplete() {
		return ErrAtFinalStage
	}
	s.stage++
	return nil
}

// Retreat moves to the previous stage. From completion it returns to the
// last stage.
func (s *Session) Retreat() error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if s.stage == 0 {
		return ErrAtFirstStage
	}
	s.stage--
	return nil
}

// SubmitAnswer records an answer to a question in the current stage and
// grades it. Wrong answers are appended to the ledger. Essays are
// recorded but never graded.
func (s *Session) SubmitAnswer(id int, a quiz.Answer) (Outcome, error) {
	if !s.loaded {
		return 0, ErrNotLoaded
	}
	q, ok := s.currentQuestion(id)
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
	}
	if _, done := s.answers[id]; done {
		return 0, fmt.Errorf("%w: %d", ErrAlreadyAnswered, id)
	}
	if !a.Fits(q) {
		return 0, fmt.Errorf("%w: question %d is %s", ErrAnswerMismatch, id, q.Kind())
	}

	s.answers[id] = a

	correct, graded := quiz.Grade(q, a)
	switch {
	case !graded:
		return Ungraded, nil
	case correct:
		return Correct, nil
	}

	s.ledger = append(s.ledger, WrongAnswer{
		Question:      q,
		Given:         a,
		UserAnswer:    a.Display(q),
		CorrectAnswer: q.CorrectText(),
	})
	return Incorrect, nil
}

func (s *Session) currentQuestion(id int) (quiz.Question, bool) {
	if s.IsComplete() {
		return quiz.Question{}, false
	}
	for _, q := range s.set.Stages[s.stage].Questions {
		if q.ID == id {
			return q, true
		}
	}
	return quiz.Question{}, false
}

// Loaded reports whether a quiz set has been loaded.
func (s *Session) Loaded() bool { return s.loaded }

// Set returns the loaded quiz set.
func (s *Session) Set() quiz.Set { return s.set }

// StageIndex returns the current stage index. It equals the number of
// stages once the session is complete.
func (s *Session) StageIndex() int { return s.stage }

// IsComplete reports whether every stage has been passed.
func (s *Session) IsComplete() bool {
	return s.loaded && s.stage >= len(s.set.Stages)
}

// Stage returns the current stage, or false when the session is empty
// or complete.
func (s *Session) Stage() (quiz.Stage, bool) {
	if !s.loaded || s.IsComplete() {
		return quiz.Stage{}, false
	}
	return s.set.Stages[s.stage], true
}

// Answer returns the recorded answer for a question.
func (s *Session) Answer(id int) (quiz.Answer, bool) {
	a, ok := s.answers[id]
	return a, ok
}

// Answers returns a copy of the answer record.
func (s *Session) Answers() map[int]quiz.Answer {
	return maps.Clone(s.answers)
}

// Ledger returns a copy of the wrong answers in submission order.
func (s *Session) Ledger() []WrongAnswer {
	out := make([]WrongAnswer, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// SetFeedback attaches generated feedback to the session.
func (s *Session) SetFeedback(f Feedback) {
	s.feedback = &f
}

// Feedback returns the attached feedback, if any.
func (s *Session) Feedback() (Feedback, bool) {
	if s.feedback == nil {
		return Feedback{}, false
	}
	return *s.feedback, true
}
