// Package quiz defines staged quiz sets and generates them from slides.
package quiz

import "fmt"

// Kind identifies how a question is answered.
type Kind string

const (
	KindMultipleChoice Kind = "multiple_choice"
	KindShortAnswer    Kind = "short_answer"
	KindFillBlank      Kind = "fill_blank"
	KindEssay          Kind = "essay"
)

// AllKinds lists every question kind in display order.
var AllKinds = []Kind{KindMultipleChoice, KindShortAnswer, KindFillBlank, KindEssay}

// DefaultKinds is used when no kinds are configured. Essays are opt-in.
var DefaultKinds = []Kind{KindMultipleChoice, KindShortAnswer, KindFillBlank}

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindMultipleChoice:
		return "Multiple choice"
	case KindShortAnswer:
		return "Short answer"
	case KindFillBlank:
		return "Fill in the blank"
	case KindEssay:
		return "Essay"
	default:
		return string(k)
	}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown question kind %q", s)
}

// Question is one generated question. Questions are immutable after
// generation.
type Question struct {
	ID          int
	Prompt      string
	SourceSlide int
	Explanation string
	Body        Body
}

// Body carries the kind-specific part of a question. It is one of
// *MultipleChoice, *ShortAnswer, *FillBlank or *Essay.
type Body interface {
	Kind() Kind
	isBody()
}

// MultipleChoice is answered by picking one option.
type MultipleChoice struct {
	Options      []string
	CorrectIndex int
}

// ShortAnswer is answered with a word or short phrase.
type ShortAnswer struct {
	Answer string
}

// FillBlank is answered with the word that completes the prompt.
type FillBlank struct {
	Answer string
}

// Essay is answered in free text and never graded automatically.
type Essay struct {
	ModelAnswer string
}

func (*MultipleChoice) Kind() Kind { return KindMultipleChoice }
func (*ShortAnswer) Kind() Kind    { return KindShortAnswer }
func (*FillBlank) Kind() Kind      { return KindFillBlank }
func (*Essay) Kind() Kind          { return KindEssay }

func (*MultipleChoice) isBody() {}
func (*ShortAnswer) isBody()    {}
func (*FillBlank) isBody()      {}
func (*Essay) isBody()          {}

// Kind returns the question's kind, or "" when it has no body.
func (q Question) Kind() Kind {
	if q.Body == nil {
		return ""
	}
	return q.Body.Kind()
}

// CorrectText returns the canonical answer as text: the correct option
// for multiple choice, the expected answer otherwise.
func (q Question) CorrectText() string {
	switch b := q.Body.(type) {
	case *MultipleChoice:
		if b.CorrectIndex >= 0 && b.CorrectIndex < len(b.Options) {
			return b.Options[b.CorrectIndex]
		}
	case *ShortAnswer:
		return b.Answer
	case *FillBlank:
		return b.Answer
	case *Essay:
		return b.ModelAnswer
	}
	return ""
}

// validate checks the kind-specific shape of a question.
func (q Question) validate() error {
	switch b := q.Body.(type) {
	case nil:
		return fmt.Errorf("question %d has no body", q.ID)
	case *MultipleChoice:
		if len(b.Options) < 2 {
			return fmt.Errorf("question %d: multiple choice needs at least 2 options, got %d", q.ID, len(b.Options))
		}
		if b.CorrectIndex < 0 || b.CorrectIndex >= len(b.Options) {
			return fmt.Errorf("question %d: correct index %d out of range", q.ID, b.CorrectIndex)
		}
	case *ShortAnswer:
		if b.Answer == "" {
			return fmt.Errorf("question %d: short answer has no expected answer", q.ID)
		}
	case *FillBlank:
		if b.Answer == "" {
			return fmt.Errorf("question %d: fill in the blank has no expected answer", q.ID)
		}
	}
	return nil
}
