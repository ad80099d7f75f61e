package quiz

import (
	"fmt"
	"strings"
)

// Answer is a learner's submitted value: an option index for multiple
// choice, free text otherwise. Build one with ChoiceAnswer or TextAnswer.
type Answer struct {
	choice   int
	text     string
	isChoice bool
}

// ChoiceAnswer selects the option at index i.
func ChoiceAnswer(i int) Answer {
	return Answer{choice: i, isChoice: true}
}

// TextAnswer submits free text.
func TextAnswer(s string) Answer {
	return Answer{text: s}
}

// Choice returns the selected option index.
func (a Answer) Choice() (int, bool) {
	return a.choice, a.isChoice
}

// Text returns the submitted text.
func (a Answer) Text() (string, bool) {
	return a.text, !a.isChoice
}

// Fits reports whether the answer has the right shape for q: an
// in-range option index for multiple choice, text for everything else.
func (a Answer) Fits(q Question) bool {
	if mc, ok := q.Body.(*MultipleChoice); ok {
		return a.isChoice && a.choice >= 0 && a.choice < len(mc.Options)
	}
	return q.Body != nil && !a.isChoice
}

// Display renders the answer for q as the learner would read it.
func (a Answer) Display(q Question) string {
	if !a.isChoice {
		return a.text
	}
	if mc, ok := q.Body.(*MultipleChoice); ok && a.choice >= 0 && a.choice < len(mc.Options) {
		return mc.Options[a.choice]
	}
	return fmt.Sprintf("option %d", a.choice+1)
}

// Grade reports whether a is correct for q. Multiple choice compares
// indices; short answer and fill in the blank compare trimmed, lowercased
// text exactly. Essays are never graded and report false with
// graded=false.
func Grade(q Question, a Answer) (correct, graded bool) {
	switch b := q.Body.(type) {
	case *MultipleChoice:
		return a.isChoice && a.choice == b.CorrectIndex, true
	case *ShortAnswer:
		return matchText(a.text, b.Answer), true
	case *FillBlank:
		return matchText(a.text, b.Answer), true
	default:
		return false, false
	}
}

func matchText(given, want string) bool {
	return strings.ToLower(strings.TrimSpace(given)) == strings.ToLower(strings.TrimSpace(want))
}
