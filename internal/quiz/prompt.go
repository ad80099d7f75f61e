package quiz

import (
	"fmt"
	"strings"

	"github.com/abhisek/studydeck/internal/deck"
)

// maxInputRunes bounds the slide text sent for quiz generation.
const maxInputRunes = 12000

const systemPrompt = `You are a study assistant writing a quiz from lecture slides.

Rules:
- Write exactly three stages in order: "basic" (terms and definitions), "applied" (applying concepts) and "advanced" (synthesis and critical thinking).
- Every question must be answerable from the slides. Set source_slide to the slide number the question is based on.
- Use only the question types you are allowed.
- multiple_choice: exactly 4 options, exactly one correct, correct_index is its 0-based position. Distractors should reflect plausible misunderstandings.
- short_answer: the answer is 1-3 words.
- fill_blank: mark the blank in the question with ____ and give the missing word as the answer.
- essay: give a short model answer.
- Every question has a one or two sentence explanation.
- Match the vocabulary and depth to the learner's level.`

// perStage returns how many questions each stage should hold.
func perStage(total int) int {
	return max(total/3, 2)
}

func buildUserMessage(slides []deck.Slide, opts Options) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Learner level: %s\n", opts.Level)
	fmt.Fprintf(&b, "Questions per stage: %d\n", perStage(opts.NumQuestions))

	kinds := make([]string, 0, len(opts.Kinds))
	for _, k := range opts.kinds() {
		kinds = append(kinds, string(k))
	}
	fmt.Fprintf(&b, "Allowed question types: %s\n", strings.Join(kinds, ", "))

	b.WriteString("\nSlides:\n")
	b.WriteString(deck.Clip(deck.SlideText(slides), maxInputRunes))
	return b.String()
}
