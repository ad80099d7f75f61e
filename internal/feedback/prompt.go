package feedback

import (
	"bytes"
	"text/template"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/session"
)

// excerptRunes bounds the slide text quoted next to each miss.
const excerptRunes = 400

const systemPrompt = `You are a study coach reviewing a learner's quiz mistakes on a slide deck.

Instructions:
- Find the concepts behind the mistakes rather than restating each one.
- Group related mistakes into weak areas and list the slides that cover each.
- Give 2-4 concrete recommendations that point to specific slides.
- Be encouraging and brief.`

type missView struct {
	Number        int
	Question      string
	UserAnswer    string
	CorrectAnswer string
	Slide         int
	Excerpt       string
}

var userTemplate = template.Must(template.New("feedback").Parse(`The learner answered {{len .}} question(s) incorrectly.
{{range .}}
Miss {{.Number}}:
Question: {{.Question}}
Learner's answer: {{.UserAnswer}}
Correct answer: {{.CorrectAnswer}}
Source slide: {{.Slide}}
{{if .Excerpt}}Slide text: {{.Excerpt}}
{{end}}{{end}}`))

func buildUserMessage(ledger []session.WrongAnswer, slides []deck.Slide) (string, error) {
	misses := make([]missView, len(ledger))
	for i, w := range ledger {
		v := missView{
			Number:        i + 1,
			Question:      w.Question.Prompt,
			UserAnswer:    w.UserAnswer,
			CorrectAnswer: w.CorrectAnswer,
			Slide:         w.Question.SourceSlide,
		}
		if s, ok := deck.Find(slides, w.Question.SourceSlide); ok {
			v.Excerpt = deck.Clip(deck.CombinedText(s), excerptRunes)
		}
		misses[i] = v
	}

	var buf bytes.Buffer
	if err := userTemplate.Execute(&buf, misses); err != nil {
		return "", err
	}
	return buf.String(), nil
}
