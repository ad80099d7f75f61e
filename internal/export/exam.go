// Package export renders quiz sets as printable exams.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/abhisek/studydeck/internal/quiz"
)

const (
	lineHeight   = 6.0
	answerLines  = 1
	essayLines   = 6
	pageMargin   = 18.0
	answerIndent = 8.0
)

type options struct {
	fontPath string
	compress bool
	now      func() time.Time
}

// Option configures Exam.
type Option func(*options)

// WithFont embeds a UTF-8 TrueType font. Without one, text is rendered
// in Helvetica and characters outside cp1252 are lost.
func WithFont(path string) Option {
	return func(o *options) { o.fontPath = path }
}

// WithCompression toggles stream compression.
func WithCompression(on bool) Option {
	return func(o *options) { o.compress = on }
}

// WithClock sets the time used for the date line.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Exam renders set as an A4 PDF. With includeAnswers, correct answers are
// printed under each gradable question. Essays never show an answer.
func Exam(set quiz.Set, title string, includeAnswers bool, opts ...Option) ([]byte, error) {
	o := options{compress: true, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetCompression(o.compress)

	w := &writer{pdf: pdf, family: "Helvetica", tr: func(s string) string { return s }}
	if o.fontPath != "" {
		pdf.AddUTF8Font("Body", "", o.fontPath)
		pdf.AddUTF8Font("Body", "B", o.fontPath)
		w.family = "Body"
	} else {
		w.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	pdf.AddPage()
	w.heading(title, o.now())

	for _, st := range set.Stages {
		if len(st.Questions) == 0 {
			continue
		}
		w.stage(st)
		for _, q := range st.Questions {
			w.question(q, includeAnswers)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render exam: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write exam: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func (w *writer) font(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

func (w *writer) text(s string) {
	w.pdf.MultiCell(0, lineHeight, w.tr(s), "", "L", false)
}

func (w *writer) heading(title string, date time.Time) {
	w.font("B", 18)
	w.pdf.CellFormat(0, 10, w.tr("Practice Exam"), "", 1, "C", false, 0, "")
	if title != "" {
		w.font("", 13)
		w.pdf.CellFormat(0, 8, w.tr(title), "", 1, "C", false, 0, "")
	}
	w.pdf.Ln(4)
	w.font("", 11)
	w.pdf.CellFormat(110, lineHeight, "Name: ______________________________", "", 0, "L", false, 0, "")
	w.pdf.CellFormat(0, lineHeight, "Date: "+date.Format("2006-01-02"), "", 1, "R", false, 0, "")
	w.pdf.Ln(4)
}

func (w *writer) stage(st quiz.Stage) {
	title := st.Title
	if title == "" {
		title = st.Level.Title()
	}
	w.pdf.Ln(2)
	w.font("B", 14)
	w.text(title)
	w.pdf.Ln(1)
}

func (w *writer) question(q quiz.Question, includeAnswers bool) {
	w.font("B", 11)
	w.text(fmt.Sprintf("%d. %s", q.ID, q.Prompt))
	w.font("", 11)

	switch b := q.Body.(type) {
	case *quiz.MultipleChoice:
		for i, opt := range b.Options {
			w.pdf.SetX(pageMargin + answerIndent)
			w.text(fmt.Sprintf("(%d) %s", i+1, opt))
		}
		if includeAnswers {
			w.answer(fmt.Sprintf("Answer: (%d)", b.CorrectIndex+1))
		}
	case *quiz.ShortAnswer:
		w.lines(answerLines)
		if includeAnswers {
			w.answer("Answer: " + b.Answer)
		}
	case *quiz.FillBlank:
		w.lines(answerLines)
		if includeAnswers {
			w.answer("Answer: " + b.Answer)
		}
	case *quiz.Essay:
		w.lines(essayLines)
	}
	w.pdf.Ln(3)
}

func (w *writer) lines(n int) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	for range n {
		w.pdf.Ln(lineHeight + 1)
		y := w.pdf.GetY()
		w.pdf.Line(left+answerIndent, y, pageW-right, y)
	}
	w.pdf.Ln(1)
}

func (w *writer) answer(s string) {
	w.font("B", 10)
	w.pdf.SetTextColor(30, 110, 60)
	w.pdf.SetX(pageMargin + answerIndent)
	w.text(s)
	w.pdf.SetTextColor(0, 0, 0)
	w.font("", 11)
}
