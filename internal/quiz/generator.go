package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
)

// Options controls quiz generation.
type Options struct {
	// Level is the learner's audience level, e.g. "university".
	Level string

	// NumQuestions is the requested total across all stages.
	NumQuestions int

	// Kinds restricts the question kinds. Empty means DefaultKinds.
	Kinds []Kind

	MaxTokens   int
	Temperature float64
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Level:        "university",
		NumQuestions: 10,
		Kinds:        DefaultKinds,
		MaxTokens:    8192,
		Temperature:  0.7,
	}
}

func (o Options) kinds() []Kind {
	if len(o.Kinds) == 0 {
		return DefaultKinds
	}
	return o.Kinds
}

// Generator turns slides into a staged quiz set using the LLM provider.
type Generator struct {
	provider llm.Provider
	opts     Options
}

// NewGenerator creates a Generator.
func NewGenerator(provider llm.Provider, opts Options) *Generator {
	return &Generator{provider: provider, opts: opts}
}

// setOutput is the raw LLM response before normalization.
type setOutput struct {
	Stages []stageOutput `json:"stages"`
}

type stageOutput struct {
	Stage     string           `json:"stage"`
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Type         string          `json:"type"`
	Question     string          `json:"question"`
	Options      []string        `json:"options"`
	CorrectIndex *int            `json:"correct_index"`
	Answer       json.RawMessage `json:"answer"`
	SourceSlide  int             `json:"source_slide"`
	Explanation  string          `json:"explanation"`
}

// Generate produces a quiz set for the slides. It never fails: any
// provider or parse error, or a response with no usable question, yields
// Fallback.
func (g *Generator) Generate(ctx context.Context, slides []deck.Slide) Set {
	set, err := g.generate(ctx, slides)
	if err != nil {
		slog.Warn("quiz generation failed, using fallback", "error", err)
		return Fallback()
	}
	return set
}

func (g *Generator) generate(ctx context.Context, slides []deck.Slide) (Set, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(slides, g.opts)},
		},
		Schema:      SetSchema,
		MaxTokens:   g.opts.MaxTokens,
		Temperature: g.opts.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return Set{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw setOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Set{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	set := normalize(raw, g.opts.kinds())
	if set.Count() == 0 {
		return Set{}, fmt.Errorf("response contained no usable questions")
	}
	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// normalize maps model stages positionally onto the fixed level triple,
// merging any extra stages into the last one, drops malformed questions
// and renumbers what is left.
func normalize(raw setOutput, allowed []Kind) Set {
	set := Set{Stages: make([]Stage, len(Levels))}
	for i, l := range Levels {
		set.Stages[i] = Stage{Level: l, Title: l.Title()}
	}

	last := len(Levels) - 1
	for i, st := range raw.Stages {
		target := min(i, last)
		for _, qo := range st.Questions {
			q, ok := qo.toQuestion(allowed)
			if !ok {
				slog.Debug("dropping malformed question", "stage", i, "question", qo.Question)
				continue
			}
			set.Stages[target].Questions = append(set.Stages[target].Questions, q)
		}
	}
	return set.Renumber()
}

func (qo questionOutput) toQuestion(allowed []Kind) (Question, bool) {
	kind, err := ParseKind(strings.TrimSpace(qo.Type))
	if err != nil || !containsKind(allowed, kind) {
		return Question{}, false
	}
	prompt := strings.TrimSpace(qo.Question)
	if prompt == "" {
		return Question{}, false
	}

	q := Question{
		Prompt:      prompt,
		SourceSlide: qo.SourceSlide,
		Explanation: strings.TrimSpace(qo.Explanation),
	}
	answer := qo.answerText()

	switch kind {
	case KindMultipleChoice:
		idx, ok := qo.correctIndex(answer)
		if !ok {
			return Question{}, false
		}
		q.Body = &MultipleChoice{Options: qo.Options, CorrectIndex: idx}
	case KindShortAnswer:
		q.Body = &ShortAnswer{Answer: answer}
	case KindFillBlank:
		q.Body = &FillBlank{Answer: answer}
	case KindEssay:
		q.Body = &Essay{ModelAnswer: answer}
	}

	if err := q.validate(); err != nil {
		return Question{}, false
	}
	return q, true
}

// answerText accepts the answer as a JSON string or number.
func (qo questionOutput) answerText() string {
	if len(qo.Answer) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(qo.Answer, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(qo.Answer, &n); err == nil {
		return n.String()
	}
	return ""
}

// correctIndex resolves the correct option from correct_index, then from
// an answer equal to one of the options, then from an answer holding a
// 0-based index.
func (qo questionOutput) correctIndex(answer string) (int, bool) {
	if qo.CorrectIndex != nil {
		return *qo.CorrectIndex, true
	}
	for i, opt := range qo.Options {
		if matchText(opt, answer) {
			return i, true
		}
	}
	if n, err := strconv.Atoi(answer); err == nil {
		return n, true
	}
	return 0, false
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, c := range kinds {
		if c == k {
			return true
		}
	}
	return false
}
