// Package feedback turns a session's wrong answers into remedial guidance.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
	"github.com/abhisek/studydeck/internal/session"
)

const perfectAnalysis = "No wrong answers. You have a solid grasp of this deck."

const degradedAnalysis = "Feedback could not be generated right now. Go back over the questions you missed and the slides they came from."

var degradedRecommendations = []string{
	"Re-read the slides referenced by the questions you missed.",
	"Restart the quiz and try the missed questions again.",
}

// Generator produces feedback with the LLM provider.
type Generator struct {
	provider  llm.Provider
	maxTokens int
}

// NewGenerator creates a feedback Generator.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider, maxTokens: 2048}
}

type feedbackOutput struct {
	Analysis  string `json:"analysis"`
	WeakAreas []struct {
		Area          string    `json:"area"`
		Description   string    `json:"description"`
		RelatedSlides slideRefs `json:"related_slides"`
	} `json:"weak_areas"`
	Recommendations []string `json:"recommendations"`
}

// slideRefs decodes slide numbers given as integers or as text such as
// "4" or "Slide 4". Entries without a positive number are dropped.
type slideRefs []int

func (r *slideRefs) UnmarshalJSON(data []byte) error {
	var items []any
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	var out slideRefs
	for _, it := range items {
		var n int
		switch v := it.(type) {
		case float64:
			n = int(v)
		case string:
			n, _ = strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "slide")))
		}
		if n > 0 {
			out = append(out, n)
		}
	}
	*r = out
	return nil
}

// Generate analyzes the ledger. An empty ledger needs no model call.
// Failures produce degraded generic feedback rather than an error.
func (g *Generator) Generate(ctx context.Context, ledger []session.WrongAnswer, slides []deck.Slide) session.Feedback {
	if len(ledger) == 0 {
		return session.Feedback{Analysis: perfectAnalysis}
	}

	fb, err := g.generate(ctx, ledger, slides)
	if err != nil {
		slog.Warn("feedback generation failed", "error", err, "misses", len(ledger))
		return Degraded()
	}
	return fb
}

// Degraded returns the generic feedback used when generation fails.
func Degraded() session.Feedback {
	recs := make([]string, len(degradedRecommendations))
	copy(recs, degradedRecommendations)
	return session.Feedback{
		Analysis:        degradedAnalysis,
		Recommendations: recs,
		Degraded:        true,
	}
}

func (g *Generator) generate(ctx context.Context, ledger []session.WrongAnswer, slides []deck.Slide) (session.Feedback, error) {
	ctx = llm.WithPurpose(ctx, "feedback")

	userMsg, err := buildUserMessage(ledger, slides)
	if err != nil {
		return session.Feedback{}, fmt.Errorf("build feedback prompt: %w", err)
	}

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      FeedbackSchema,
		MaxTokens:   g.maxTokens,
		Temperature: 0.5,
	})
	if err != nil {
		return session.Feedback{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw feedbackOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return session.Feedback{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	fb := session.Feedback{
		Analysis:        raw.Analysis,
		Recommendations: raw.Recommendations,
	}
	for _, w := range raw.WeakAreas {
		fb.WeakAreas = append(fb.WeakAreas, session.WeakArea{
			Area:          w.Area,
			Description:   w.Description,
			RelatedSlides: []int(w.RelatedSlides),
		})
	}
	return fb, nil
}
