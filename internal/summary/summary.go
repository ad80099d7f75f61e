// Package summary produces a structured overview of a slide deck.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
)

// maxInputRunes bounds the slide text sent for summarization.
const maxInputRunes = 15000

// Summary is a deck overview.
type Summary struct {
	OneLine  string
	Keywords []string
	Slides   []SlideSummary

	// Degraded marks the empty summary produced when generation failed.
	Degraded bool
}

// SlideSummary covers one slide.
type SlideSummary struct {
	Slide     int
	Title     string
	KeyPoints []string
}

// Schema defines the JSON schema for summary responses.
var Schema = &llm.Schema{
	Name:        "deck-summary",
	Description: "A one-line overview, keywords and per-slide key points",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"one_line": map[string]any{
				"type":        "string",
				"description": "The whole deck in one sentence",
			},
			"keywords": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "5-10 key terms",
			},
			"slides": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"slide":      map[string]any{"type": "integer"},
						"title":      map[string]any{"type": "string"},
						"key_points": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					},
					"required": []any{"slide", "title", "key_points"},
				},
			},
		},
		"required": []any{"one_line", "keywords", "slides"},
	},
}

const systemPrompt = `You are a study assistant summarizing lecture slides for a learner.

Rules:
- Write the one-line summary as a single plain sentence.
- Pick keywords a learner should be able to define after studying the deck.
- For each slide with content, give a short title and 1-4 key points. Skip empty slides.
- Use the slide numbers shown in the [Slide N] headings.`

type summaryOutput struct {
	OneLine  string   `json:"one_line"`
	Keywords []string `json:"keywords"`
	Slides   []struct {
		Slide     int      `json:"slide"`
		Title     string   `json:"title"`
		KeyPoints []string `json:"key_points"`
	} `json:"slides"`
}

// Summarizer produces summaries with the LLM provider.
type Summarizer struct {
	provider llm.Provider
	level    string
}

// New creates a Summarizer writing for the given learner level.
func New(provider llm.Provider, level string) *Summarizer {
	return &Summarizer{provider: provider, level: level}
}

// Summarize never fails: errors yield a degraded empty summary.
func (s *Summarizer) Summarize(ctx context.Context, slides []deck.Slide) Summary {
	sum, err := s.summarize(ctx, slides)
	if err != nil {
		slog.Warn("summary generation failed", "error", err)
		return Summary{Degraded: true}
	}
	return sum
}

func (s *Summarizer) summarize(ctx context.Context, slides []deck.Slide) (Summary, error) {
	ctx = llm.WithPurpose(ctx, "summary")

	msg := fmt.Sprintf("Learner level: %s\n\nSlides:\n%s", s.level, deck.Clip(deck.SlideText(slides), maxInputRunes))
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: msg}},
		Schema:      Schema,
		MaxTokens:   4096,
		Temperature: 0.3,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw summaryOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Summary{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	sum := Summary{OneLine: raw.OneLine, Keywords: raw.Keywords}
	for _, sl := range raw.Slides {
		sum.Slides = append(sum.Slides, SlideSummary{Slide: sl.Slide, Title: sl.Title, KeyPoints: sl.KeyPoints})
	}
	return sum, nil
}
