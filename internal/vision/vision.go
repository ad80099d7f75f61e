// Package vision describes slide images with a multimodal model.
package vision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
)

const systemPrompt = `You describe images from lecture slides for a learner who cannot see them.
Explain what the image shows and what it teaches in the context of the slide. Transcribe any important labels, numbers or text. Keep it under 150 words.`

// Analyzer describes images.
type Analyzer struct {
	provider llm.Provider
	timeout  time.Duration
}

// New creates an Analyzer. A non-positive timeout leaves calls unbounded
// beyond the caller's context.
func New(provider llm.Provider, timeout time.Duration) *Analyzer {
	return &Analyzer{provider: provider, timeout: timeout}
}

// Analyze returns a description of img. Failures are reported inline in
// the returned text.
func (a *Analyzer) Analyze(ctx context.Context, img deck.Image, slideText string) string {
	ctx = llm.WithPurpose(ctx, "vision")
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	prompt := "Describe this slide image."
	if slideText != "" {
		prompt = fmt.Sprintf("Describe this slide image. The slide says:\n%s", slideText)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: prompt,
			Images:  []llm.Image{{MediaType: img.MediaType, Data: img.Data}},
		}},
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		slog.Warn("image analysis failed", "error", err)
		return fmt.Sprintf("Image analysis failed: %v", err)
	}
	return resp.Text()
}
