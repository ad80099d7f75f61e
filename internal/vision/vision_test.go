package vision

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/deck"
	"github.com/abhisek/studydeck/internal/llm"
)

func TestAnalyze(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`A bar chart of yields.`)})
	img := deck.Image{Data: []byte{0x89, 'P', 'N', 'G'}, Ext: "png", MediaType: "image/png"}

	got := New(mock, time.Minute).Analyze(t.Context(), img, "Crop yields 2020")

	assert.Equal(t, "A bar chart of yields.", got)
	require.Equal(t, 1, mock.CallCount())
	msg := mock.Calls[0].Messages[0]
	require.Len(t, msg.Images, 1)
	assert.Equal(t, "image/png", msg.Images[0].MediaType)
	assert.Equal(t, img.Data, msg.Images[0].Data)
	assert.Contains(t, msg.Content, "Crop yields 2020")
	assert.Nil(t, mock.Calls[0].Schema)
}

func TestAnalyze_FailureIsInline(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	got := New(mock, time.Minute).Analyze(t.Context(), deck.Image{MediaType: "image/png"}, "")

	assert.Contains(t, got, "Image analysis failed")
}

type deadlineProvider struct{ hadDeadline bool }

func (p *deadlineProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	_, p.hadDeadline = ctx.Deadline()
	return &llm.Response{Content: json.RawMessage(`ok`)}, nil
}

func (p *deadlineProvider) ModelID() string { return "deadline" }

func TestAnalyze_AppliesTimeout(t *testing.T) {
	p := &deadlineProvider{}
	New(p, time.Second).Analyze(context.Background(), deck.Image{}, "")
	assert.True(t, p.hadDeadline)
}
