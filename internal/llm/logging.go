package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/studydeck/internal/store"
)

// RequestLogger persists model call records. store.EventRepo satisfies it.
type RequestLogger interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type loggingProvider struct {
	Provider
	backend string
	events  RequestLogger
}

// WithLogging records every call made through p, successful or not, under
// the backend name. A failing logger never fails the call.
func WithLogging(p Provider, backend string, events RequestLogger) Provider {
	return &loggingProvider{Provider: p, backend: backend, events: events}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	rec := store.LLMRequestEventData{
		Provider:    l.backend,
		Model:       l.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(started).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			rec.Model = resp.Model
		}
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.ResponseBody = string(resp.Content)
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// Cancellation of the call must not drop its record.
	if logErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), rec); logErr != nil {
		slog.Warn("record model call", "purpose", rec.Purpose, "err", logErr)
	}
	return resp, err
}

// transcript renders a request as readable text for `studydeck llm view`.
// Image bytes are replaced by a placeholder.
func transcript(req Request) string {
	var b strings.Builder
	section := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		body := m.Content
		for i := len(m.Images) - 1; i >= 0; i-- {
			body = fmt.Sprintf("<image %s, %d bytes>\n", m.Images[i].MediaType, len(m.Images[i].Data)) + body
		}
		section(string(m.Role), body)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return b.String()
}
