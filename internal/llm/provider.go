package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply from a model. Adapters exist for
// Anthropic, OpenAI-compatible endpoints, Gemini and OpenRouter, and
// decorators add logging, retry and timeouts on top.
type Provider interface {
	// Generate returns the reply to req. With req.Schema set, Content is
	// the first JSON value of the reply, already validated.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System string

	// Messages alternate user and assistant turns and end with a user
	// turn. One-shot calls send a single message.
	Messages []Message

	// Schema asks for structured output. Nil means free text.
	Schema *Schema

	MaxTokens   int     // 0 uses the adapter default
	Temperature float64 // 0 means unset
}

type Message struct {
	Role    Role
	Content string
	Images  []Image // sent ahead of Content; user turns only
}

type Image struct {
	MediaType string
	Data      []byte
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the compile cache key,
// so two schemas must not share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // model that served the call
	StopReason string // "end" or "max_tokens"
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns Content as a string.
func (r *Response) Text() string {
	return string(r.Content)
}
