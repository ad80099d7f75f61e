// Package tutor answers learner questions about a deck in a running chat.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/abhisek/studydeck/internal/llm"
)

// historyWindow is how many prior messages accompany each question.
const historyWindow = 10

// maxSuggestions caps Suggestions.
const maxSuggestions = 5

// DefaultSuggestions is offered when suggestions cannot be generated.
var DefaultSuggestions = []string{
	"What is the main idea of this deck?",
	"Can you explain the hardest concept in simpler terms?",
	"How do the topics in this deck connect?",
	"What should I memorize for an exam?",
	"Can you give me a real-world example?",
}

var systemTemplate = template.Must(template.New("tutor").Parse(`You are a friendly tutor helping a {{.Level}} learner study a slide deck.
Answer using the slide content below. When the slides do not cover something, say so and answer from general knowledge. Cite slide numbers when you can. Keep answers short unless asked for detail.

Slide content:
{{.Context}}`))

// Reply is the tutor's answer to one question.
type Reply struct {
	Text string

	// Failed is set when Text carries an error message instead of an answer.
	Failed bool
}

// Manager runs tutor conversations.
type Manager struct {
	provider llm.Provider
	store    ConversationStore
	system   string
}

// NewManager creates a Manager grounded in deckContext.
func NewManager(provider llm.Provider, store ConversationStore, level, deckContext string) (*Manager, error) {
	var buf bytes.Buffer
	err := systemTemplate.Execute(&buf, struct{ Level, Context string }{level, deckContext})
	if err != nil {
		return nil, fmt.Errorf("build tutor prompt: %w", err)
	}
	return &Manager{provider: provider, store: store, system: buf.String()}, nil
}

// Ask sends question with the most recent history. Both the question and
// the reply are appended to the conversation, also when the call fails.
func (m *Manager) Ask(ctx context.Context, sessionID, question string) Reply {
	ctx = llm.WithPurpose(ctx, "tutor")

	history := m.store.Get(sessionID)
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	msgs := append(history, llm.Message{Role: llm.RoleUser, Content: question})

	reply := Reply{}
	resp, err := m.provider.Generate(ctx, llm.Request{
		System:      m.system,
		Messages:    msgs,
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Warn("tutor request failed", "error", err, "session", sessionID)
		reply = Reply{Text: fmt.Sprintf("Sorry, I couldn't answer that: %v", err), Failed: true}
	} else {
		reply.Text = resp.Text()
	}

	m.store.Append(sessionID,
		llm.Message{Role: llm.RoleUser, Content: question},
		llm.Message{Role: llm.RoleAssistant, Content: reply.Text},
	)
	return reply
}

// History returns the conversation so far.
func (m *Manager) History(sessionID string) []llm.Message {
	return m.store.Get(sessionID)
}

// Clear forgets the conversation.
func (m *Manager) Clear(sessionID string) {
	m.store.Clear(sessionID)
}

// SuggestionSchema defines the JSON schema for suggested questions.
var SuggestionSchema = &llm.Schema{
	Name:        "tutor-suggestions",
	Description: "Questions a learner might ask about the deck",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"questions"},
	},
}

// Suggestions proposes up to five questions about the deck, falling back
// to DefaultSuggestions.
func (m *Manager) Suggestions(ctx context.Context) []string {
	ctx = llm.WithPurpose(ctx, "suggestions")

	resp, err := m.provider.Generate(ctx, llm.Request{
		System: m.system,
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: "Suggest five short questions I could ask you to understand this deck better.",
		}},
		Schema:      SuggestionSchema,
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		slog.Debug("suggestions failed", "error", err)
		return defaultSuggestions()
	}

	var raw struct {
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &raw); err != nil || len(raw.Questions) == 0 {
		return defaultSuggestions()
	}
	if len(raw.Questions) > maxSuggestions {
		raw.Questions = raw.Questions[:maxSuggestions]
	}
	return raw.Questions
}

func defaultSuggestions() []string {
	out := make([]string, len(DefaultSuggestions))
	copy(out, DefaultSuggestions)
	return out
}
