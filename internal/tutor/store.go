package tutor

import (
	"sync"

	"github.com/abhisek/studydeck/internal/llm"
)

// ConversationStore keeps chat history per session.
type ConversationStore interface {
	Get(sessionID string) []llm.Message
	Append(sessionID string, msgs ...llm.Message)
	Clear(sessionID string)
}

// MemoryStore is an in-memory ConversationStore safe for concurrent use.
type MemoryStore struct {
	mu    sync.Mutex
	convs map[string][]llm.Message
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{convs: make(map[string][]llm.Message)}
}

// Get returns a copy of the session's history, oldest first.
func (s *MemoryStore) Get(sessionID string) []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.convs[sessionID]
	out := make([]llm.Message, len(h))
	copy(out, h)
	return out
}

// Append adds messages to the session's history.
func (s *MemoryStore) Append(sessionID string, msgs ...llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[sessionID] = append(s.convs[sessionID], msgs...)
}

// Clear drops the session's history.
func (s *MemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, sessionID)
}
