// Package models defines data structures for the portfolio chat backend.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles as replayed to the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. Immutable once created; ordering
// within a session is insertion order and is replayed verbatim to the
// completion provider.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Session is a single visitor's ongoing conversation, identified by an
// opaque token. Messages are append-only from the orchestrator's perspective.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// NewSession creates an empty session with a freshly generated identifier.
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID: uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  []Message{},
	}
}

// Append adds a turn to the session. It never reorders or deletes.
func (s *Session) Append(m Message) {
	s.Messages = append(s.Messages, m)
}

// ConversationLogEntry is a denormalized audit record of one exchange,
// written to an independent side channel. Its persistence is best-effort and
// must never affect the primary response path.
type ConversationLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	UserText  string    `json:"user_text"`
	BotText   string    `json:"bot_text"`
	SessionID string    `json:"session_id"`
	Origin    string    `json:"origin"`
}
