// Package store adapts the SurrealDB client to the chat service's
// persistence contracts.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jardelmessias/portfolio-chat/internal/db"
	"github.com/jardelmessias/portfolio-chat/internal/models"
)

// Backend is the slice of the database client the adapters depend on.
// *db.Client satisfies it.
type Backend interface {
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)
	CreateSession(ctx context.Context, session *models.Session) error
	UpsertSession(ctx context.Context, session *models.Session) error
	InsertConversationLog(ctx context.Context, entry models.ConversationLogEntry) error
}

// Compile-time check that the database client satisfies Backend.
var _ Backend = (*db.Client)(nil)

// SessionStore is the durable mapping from session identifier to ordered
// message history, backed by the chat_session collection.
type SessionStore struct {
	db     Backend
	logger *slog.Logger
}

// NewSessionStore creates a session store over the given database backend.
func NewSessionStore(backend Backend, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{db: backend, logger: logger}
}

// GetOrCreate resolves sessionID to its stored record, or synthesizes a new
// session with a fresh identifier. New sessions are persisted immediately so
// the identifier handed back to the caller is always retrievable on the next
// call, even if no further messages are ever sent.
func (s *SessionStore) GetOrCreate(ctx context.Context, sessionID string) (*models.Session, error) {
	if sessionID != "" {
		session, err := s.db.GetSession(ctx, sessionID)
		if err == nil {
			return session, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, err
		}
		s.logger.Debug("session id not found, creating new session", "session_id", sessionID)
	}

	session := models.NewSession()
	if err := s.db.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Save upserts the session by id, refreshing updated_at. Full-document
// replace, last writer wins.
func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	return s.db.UpsertSession(ctx, session)
}

// GetHistory is the read-only accessor for external collaborators. Returns an
// error wrapping db.ErrNotFound for unknown ids.
func (s *SessionStore) GetHistory(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.db.GetSession(ctx, sessionID)
}

// ConversationLog writes audit records to the conversation_log collection.
type ConversationLog struct {
	db Backend
}

// NewConversationLog creates the audit-log writer.
func NewConversationLog(backend Backend) *ConversationLog {
	return &ConversationLog{db: backend}
}

// Record appends one audit entry.
func (l *ConversationLog) Record(ctx context.Context, entry models.ConversationLogEntry) error {
	return l.db.InsertConversationLog(ctx, entry)
}
