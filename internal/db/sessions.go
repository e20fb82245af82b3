// Package db provides SurrealDB query functions for chat sessions and the
// conversation audit log.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"

	"github.com/jardelmessias/portfolio-chat/internal/models"
)

// sessionDoc is the persisted shape of a session. The record id is derived
// from session_id, which is also kept as a field so documents stay
// self-describing when exported.
type sessionDoc struct {
	SessionID string           `json:"session_id"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Messages  []models.Message `json:"messages"`
}

func toDoc(s *models.Session) sessionDoc {
	msgs := s.Messages
	if msgs == nil {
		msgs = []models.Message{}
	}
	return sessionDoc{
		SessionID: s.SessionID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Messages:  msgs,
	}
}

func (d sessionDoc) toModel() *models.Session {
	msgs := d.Messages
	if msgs == nil {
		msgs = []models.Message{}
	}
	return &models.Session{
		SessionID: d.SessionID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
		Messages:  msgs,
	}
}

// GetSession retrieves a session by its identifier with message order
// preserved exactly as persisted. Returns ErrNotFound if no record exists.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	results, err := surrealdb.Query[[]sessionDoc](ctx, c.db, `
		SELECT * FROM type::record("chat_session", $id)
	`, map[string]any{"id": sessionID})
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %v", ErrPersistence, err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return (*results)[0].Result[0].toModel(), nil
}

// CreateSession persists a freshly generated session so its identifier is
// retrievable on the next call even if no messages are ever sent.
func (c *Client) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE type::record("chat_session", $id) CONTENT $data
	`, map[string]any{
		"id":   session.SessionID,
		"data": toDoc(session),
	})
	if err != nil {
		return fmt.Errorf("%w: create session: %v", ErrPersistence, err)
	}
	return nil
}

// UpsertSession replaces the stored session document wholesale and refreshes
// updated_at. Last writer wins; concurrent writers to the same session id
// clobber each other's message lists, which the single-writer session model
// accepts.
func (c *Client) UpsertSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()

	_, err := surrealdb.Query[any](ctx, c.db, `
		UPSERT type::record("chat_session", $id) CONTENT $data
	`, map[string]any{
		"id":   session.SessionID,
		"data": toDoc(session),
	})
	if err != nil {
		return fmt.Errorf("%w: upsert session: %v", ErrPersistence, err)
	}
	return nil
}

// InsertConversationLog appends one audit record with an auto-generated id.
func (c *Client) InsertConversationLog(ctx context.Context, entry models.ConversationLogEntry) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		CREATE conversation_log CONTENT $data
	`, map[string]any{"data": entry})
	if err != nil {
		return fmt.Errorf("%w: insert conversation log: %v", ErrPersistence, err)
	}
	return nil
}
