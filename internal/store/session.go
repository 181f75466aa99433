package store

import (
	"context"
	"strings"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
)

// UpsertSession creates the session or fully replaces an existing row with the
// same identifier. Replacing is not an error.
func (s *Store) UpsertSession(ctx context.Context, session chat.Session) (*chat.Session, error) {
	const op = "store.UpsertSession"
	if strings.TrimSpace(session.ID) == "" {
		return nil, apperror.Validation(op, "session_id is required")
	}
	if session.SessionType == "" {
		session.SessionType = chat.DefaultSessionType
	}
	if session.Status == "" {
		session.Status = chat.DefaultStatus
	}
	session.UpdatedAt = s.clock()
	if !session.CreatedAt.IsZero() {
		session.CreatedAt = session.CreatedAt.UTC()
		if err := checkTimestamp(op, "created_at", session.CreatedAt); err != nil {
			return nil, err
		}
	}

	saved, err := s.driver.UpsertSession(ctx, &session)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	return saved, nil
}

// GetSession returns the session or a not-found error.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*chat.Session, error) {
	const op = "store.GetSession"
	session, err := s.driver.GetSession(ctx, sessionID)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	if session == nil {
		return nil, apperror.NotFound(op, "session %s not found", sessionID)
	}
	return session, nil
}

// ListSessions returns every session, most recently created first.
func (s *Store) ListSessions(ctx context.Context) ([]*chat.Session, error) {
	sessions, err := s.driver.ListSessions(ctx)
	if err != nil {
		return nil, apperror.Storage("store.ListSessions", err)
	}
	return sessions, nil
}
