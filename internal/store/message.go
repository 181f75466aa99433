package store

import (
	"context"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
)

// AppendMessage stores a new message. The owning session is not required to
// exist; the association is advisory.
func (s *Store) AppendMessage(ctx context.Context, message chat.Message) (*chat.Message, error) {
	const op = "store.AppendMessage"
	if !message.Role.Valid() {
		return nil, apperror.Validation(op, "role must be %q or %q, got %q", chat.RoleUser, chat.RoleAssistant, message.Role)
	}
	if message.Timestamp.IsZero() {
		message.Timestamp = s.clock()
	} else {
		message.Timestamp = message.Timestamp.UTC()
	}
	if err := checkTimestamp(op, "timestamp", message.Timestamp); err != nil {
		return nil, err
	}

	saved, err := s.driver.CreateMessage(ctx, &message)
	if err != nil {
		return nil, apperror.Storage(op, err)
	}
	return saved, nil
}

// ListMessages returns the session's messages in ascending timestamp order. A
// session without messages yields an empty slice.
func (s *Store) ListMessages(ctx context.Context, sessionID string) ([]*chat.Message, error) {
	messages, err := s.driver.ListMessages(ctx, sessionID)
	if err != nil {
		return nil, apperror.Storage("store.ListMessages", err)
	}
	if messages == nil {
		messages = []*chat.Message{}
	}
	return messages, nil
}
