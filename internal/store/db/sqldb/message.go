package sqldb

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	"github.com/zhouzirui/medjourney/backend/internal/store"
)

func (d *DB) CreateMessage(ctx context.Context, message *chat.Message) (*chat.Message, error) {
	emotion, err := store.EncodeJSONField(message.EmotionAnalysis)
	if err != nil {
		return nil, err
	}
	metadata, err := store.EncodeJSONField(message.Metadata)
	if err != nil {
		return nil, err
	}

	stmt := d.rebind(`INSERT INTO conversation_messages
		(session_id, role, content, ts, emotion_analysis, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	saved := *message
	if err := d.db.QueryRowContext(ctx, stmt,
		message.SessionID, string(message.Role), message.Content, toUnix(message.Timestamp), emotion, metadata,
	).Scan(&saved.ID); err != nil {
		return nil, errors.Wrapf(err, "%s: insert message for session %s", d.dialect.Name, message.SessionID)
	}
	return &saved, nil
}

func (d *DB) ListMessages(ctx context.Context, sessionID string) ([]*chat.Message, error) {
	rows, err := d.db.QueryContext(ctx,
		d.rebind(`SELECT id, session_id, role, content, ts, emotion_analysis, metadata
			FROM conversation_messages
			WHERE session_id = ?
			ORDER BY ts ASC, id ASC`),
		sessionID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: list messages for session %s", d.dialect.Name, sessionID)
	}
	defer rows.Close()

	var list []*chat.Message
	for rows.Next() {
		var (
			m                 chat.Message
			role              string
			ts                int64
			emotion, metadata sql.NullString
		)
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &ts, &emotion, &metadata); err != nil {
			return nil, errors.Wrapf(err, "%s: scan message", d.dialect.Name)
		}
		m.Role = chat.Role(role)
		m.Timestamp = fromUnix(ts)
		if m.EmotionAnalysis, err = store.DecodeJSONField(emotion); err != nil {
			return nil, err
		}
		if m.Metadata, err = store.DecodeJSONField(metadata); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
