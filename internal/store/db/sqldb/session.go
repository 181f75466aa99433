package sqldb

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	"github.com/zhouzirui/medjourney/backend/internal/store"
)

const sessionColumns = `session_id, user_id, session_type, status, created_ts, updated_ts, metadata`

func (d *DB) UpsertSession(ctx context.Context, session *chat.Session) (*chat.Session, error) {
	metadata, err := store.EncodeJSONField(session.Metadata)
	if err != nil {
		return nil, err
	}

	supplied := nullableUnix(session.CreatedAt)
	created := supplied.Int64
	if !supplied.Valid {
		created = toUnix(session.UpdatedAt)
	}

	stmt := d.rebind(`INSERT INTO conversation_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			user_id = excluded.user_id,
			session_type = excluded.session_type,
			status = excluded.status,
			created_ts = COALESCE(?, conversation_sessions.created_ts),
			updated_ts = excluded.updated_ts,
			metadata = excluded.metadata
		RETURNING created_ts, updated_ts`)

	var createdTs, updatedTs int64
	if err := d.db.QueryRowContext(ctx, stmt,
		session.ID, session.UserID, session.SessionType, session.Status,
		created, toUnix(session.UpdatedAt), metadata, supplied,
	).Scan(&createdTs, &updatedTs); err != nil {
		return nil, errors.Wrapf(err, "%s: upsert session %s", d.dialect.Name, session.ID)
	}

	saved := *session
	saved.CreatedAt = fromUnix(createdTs)
	saved.UpdatedAt = fromUnix(updatedTs)
	return &saved, nil
}

func (d *DB) GetSession(ctx context.Context, sessionID string) (*chat.Session, error) {
	row := d.db.QueryRowContext(ctx,
		d.rebind(`SELECT `+sessionColumns+` FROM conversation_sessions WHERE session_id = ?`),
		sessionID,
	)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s: get session %s", d.dialect.Name, sessionID)
	}
	return session, nil
}

func (d *DB) ListSessions(ctx context.Context) ([]*chat.Session, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM conversation_sessions ORDER BY created_ts DESC, session_id ASC`,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: list sessions", d.dialect.Name)
	}
	defer rows.Close()

	var list []*chat.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: scan session", d.dialect.Name)
		}
		list = append(list, session)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*chat.Session, error) {
	var (
		s                    chat.Session
		createdTs, updatedTs int64
		metadata             sql.NullString
	)
	if err := row.Scan(&s.ID, &s.UserID, &s.SessionType, &s.Status, &createdTs, &updatedTs, &metadata); err != nil {
		return nil, err
	}
	s.CreatedAt = fromUnix(createdTs)
	s.UpdatedAt = fromUnix(updatedTs)

	var err error
	if s.Metadata, err = store.DecodeJSONField(metadata); err != nil {
		return nil, err
	}
	return &s, nil
}
