// Package postgres opens a PostgreSQL-backed store driver.
package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/zhouzirui/medjourney/backend/internal/store/db/sqldb"
)

var dialect = sqldb.Dialect{
	Name:   "postgres",
	Dollar: true,
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS conversation_sessions (
			session_id   TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			session_type TEXT NOT NULL DEFAULT 'medical_assessment',
			status       TEXT NOT NULL DEFAULT 'active',
			created_ts   BIGINT NOT NULL,
			updated_ts   BIGINT NOT NULL,
			metadata     TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS conversation_messages (
			id               BIGSERIAL PRIMARY KEY,
			session_id       TEXT NOT NULL,
			role             TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
			content          TEXT NOT NULL,
			ts               BIGINT NOT NULL,
			emotion_analysis TEXT,
			metadata         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_messages_session ON conversation_messages (session_id, ts)`,
		`CREATE TABLE IF NOT EXISTS generated_reports (
			id           BIGSERIAL PRIMARY KEY,
			session_id   TEXT NOT NULL,
			report_type  TEXT NOT NULL,
			content      TEXT NOT NULL,
			generated_ts BIGINT NOT NULL,
			metadata     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_reports_session ON generated_reports (session_id, generated_ts)`,
	},
}

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*sqldb.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres: DSN is required")
	}
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: open")
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "postgres: ping")
	}

	db := sqldb.New(conn, dialect)
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
