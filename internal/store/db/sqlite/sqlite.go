// Package sqlite opens the pure-Go SQLite engine used by default.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/zhouzirui/medjourney/backend/internal/store/db/sqldb"
)

var dialect = sqldb.Dialect{
	Name: "sqlite",
	Schema: []string{
		`CREATE TABLE IF NOT EXISTS conversation_sessions (
			session_id   TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL,
			session_type TEXT NOT NULL DEFAULT 'medical_assessment',
			status       TEXT NOT NULL DEFAULT 'active',
			created_ts   INTEGER NOT NULL,
			updated_ts   INTEGER NOT NULL,
			metadata     TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS conversation_messages (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id       TEXT NOT NULL,
			role             TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
			content          TEXT NOT NULL,
			ts               INTEGER NOT NULL,
			emotion_analysis TEXT,
			metadata         TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversation_messages_session ON conversation_messages (session_id, ts)`,
		`CREATE TABLE IF NOT EXISTS generated_reports (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id   TEXT NOT NULL,
			report_type  TEXT NOT NULL,
			content      TEXT NOT NULL,
			generated_ts INTEGER NOT NULL,
			metadata     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generated_reports_session ON generated_reports (session_id, generated_ts)`,
	},
}

// Open opens (creating when needed) the database file at path and applies the schema.
func Open(ctx context.Context, path string, busyTimeout time.Duration) (*sqldb.DB, error) {
	if path == "" {
		return nil, errors.New("sqlite: database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "sqlite: create directory %s", dir)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path, busyTimeout.Milliseconds())
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite: open")
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "sqlite: ping")
	}

	db := sqldb.New(conn, dialect)
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
