// Package store owns all durable state of the conversation service: sessions,
// their messages, and the reports generated from them. The engine-specific SQL
// lives behind Driver; Store applies defaults, validation and error
// classification on top of it.
package store

import (
	"context"
	"math"
	"time"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	"github.com/zhouzirui/medjourney/backend/internal/model/report"
)

// Driver is implemented by each storage engine.
type Driver interface {
	// UpsertSession inserts or replaces the session row. A zero CreatedAt keeps
	// the stored creation time on replace and falls back to UpdatedAt on insert.
	UpsertSession(ctx context.Context, session *chat.Session) (*chat.Session, error)
	// GetSession returns nil without error when the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*chat.Session, error)
	ListSessions(ctx context.Context) ([]*chat.Session, error)

	CreateMessage(ctx context.Context, message *chat.Message) (*chat.Message, error)
	ListMessages(ctx context.Context, sessionID string) ([]*chat.Message, error)

	CreateReport(ctx context.Context, create *report.Report) (*report.Report, error)
	ListReports(ctx context.Context, find *FindReport) ([]*report.Report, error)

	Close() error
}

// FindReport filters ListReports. A nil Kind matches every kind.
type FindReport struct {
	SessionID string
	Kind      *report.Kind
}

// Store is safe for concurrent use as long as the driver is.
type Store struct {
	driver Driver
	now    func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the time source used for defaulted timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New wraps driver. The store takes ownership of the driver and closes it in Close.
func New(driver Driver, opts ...Option) *Store {
	s := &Store{driver: driver, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the underlying engine resources.
func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

// 时间戳按 unix 纳秒存储，超出 int64 能表示的范围会溢出。
var (
	MinTimestamp = time.Unix(0, math.MinInt64).UTC()
	MaxTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

func checkTimestamp(op, field string, t time.Time) error {
	if t.Before(MinTimestamp) || t.After(MaxTimestamp) {
		return apperror.Validation(op, "%s %s is outside the supported range %s to %s",
			field, t.Format(time.RFC3339), MinTimestamp.Format(time.RFC3339), MaxTimestamp.Format(time.RFC3339))
	}
	return nil
}
