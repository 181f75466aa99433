// Package sqldb implements store.Driver on top of database/sql. Engine
// packages supply a Dialect with their DDL and placeholder style.
package sqldb

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/zhouzirui/medjourney/backend/internal/store"
)

// Dialect captures what differs between engines.
type Dialect struct {
	Name   string
	Schema []string
	// Dollar selects $1-style placeholders instead of ?.
	Dollar bool
}

// DB is a store.Driver backed by a *sql.DB.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Driver = (*DB)(nil)

// New wraps an opened connection pool. Call Migrate before use.
func New(db *sql.DB, dialect Dialect) *DB {
	return &DB{db: db, dialect: dialect}
}

// Migrate creates the tables when they are missing.
func (d *DB) Migrate(ctx context.Context) error {
	for _, stmt := range d.dialect.Schema {
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "%s: migrate", d.dialect.Name)
		}
	}
	return nil
}

// Close closes the connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}

// rebind rewrites ? placeholders for engines that use numbered parameters.
func (d *DB) rebind(query string) string {
	if !d.dialect.Dollar {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func toUnix(t time.Time) int64 {
	return t.UnixNano()
}

func fromUnix(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toUnix(t), Valid: true}
}
