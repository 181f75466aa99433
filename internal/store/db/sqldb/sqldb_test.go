package sqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	question := &DB{dialect: Dialect{Name: "sqlite"}}
	dollar := &DB{dialect: Dialect{Name: "postgres", Dollar: true}}
	query := `SELECT id FROM generated_reports WHERE session_id = ? AND report_type = ?`

	assert.Equal(t, query, question.rebind(query))
	assert.Equal(t,
		`SELECT id FROM generated_reports WHERE session_id = $1 AND report_type = $2`,
		dollar.rebind(query),
	)
}

func TestUnixRoundTrip(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 30, 15, 123456789, time.FixedZone("CST", 8*3600))
	got := fromUnix(toUnix(ts))

	assert.True(t, got.Equal(ts))
	assert.Equal(t, time.UTC, got.Location())
	assert.False(t, nullableUnix(time.Time{}).Valid)
}
