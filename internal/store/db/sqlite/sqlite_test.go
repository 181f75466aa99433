package sqlite_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/medjourney/backend/internal/apperror"
	"github.com/zhouzirui/medjourney/backend/internal/model/chat"
	"github.com/zhouzirui/medjourney/backend/internal/model/report"
	"github.com/zhouzirui/medjourney/backend/internal/store"
	"github.com/zhouzirui/medjourney/backend/internal/store/db/sqlite"
)

type tickClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newStore(t *testing.T) (*store.Store, *tickClock) {
	t.Helper()
	driver, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "data", "conversations.db"), 5*time.Second)
	require.NoError(t, err)

	clock := &tickClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := store.New(driver, store.WithClock(clock.Now))
	t.Cleanup(func() { _ = s.Close() })
	return s, clock
}

func TestUpsertSessionReplacesRow(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	created := time.Date(2025, 2, 28, 8, 30, 0, 0, time.UTC)

	first, err := s.UpsertSession(ctx, chat.Session{
		ID:        "s1",
		UserID:    "u1",
		CreatedAt: created,
		Metadata:  map[string]any{"source": "kiosk"},
	})
	require.NoError(t, err)
	assert.Equal(t, chat.DefaultSessionType, first.SessionType)
	assert.Equal(t, chat.DefaultStatus, first.Status)

	second, err := s.UpsertSession(ctx, chat.Session{
		ID:       "s1",
		UserID:   "u1",
		Status:   "completed",
		Metadata: map[string]any{"source": "app", "round": float64(2)},
	})
	require.NoError(t, err)
	assert.True(t, second.CreatedAt.Equal(created), "creation time must survive the replace")
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, map[string]any{"source": "app", "round": json.Number("2")}, got.Metadata)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(second.UpdatedAt))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestUpsertSessionDefaultsCreationTime(t *testing.T) {
	s, _ := newStore(t)

	saved, err := s.UpsertSession(context.Background(), chat.Session{ID: "s2", UserID: "u2"})
	require.NoError(t, err)
	assert.True(t, saved.CreatedAt.Equal(saved.UpdatedAt))
	assert.Nil(t, saved.Metadata)
}

func TestUpsertSessionRequiresID(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.UpsertSession(context.Background(), chat.Session{ID: "  ", UserID: "u"})
	assert.True(t, apperror.IsValidation(err))
}

func TestGetSessionNotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.GetSession(context.Background(), "missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestListSessionsNewestFirst(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.UpsertSession(ctx, chat.Session{ID: id, UserID: "u"})
		require.NoError(t, err)
	}

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "c", sessions[0].ID)
	assert.Equal(t, "a", sessions[2].ID)
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.AppendMessage(ctx, chat.Message{SessionID: "s1", Role: "doctor", Content: "hi"})
	require.True(t, apperror.IsValidation(err))

	messages, err := s.ListMessages(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestTimestampsOutsideStorableRange(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	tooLate := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
	tooEarly := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, ts := range []time.Time{tooLate, tooEarly, store.MaxTimestamp.Add(time.Nanosecond), store.MinTimestamp.Add(-time.Nanosecond)} {
		_, err := s.AppendMessage(ctx, chat.Message{SessionID: "s1", Role: chat.RoleUser, Content: ts.String(), Timestamp: ts})
		require.True(t, apperror.IsValidation(err), "timestamp %s", ts)
	}

	_, err := s.UpsertSession(ctx, chat.Session{ID: "s1", UserID: "u1", CreatedAt: tooLate})
	require.True(t, apperror.IsValidation(err))
	_, err = s.GetSession(ctx, "s1")
	require.True(t, apperror.IsNotFound(err))

	_, err = s.AppendReport(ctx, report.Report{SessionID: "s1", Kind: report.KindDoctor, Content: json.RawMessage(`{}`), GeneratedAt: tooEarly})
	require.True(t, apperror.IsValidation(err))

	messages, err := s.ListMessages(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestTimestampsAtStorableBounds(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	inputs := []time.Time{
		store.MaxTimestamp,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		store.MinTimestamp,
	}
	for i, ts := range inputs {
		_, err := s.AppendMessage(ctx, chat.Message{SessionID: "s1", Role: chat.RoleUser, Content: fmt.Sprint(i), Timestamp: ts})
		require.NoError(t, err)
	}

	messages, err := s.ListMessages(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.True(t, messages[0].Timestamp.Equal(store.MinTimestamp), "got %s", messages[0].Timestamp)
	assert.True(t, messages[1].Timestamp.Equal(inputs[1]))
	assert.True(t, messages[2].Timestamp.Equal(store.MaxTimestamp), "got %s", messages[2].Timestamp)
}

func TestListMessagesOrderedByTimestamp(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	offsets := []time.Duration{3 * time.Minute, time.Minute, 2 * time.Minute, time.Minute}
	for i, off := range offsets {
		role := chat.RoleUser
		if i%2 == 1 {
			role = chat.RoleAssistant
		}
		_, err := s.AppendMessage(ctx, chat.Message{
			SessionID: "s1",
			Role:      role,
			Content:   fmt.Sprintf("turn-%d", i),
			Timestamp: base.Add(off),
		})
		require.NoError(t, err)
	}

	messages, err := s.ListMessages(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, messages, len(offsets))
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
	// equal timestamps keep insertion order
	assert.Equal(t, "turn-1", messages[0].Content)
	assert.Equal(t, "turn-3", messages[1].Content)
	assert.Equal(t, "turn-0", messages[3].Content)
}

func TestAppendMessageDefaultsAndRoundTrip(t *testing.T) {
	s, clock := newStore(t)
	ctx := context.Background()

	saved, err := s.AppendMessage(ctx, chat.Message{
		SessionID:       "no-such-session",
		Role:            chat.RoleUser,
		Content:         "我今天很开心",
		EmotionAnalysis: map[string]any{"label": "happy", "confidence": 0.92, "tags": []any{"smile"}},
		Metadata:        map[string]any{"channel": "voice"},
	})
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.True(t, saved.Timestamp.Equal(clock.t))

	messages, err := s.ListMessages(ctx, "no-such-session")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	got := messages[0]
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, chat.RoleUser, got.Role)
	assert.Equal(t, "我今天很开心", got.Content)
	assert.Equal(t, map[string]any{"label": "happy", "confidence": json.Number("0.92"), "tags": []any{"smile"}}, got.EmotionAnalysis)
	assert.Equal(t, map[string]any{"channel": "voice"}, got.Metadata)
}

func TestListMessagesEmpty(t *testing.T) {
	s, _ := newStore(t)

	messages, err := s.ListMessages(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestReportsNewestFirstWithKindFilter(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	kinds := []report.Kind{report.KindDoctor, report.KindFamily, report.KindDoctor}
	for i, kind := range kinds {
		_, err := s.AppendReport(ctx, report.Report{
			SessionID: "s1",
			Kind:      kind,
			Content:   json.RawMessage(fmt.Sprintf(`{"seq":%d,"report_type":%q}`, i, kind)),
			Metadata:  map[string]any{"format": "json", "include_analysis": true},
		})
		require.NoError(t, err)
	}
	_, err := s.AppendReport(ctx, report.Report{SessionID: "s2", Kind: report.KindDoctor, Content: json.RawMessage(`{}`)})
	require.NoError(t, err)

	all, err := s.ListReports(ctx, store.FindReport{SessionID: "s1"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, r := range all {
		assert.Equal(t, "s1", r.SessionID)
		if i > 0 {
			assert.False(t, r.GeneratedAt.After(all[i-1].GeneratedAt))
		}
	}
	assert.JSONEq(t, `{"seq":2,"report_type":"doctor"}`, string(all[0].Content))
	assert.Equal(t, map[string]any{"format": "json", "include_analysis": true}, all[0].Metadata)

	doctor := report.KindDoctor
	filtered, err := s.ListReports(ctx, store.FindReport{SessionID: "s1", Kind: &doctor})
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	for _, r := range filtered {
		assert.Equal(t, report.KindDoctor, r.Kind)
	}
	assert.Greater(t, filtered[0].ID, filtered[1].ID)

	none, err := s.ListReports(ctx, store.FindReport{SessionID: "unknown"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAppendReportRequiresContent(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.AppendReport(context.Background(), report.Report{SessionID: "s1", Kind: report.KindDoctor})
	assert.True(t, apperror.IsValidation(err))
}

func TestConcurrentAppends(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.AppendMessage(ctx, chat.Message{SessionID: "busy", Role: chat.RoleUser, Content: fmt.Sprintf("m%d", i)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	messages, err := s.ListMessages(ctx, "busy")
	require.NoError(t, err)
	assert.Len(t, messages, writers)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "", time.Second)
	assert.Error(t, err)
}
