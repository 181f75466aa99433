package apperror

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrappedErrors(t *testing.T) {
	err := Validation("store.AppendMessage", "invalid role %q", "doctor")
	wrapped := pkgerrors.Wrap(err, "handler")

	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, `invalid role "doctor"`, Reason(wrapped))
}

func TestStorageKeepsClassifiedErrors(t *testing.T) {
	notFound := NotFound("store.GetSession", "session %s not found", "s1")
	assert.Same(t, notFound, Storage("store.GetSession", notFound))

	assert.Nil(t, Storage("noop", nil))

	cause := errors.New("disk I/O error")
	err := Storage("store.AppendReport", cause)
	require.True(t, IsStorage(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store.AppendReport: disk I/O error", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindUnknown, KindOf(err))
	assert.Equal(t, "boom", Reason(err))
}
