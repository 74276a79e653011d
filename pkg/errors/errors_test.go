package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRulesError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *RulesError
		expected string
	}{
		{
			name:     "without wrapped error",
			err:      New(ErrNotFound, "rule not found"),
			expected: "[NOT_FOUND] rule not found",
		},
		{
			name:     "with wrapped error",
			err:      Wrap(fmt.Errorf("no such file"), ErrFileAccess, "cannot read rule"),
			expected: "[FILE_ACCESS] cannot read rule: no such file",
		},
		{
			name:     "formatted message",
			err:      Newf(ErrSelectionInvalid, "unknown language %q", "cobol"),
			expected: `[SELECTION_INVALID] unknown language "cobol"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrInternal, "should be nil"))
	assert.Nil(t, Wrapf(nil, ErrInternal, "should be %s", "nil"))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrCatalogEmpty, "empty")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, IsErrorCode(err, ErrCatalogEmpty))
	assert.True(t, IsErrorCode(wrapped, ErrCatalogEmpty))
	assert.False(t, IsErrorCode(err, ErrNotFound))
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrCatalogEmpty))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrGitNotFound, GetErrorCode(New(ErrGitNotFound, "no git")))
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrNotFound, "unknown framework").
		WithDetail("valid", []string{"nestjs", "fastapi"}).
		WithDetail("given", "django")

	details := GetErrorDetails(err)
	assert.Equal(t, []string{"nestjs", "fastapi"}, details["valid"])
	assert.Equal(t, "django", details["given"])
	assert.Nil(t, GetErrorDetails(stderrors.New("plain")))
}

func TestErrorsIs_MatchesOnCode(t *testing.T) {
	a := New(ErrSourceClone, "clone failed")
	b := New(ErrSourceClone, "different message")

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, New(ErrSourceUpdate, "clone failed")))
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("inner")
	err := Wrap(inner, ErrFileWrite, "outer")

	assert.Equal(t, inner, stderrors.Unwrap(err))
	assert.True(t, stderrors.Is(err, inner))
}
