package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesSentinelByCode(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"500 is internal", NewAppError(http.StatusInternalServerError, "failed to query", cause), ErrInternal, true},
		{"400 is validation", NewAppError(http.StatusBadRequest, "invalid nextToken", cause), ErrValidation, true},
		{"400 is not internal", NewAppError(http.StatusBadRequest, "invalid nextToken", cause), ErrInternal, false},
		{"409 is conflict", NewAppError(http.StatusConflict, "version moved", nil), ErrConflict, true},
		{"wrapped cause still visible", NewAppError(http.StatusInternalServerError, "failed", cause), cause, true},
		{"wrapped twice", fmt.Errorf("outer: %w", NewAppError(http.StatusNotFound, "missing", nil)), ErrNotFound, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, errors.Is(tc.err, tc.target))
		})
	}
}

func TestHelpersWrapSentinels(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("bad %s", "date"), ErrValidation)
	assert.ErrorIs(t, NewNotFoundError("ledger 7"), ErrNotFound)

	cause := errors.New(`current status is "Paid"`)
	err := NewInvalidStateError(cause)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"Paid"`)
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "boom", NewAppError(500, "boom", nil).Error())
	assert.Equal(t, "boom: cause", NewAppError(500, "boom", errors.New("cause")).Error())
}
