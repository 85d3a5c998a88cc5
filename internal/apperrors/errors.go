package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidState indicates that an operation was attempted on a ledger entry
// whose current status does not allow it.
var ErrInvalidState = errors.New("invalid state")

// ErrConflict indicates that a concurrent write to the same ledger entry won.
var ErrConflict = errors.New("conflicting concurrent update")

// ErrInternal indicates a storage or otherwise unexpected failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code and a message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match AppErrors against the sentinel that corresponds to their code.
func (e *AppError) Is(target error) bool {
	switch target {
	case ErrInternal:
		return e.Code >= http.StatusInternalServerError
	case ErrValidation:
		return e.Code == http.StatusBadRequest
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	}
	return false
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a not-found error that still matches ErrNotFound.
func NewNotFoundError(message string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, message)
}

// NewValidationError builds a validation error that still matches ErrValidation.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewInvalidStateError marks cause as an invalid-state error. Both ErrInvalidState and cause stay matchable.
func NewInvalidStateError(cause error) error {
	return fmt.Errorf("%w: %w", ErrInvalidState, cause)
}
