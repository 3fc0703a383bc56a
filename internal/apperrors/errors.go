package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Code is the machine-readable classification of a sheet store failure.
type Code string

const (
	CodeAuth       Code = "AUTH_ERROR"
	CodeRateLimit  Code = "RATE_LIMIT"
	CodeNetwork    Code = "NETWORK_ERROR"
	CodeValidation Code = "VALIDATION_ERROR"
	CodeUnknown    Code = "UNKNOWN"
)

// AppError is a classified failure from the remote sheet store. It carries the
// operation name that produced it for diagnostics, the HTTP-like status when
// one was available, and whether the retry executor may re-attempt it.
type AppError struct {
	Code      Code
	Message   string
	Status    int
	Retryable bool
	Op        string
	Err       error
}

func (e *AppError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with an HTTP-like status and message, classified as unknown.
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Code:      CodeUnknown,
		Message:   message,
		Status:    status,
		Retryable: status >= 500,
		Err:       err,
	}
}
