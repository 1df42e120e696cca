package utils

import (
	"errors"
	"fmt"
)

// AppError wraps an operation, human-facing message, upstream status, and underlying error.
type AppError struct {
	Op         string
	Msg        string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	msg := e.Msg
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", e.Msg, e.StatusCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Msg: msg, Err: err}
}

// NewStatusError constructs an AppError for a non-success upstream response.
func NewStatusError(op string, statusCode int, body string) error {
	return &AppError{Op: op, Msg: "unexpected upstream response", StatusCode: statusCode, Err: bodyError(body)}
}

// StatusCodeOf returns the upstream status carried by err, or 0.
func StatusCodeOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

func bodyError(body string) error {
	if body == "" {
		return nil
	}
	return errors.New(body)
}
