package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a failed backend call. Message carries the message extracted
// from the server's error envelope and stays empty when the response had
// none, so callers can substitute their own fallback text.
type Error struct {
	Op         string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.StatusCode != 0 {
		msg = fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if msg == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// newError builds a transport-level failure with no server message
func newError(op string, cause error) *Error {
	return &Error{Op: op, Cause: cause}
}

// newStatusError builds a failure from a non-2xx response
func newStatusError(op string, status int, message string) *Error {
	return &Error{Op: op, StatusCode: status, Message: message}
}

// UserMessage resolves the string to surface for a failed operation:
// the server-extracted message when one exists, the operation's fixed
// fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsAuthError reports whether err is a 401 from the backend
func IsAuthError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// StatusCode returns the HTTP status of a failed call, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
