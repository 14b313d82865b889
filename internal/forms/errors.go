package forms

import "fmt"

// ValidationError is a local form validation failure. It is resolved
// synchronously at the form and never reaches the state container.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a local validation failure
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}
