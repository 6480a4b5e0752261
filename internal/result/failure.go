package result

import "fmt"

// Generic failure codes. Domain areas may define more specific codes.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeBadRequest   = "BAD_REQUEST"
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeUnexpected   = "UNEXPECTED_ERROR"
)

// Failure is an expected, named failure with a machine-readable code and a
// human-readable message. Failures are immutable once constructed.
type Failure struct {
	code    string
	message string
	cause   error
}

// NewFailure creates a failure with the given code and message.
func NewFailure(code, message string) *Failure {
	return &Failure{code: code, message: message}
}

// Unexpected wraps an infrastructure error into a failure so it can travel
// as a value. The original error stays reachable through errors.Unwrap.
func Unexpected(err error) *Failure {
	msg := "An unexpected error occurred"
	if err != nil {
		msg = err.Error()
	}
	return &Failure{code: CodeUnexpected, message: msg, cause: err}
}

// Code returns the machine-readable failure code.
func (f *Failure) Code() string {
	return f.code
}

// Message returns the human-readable failure message.
func (f *Failure) Message() string {
	return f.message
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.code, f.message)
}

// Unwrap returns the infrastructure error behind an unexpected failure.
func (f *Failure) Unwrap() error {
	return f.cause
}

// Is matches another failure with the same code and message.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return f.code == t.code && f.message == t.message
}

// IsUnexpected reports whether the failure wraps an infrastructure error.
func (f *Failure) IsUnexpected() bool {
	return f.code == CodeUnexpected
}
