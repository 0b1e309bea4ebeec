// Package clierr defines the error kinds surfaced by scaffolding commands and
// maps them to process exit codes.
package clierr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input (bad identifier, bad format).
	ErrValidation = errors.New("validation error")

	// ErrPrecondition indicates generation is impossible: the artifact already
	// exists, no eligible options are available, or no project was found.
	ErrPrecondition = errors.New("precondition failed")

	// ErrAnchorNotFound indicates an expected pattern is missing from a file
	// that a mutator was asked to patch.
	ErrAnchorNotFound = errors.New("patch anchor not found")

	// ErrAborted indicates the user cancelled. It is never printed.
	ErrAborted = errors.New("aborted")
)

// Exit codes.
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitValidation     = 2
	ExitPrecondition   = 3
	ExitAnchorNotFound = 4
)

// DetailError carries a user-facing message with optional location and hint.
type DetailError struct {
	// Type is the error category, e.g. "already exists".
	Type string

	// Message is the specific description.
	Message string

	// Location is a file path related to the failure (optional).
	Location string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error, usually one of the sentinels.
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Location != "" {
		b.WriteString("\n  Location: ")
		b.WriteString(e.Location)
	}
	if e.Hint != "" {
		b.WriteString("\n  Hint: ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// ExitError wraps an error with an exit code. Silent errors are not printed.
type ExitError struct {
	Err    error
	Code   int
	Silent bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with the given message.
func Validation(format string, args ...any) error {
	return &DetailError{Type: "validation failed", Message: fmt.Sprintf(format, args...), Cause: ErrValidation}
}

// Precondition returns a precondition error with the given message.
func Precondition(format string, args ...any) error {
	return &DetailError{Type: "precondition failed", Message: fmt.Sprintf(format, args...), Cause: ErrPrecondition}
}

// AnchorNotFound reports that anchor could not be located in the file at path.
func AnchorNotFound(path, anchor string) error {
	return &DetailError{
		Type:     "patch failed",
		Message:  fmt.Sprintf("could not find %s", anchor),
		Location: path,
		Hint:     "The file does not have the layout expected by the generator; apply the change by hand.",
		Cause:    ErrAnchorNotFound,
	}
}

// Silent marks err as a deliberate no-op failure: the process exits non-zero
// without printing anything.
func Silent(err error) error {
	if err == nil {
		err = ErrAborted
	}
	return &ExitError{Err: err, Code: ExitGeneralError, Silent: true}
}

// IsSilent reports whether err should terminate the process without a message.
func IsSilent(err error) bool {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Silent {
		return true
	}
	return errors.Is(err, ErrAborted)
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidation
	case errors.Is(err, ErrPrecondition):
		return ExitPrecondition
	case errors.Is(err, ErrAnchorNotFound):
		return ExitAnchorNotFound
	default:
		return ExitGeneralError
	}
}
