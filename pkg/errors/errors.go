package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	// ErrCodeRenderFailed indicates the dry-run merge of operator overrides
	// against the parent chart failed. Fatal for the whole run: no computed
	// override data exists to proceed with.
	ErrCodeRenderFailed = "RENDER_FAILED"

	// ErrCodeApplyFailed indicates a single target's install/upgrade/remove
	// failed. Recorded per target, never fatal for the run.
	ErrCodeApplyFailed = "APPLY_FAILED"

	// ErrCodeFetchFailed indicates the chart reference could not be resolved
	// into an unpacked chart directory.
	ErrCodeFetchFailed = "FETCH_FAILED"

	// ErrCodeInvalidArgument indicates malformed user input (flags, release
	// name, chart reference).
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"

	// ErrCodeInternal indicates an unexpected internal failure.
	ErrCodeInternal = "INTERNAL"

	// ErrCodeTimeout indicates the operation was cancelled or timed out.
	ErrCodeTimeout = "TIMEOUT"
)

// Error is a coded error. The code classifies the failure for callers that
// need to branch on failure class (fatal render errors vs per-target apply
// errors) without string matching.
type Error struct {
	ErrCode string
	Message string
	Err     error
}

// New creates a coded error with the given code and message.
func New(code, message string) *Error {
	return &Error{ErrCode: code, Message: message}
}

// Wrap creates a coded error wrapping an underlying cause.
func Wrap(code, message string, err error) *Error {
	return &Error{ErrCode: code, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.ErrCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.ErrCode, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code extracts the error code from err, walking the wrap chain.
// Returns ErrCodeInternal for nil-safe use with non-coded errors.
func Code(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.ErrCode
	}
	return ErrCodeInternal
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code string) bool {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.ErrCode == code
	}
	return false
}
