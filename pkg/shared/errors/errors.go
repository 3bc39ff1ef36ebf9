package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// TimeoutError is returned when a linter process was killed because it exceeded its timeout.
// It is scoped to a single aggregation unit.
type TimeoutError struct {
	Tool    string
	Timeout time.Duration
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout from %s after %s", e.Tool, e.Timeout)
}

// NewTimeoutError creates a new TimeoutError for the given tool.
func NewTimeoutError(tool string, timeout time.Duration) error {
	return &TimeoutError{Tool: tool, Timeout: timeout}
}

// ToolExitError reports that a linter exited with a code outside its accepted set.
// The batch is invalid and the host process must exit with the same code.
type ToolExitError struct {
	Tool     string
	ExitCode int
}

// Error implements the error interface for ToolExitError.
func (e *ToolExitError) Error() string {
	return fmt.Sprintf("%s exited with %d", e.Tool, e.ExitCode)
}

// NewToolExitError creates a new ToolExitError.
func NewToolExitError(tool string, code int) error {
	return &ToolExitError{Tool: tool, ExitCode: code}
}

// MalformedRecordError reports a record in a linter's output whose field has an unexpected type.
type MalformedRecordError struct {
	Tool  string
	Field string
	Got   string
}

// Error implements the error interface for MalformedRecordError.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: got %s for %s", e.Tool, e.Got, e.Field)
}

// NewMalformedRecordError creates a new MalformedRecordError.
func NewMalformedRecordError(tool, field, got string) error {
	return &MalformedRecordError{Tool: tool, Field: field, Got: got}
}

// IsFatal reports whether err invalidates the whole batch rather than a single unit.
func IsFatal(err error) bool {
	var exitErr *ToolExitError
	var recordErr *MalformedRecordError
	return stderrors.As(err, &exitErr) || stderrors.As(err, &recordErr)
}

// IsTimeout reports whether err is, or wraps, a TimeoutError.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return stderrors.As(err, &timeoutErr)
}

// CommandError represents an error that occurred during command execution together with the exit code to use.
type CommandError struct {
	ExitCode    int
	CommonError string
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

// NewCommandError creates a new CommandError instance from err and the exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
	}
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ToolExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode
	}
	var cmdErr *CommandError
	if stderrors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return 1
}
