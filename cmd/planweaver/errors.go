package main

import (
	"errors"
	"fmt"
)

// Exit codes
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates an unexpected runtime failure
	ExitGeneralError = 1
	// ExitUsageError indicates invalid flags or an invalid flag combination
	ExitUsageError = 2
	// ExitConfigError indicates a bad config file, environment or preset
	ExitConfigError = 3
)

// ExitError carries the process exit code for a failed invocation. Reported is set when the
// error was already written to the user.
type ExitError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsageError, Err: err}
}

func configError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitConfigError, Err: fmt.Errorf(format, args...)}
}

// exitCode maps an error returned by the root command to a process exit code. Every error
// raised by planweaver itself is an ExitError, so anything else came from cobra's own flag
// and argument checks.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitUsageError
}
