package runner

import (
	"errors"
	"fmt"
)

// errUnknownMode guards against plans with an invocation mode the runner
// does not implement.
var errUnknownMode = errors.New("unknown invocation mode")

// StageError is returned when the target file could not be copied to the
// staging location, before the formatter ever ran.
type StageError struct {
	Path string
	Err  error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("staging %s: %v", e.Path, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// ExecutionError is returned when the formatter process failed, either
// because it could not start or because it exited nonzero. Stderr carries
// whatever diagnostics the tool wrote.
type ExecutionError struct {
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed to start: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
