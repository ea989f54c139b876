package app

import (
	"errors"
	"fmt"

	"github.com/norm42-dev/norm42/internal/runner"
)

// Exit codes. Resolution problems, configuration errors and check-mode drift
// exit 1; failures of the external tool and the staging IO around it exit 2.
const (
	ExitOK        = 0
	ExitErr       = 1
	ExitExecution = 2
)

// DriftError reports files a check run would rewrite.
type DriftError struct {
	Count int
}

func (e *DriftError) Error() string {
	if e.Count == 1 {
		return "1 file needs formatting"
	}
	return fmt.Sprintf("%d files need formatting", e.Count)
}

// ExitCode maps an error returned by Run to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var execErr *runner.ExecutionError
	var stageErr *runner.StageError
	if errors.As(err, &execErr) || errors.As(err, &stageErr) {
		return ExitExecution
	}

	return ExitErr
}
