package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/runner"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"tool failure", &runner.ExecutionError{Command: "c_formatter_42", ExitCode: 3}, ExitExecution},
		{"staging failure", &runner.StageError{Path: "main.c", Err: errors.New("disk full")}, ExitExecution},
		{"wrapped tool failure", fmt.Errorf("formatting: %w", &runner.ExecutionError{ExitCode: 1}), ExitExecution},
		{"resolution failure", &resolver.ResolutionError{}, ExitErr},
		{"drift", &DriftError{Count: 2}, ExitErr},
		{"anything else", errors.New("boom"), ExitErr},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCode(tc.err))
		})
	}
}

func TestDriftErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 file needs formatting", (&DriftError{Count: 1}).Error())
	assert.Equal(t, "3 files need formatting", (&DriftError{Count: 3}).Error())
}
