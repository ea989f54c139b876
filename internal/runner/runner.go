// Package runner invokes a resolved formatter installation against single
// files through a staged temporary copy, so a failing tool can never corrupt
// the original.
package runner

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/norm42-dev/norm42/internal/fsh"
	"github.com/norm42-dev/norm42/internal/resolver"
)

// Result is a successful formatter run.
type Result struct {
	// Output is the formatted text read back from the staging copy.
	Output string
	// Stdout and Stderr are whatever the tool printed while running.
	Stdout string
	Stderr string
}

// Runner dispatches execution plans.
type Runner struct {
	// TempDir is where staging copies and shims are created. Empty uses the
	// system default.
	TempDir string
	// Env holds extra environment variables set for every invocation.
	Env map[string]string
}

// New creates a Runner staging into the system temporary directory.
func New() *Runner {
	return &Runner{}
}

// Run executes plan against the file at path and returns the formatted text.
// The original file is never written to; it is copied to a staging file, the
// tool runs against the copy, and the copy is removed on every exit path.
func (r *Runner) Run(plan *resolver.ExecutionPlan, path string) (*Result, error) {
	staged, err := r.stage(path)
	if err != nil {
		return nil, &StageError{Path: path, Err: err}
	}
	defer os.Remove(staged)

	cmd, cleanup, err := r.command(plan, staged)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		execErr := &ExecutionError{Command: cmd.Path, Stderr: stderr.String()}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			execErr.ExitCode = exitErr.ExitCode()
		} else {
			execErr.ExitCode = -1
			execErr.Err = runErr
		}
		return nil, execErr
	}

	formatted, err := os.ReadFile(staged)
	if err != nil {
		return nil, &StageError{Path: path, Err: err}
	}

	return &Result{
		Output: string(formatted),
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}, nil
}

// stage copies the target into a private temporary file the tool is allowed
// to rewrite.
func (r *Runner) stage(path string) (string, error) {
	tmp, err := os.CreateTemp(r.TempDir, "norm42-*.c")
	if err != nil {
		return "", err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", err
	}

	if err := fsh.CopyFile(path, name, 0o600); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// command builds the invocation for the plan's mode. The returned cleanup
// removes any generated shim and is safe to call unconditionally.
func (r *Runner) command(plan *resolver.ExecutionPlan, target string) (*exec.Cmd, func(), error) {
	noop := func() {}

	switch plan.Mode {
	case resolver.ModeDirect:
		cmd := exec.Command(plan.Path, target)
		cmd.Env = r.environ(nil)
		return cmd, noop, nil

	case resolver.ModeModule:
		cmd := exec.Command(plan.PythonExe, "-m", resolver.ModuleName, target)
		cmd.Env = r.environ(func(env []string) []string {
			return prependPythonPath(env, plan.ModuleRoot)
		})
		return cmd, noop, nil

	case resolver.ModeShim:
		shim, err := writeShim(r.TempDir, plan.ModuleRoot)
		if err != nil {
			return nil, noop, &StageError{Path: target, Err: err}
		}
		cmd := exec.Command(plan.PythonExe, shim, target)
		cmd.Env = r.environ(nil)
		return cmd, func() { os.Remove(shim) }, nil
	}

	return nil, noop, &ExecutionError{Command: string(plan.Mode), ExitCode: -1, Err: errUnknownMode}
}

// environ merges the process environment with the runner's extra variables,
// then applies transform when given.
func (r *Runner) environ(transform func([]string) []string) []string {
	env := os.Environ()
	for key, value := range r.Env {
		env = setEnv(env, key, value)
	}
	if transform != nil {
		env = transform(env)
	}
	return env
}

// setEnv replaces or appends key in an environ-style slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// prependPythonPath puts root in front of any existing PYTHONPATH so a
// run-module invocation finds the same installation the resolver probed.
func prependPythonPath(env []string, root string) []string {
	const prefix = "PYTHONPATH="

	existing := ""
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			existing = strings.TrimPrefix(kv, prefix)
			continue
		}
		out = append(out, kv)
	}

	value := root
	if existing != "" {
		value = root + ":" + existing
	}
	return append(out, prefix+value)
}
