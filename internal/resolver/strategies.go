package resolver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/norm42-dev/norm42/internal/fsh"
)

const pythonExecutable = "python3"

// resolveOverride validates an explicit override. A file must be executable;
// a directory must contain either the Python package or the executable.
// Anything else is a hard error so user intent is never silently dropped.
func (c *Chain) resolveOverride(path string) (*ExecutionPlan, []Attempt, error) {
	info, err := os.Stat(path)
	if err != nil {
		attempts := []Attempt{{Strategy: StrategyOverride, Location: path, Found: false}}
		return nil, attempts, &InvalidOverrideError{Path: path, Reason: "path does not exist"}
	}

	if !info.IsDir() {
		if !fsh.IsExecutableFile(path) {
			attempts := []Attempt{{Strategy: StrategyOverride, Location: path, Found: false}}
			return nil, attempts, &InvalidOverrideError{Path: path, Reason: "not an executable file"}
		}
		attempts := []Attempt{{Strategy: StrategyOverride, Location: path, Found: true}}
		return &ExecutionPlan{Mode: ModeDirect, Path: path, Strategy: StrategyOverride}, attempts, nil
	}

	// A directory override is either a package checkout or a bin directory.
	var attempts []Attempt

	pkg := filepath.Join(path, ModuleName, "__init__.py")
	if _, err := os.Stat(pkg); err == nil {
		attempts = append(attempts, Attempt{Strategy: StrategyOverride, Location: pkg, Found: true})
		python, lookErr := exec.LookPath(pythonExecutable)
		if lookErr != nil {
			return nil, attempts, &InvalidOverrideError{Path: path, Reason: "package directory needs a python3 interpreter"}
		}
		plan := &ExecutionPlan{Mode: ModeShim, ModuleRoot: path, PythonExe: python, Strategy: StrategyOverride}
		return plan, attempts, nil
	}
	attempts = append(attempts, Attempt{Strategy: StrategyOverride, Location: pkg, Found: false})

	exe := filepath.Join(path, ExecutableName)
	if fsh.IsExecutableFile(exe) {
		attempts = append(attempts, Attempt{Strategy: StrategyOverride, Location: exe, Found: true})
		return &ExecutionPlan{Mode: ModeDirect, Path: exe, Strategy: StrategyOverride}, attempts, nil
	}
	attempts = append(attempts, Attempt{Strategy: StrategyOverride, Location: exe, Found: false})

	reason := fmt.Sprintf("directory holds neither the %s package nor the executable", ModuleName)
	return nil, attempts, &InvalidOverrideError{Path: path, Reason: reason}
}

// resolvePath looks the executable up on the search path.
func (c *Chain) resolvePath() (*ExecutionPlan, Attempt) {
	exe, err := exec.LookPath(ExecutableName)
	if err != nil {
		return nil, Attempt{Strategy: StrategyPath, Location: ExecutableName, Found: false}
	}
	plan := &ExecutionPlan{Mode: ModeDirect, Path: exe, Strategy: StrategyPath}
	return plan, Attempt{Strategy: StrategyPath, Location: exe, Found: true}
}

// resolveModule asks the interpreter whether the package is importable and
// where it lives. The reported root goes onto PYTHONPATH so that a run-module
// invocation finds the same installation the probe did.
func (c *Chain) resolveModule() (*ExecutionPlan, []Attempt) {
	location := pythonExecutable + " -m " + ModuleName

	python, err := exec.LookPath(pythonExecutable)
	if err != nil {
		return nil, []Attempt{{Strategy: StrategyModule, Location: location, Found: false}}
	}

	root, err := moduleRoot(python)
	if err != nil {
		return nil, []Attempt{{Strategy: StrategyModule, Location: location, Found: false}}
	}

	plan := &ExecutionPlan{Mode: ModeModule, ModuleRoot: root, PythonExe: python, Strategy: StrategyModule}
	return plan, []Attempt{{Strategy: StrategyModule, Location: root, Found: true}}
}

// moduleRoot returns the directory containing the installed package, two
// levels above its __init__.py.
func moduleRoot(python string) (string, error) {
	probe := fmt.Sprintf("import os, %[1]s; print(os.path.dirname(os.path.dirname(%[1]s.__file__)))", ModuleName)

	var stdout bytes.Buffer
	cmd := exec.Command(python, "-c", probe)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}

	root := strings.TrimSpace(stdout.String())
	if root == "" {
		return "", fmt.Errorf("%s reported no location for %s", python, ModuleName)
	}
	return root, nil
}

// wellKnownDirs lists the fixed installation directories scanned when the
// dynamic strategies fail: the user-local bin that pip --user and pipx both
// populate, the pipx venv for the formatter, and the active virtualenv.
func (c *Chain) wellKnownDirs() []string {
	var dirs []string
	if home := c.env.Get("HOME"); home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".local", "pipx", "venvs", DistName, "bin"),
		)
	}
	if venv := c.env.Get("VIRTUAL_ENV"); venv != "" {
		dirs = append(dirs, filepath.Join(venv, "bin"))
	}
	return dirs
}

func (c *Chain) resolveWellKnown() (*ExecutionPlan, []Attempt) {
	var attempts []Attempt
	for _, dir := range c.wellKnownDirs() {
		exe := filepath.Join(dir, ExecutableName)
		if fsh.IsExecutableFile(exe) {
			attempts = append(attempts, Attempt{Strategy: StrategyWellKnown, Location: exe, Found: true})
			return &ExecutionPlan{Mode: ModeDirect, Path: exe, Strategy: StrategyWellKnown}, attempts
		}
		attempts = append(attempts, Attempt{Strategy: StrategyWellKnown, Location: exe, Found: false})
	}
	return nil, attempts
}

// resolveBrew asks Homebrew for the formula's install prefix.
func (c *Chain) resolveBrew() (*ExecutionPlan, []Attempt) {
	location := "brew --prefix " + DistName

	brew, err := exec.LookPath("brew")
	if err != nil {
		return nil, []Attempt{{Strategy: StrategyBrew, Location: location, Found: false}}
	}

	var stdout bytes.Buffer
	cmd := exec.Command(brew, "--prefix", DistName)
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, []Attempt{{Strategy: StrategyBrew, Location: location, Found: false}}
	}

	prefix := strings.TrimSpace(stdout.String())
	exe := filepath.Join(prefix, "bin", ExecutableName)
	if !fsh.IsExecutableFile(exe) {
		return nil, []Attempt{{Strategy: StrategyBrew, Location: exe, Found: false}}
	}

	return &ExecutionPlan{Mode: ModeDirect, Path: exe, Strategy: StrategyBrew},
		[]Attempt{{Strategy: StrategyBrew, Location: exe, Found: true}}
}
