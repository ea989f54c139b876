// Package resolver locates a usable c_formatter_42 installation by walking an
// ordered list of strategies and caching the winning plan.
package resolver

// ExecutableName is the formatter binary looked for on disk and on PATH.
const ExecutableName = "c_formatter_42"

// ModuleName is the importable Python package the formatter ships as.
const ModuleName = "c_formatter_42"

// DistName is the distribution name used by package managers, dashed where
// the module name is underscored.
const DistName = "c-formatter-42"

// Mode selects how the dispatcher invokes a resolved installation.
type Mode string

const (
	// ModeDirect runs the resolved executable with the file as its argument.
	ModeDirect Mode = "direct"
	// ModeModule runs the interpreter with the run-module flag.
	ModeModule Mode = "module"
	// ModeShim generates a throwaway script that imports the package and
	// calls its entry point, for package directories not on the import path.
	ModeShim Mode = "shim"
)

// Strategy names, in resolution order.
const (
	StrategyOverride  = "override"
	StrategyPath      = "path"
	StrategyModule    = "module"
	StrategyWellKnown = "well-known"
	StrategyBrew      = "brew"
)

// ExecutionPlan is a winning resolution. It is owned by the chain's cache and
// reused across invocations until the override changes.
type ExecutionPlan struct {
	// Mode selects the invocation shape.
	Mode Mode `json:"mode"`
	// Path is the executable for direct runs.
	Path string `json:"path,omitempty"`
	// ModuleRoot is prepended to PYTHONPATH for module and shim runs.
	ModuleRoot string `json:"moduleRoot,omitempty"`
	// PythonExe is the interpreter for module and shim runs.
	PythonExe string `json:"pythonExe,omitempty"`
	// Strategy names the strategy that produced this plan.
	Strategy string `json:"strategy"`
}

// Attempt records one location a strategy probed.
type Attempt struct {
	Strategy string `json:"strategy"`
	Location string `json:"location"`
	Found    bool   `json:"found"`
}
