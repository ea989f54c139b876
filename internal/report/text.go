package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/norm42-dev/norm42/internal/config"
	"github.com/norm42-dev/norm42/internal/resolver"
)

// TextReporter renders reports as plain text for the console.
type TextReporter struct {
	Verbose   bool
	UseColour bool
}

const (
	colReset     = "\033[0m"
	colRed       = "\033[31m"
	colGreen     = "\033[32m"
	colGrey      = "\033[90m"
	colWhite     = "\033[37m"
	colBoldRed   = "\033[1;31m"
	colBoldGreen = "\033[1;32m"
	colBoldWhite = "\033[1;37m"
)

// cs returns a string which will render with the given colour
// if colourisation is enabled.
func (tr *TextReporter) cs(c, s string) string {
	if !tr.UseColour {
		return s
	}
	return c + s + colReset
}

func (tr *TextReporter) WriteRun(w io.Writer, r *RunReport) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "NORM42 FORMAT REPORT\n\n"))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Started: "), tr.cs(colWhite, r.StartTime.Format("15:04:05")))
	fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Duration:"), tr.cs(colWhite, r.EndTime.Sub(r.StartTime).String()))
	fmt.Fprintf(w, "%s\n", divider)

	for _, f := range r.Files {
		tr.writeFile(w, r, f)
	}

	changed, unchanged, failed := r.Stats()
	fmt.Fprintf(w, "%s\n", divider)
	summaryLabel := tr.cs(colBoldWhite, "Summary: ")
	summaryStats := fmt.Sprintf("%d changed, %d unchanged, %d failed", changed, unchanged, failed)
	statsColour := colBoldGreen
	if failed > 0 || (r.Check && changed > 0) {
		statsColour = colBoldRed
	}
	fmt.Fprintf(w, "%s%s\n", summaryLabel, tr.cs(statsColour, summaryStats))
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}

func (tr *TextReporter) writeFile(w io.Writer, r *RunReport, f FileResult) {
	status := tr.cs(colGreen, "[OK]")
	suffix := "(" + string(f.Status) + ")"
	switch {
	case f.Status == StatusFailed:
		status = tr.cs(colRed, "[FAIL]")
		suffix = ""
	case f.Status == StatusChanged && r.Check:
		status = tr.cs(colRed, "[DRIFT]")
		suffix = "(needs formatting)"
	}

	line := status + " " + tr.cs(colWhite, f.Path)
	if suffix != "" {
		line += " " + tr.cs(colGrey, suffix)
	}
	fmt.Fprintf(w, "%s\n", line)

	if f.Err != nil {
		fmt.Fprintf(w, "    %s\n", tr.cs(colRed, f.Err.Error()))
	}
	if f.Status == StatusFailed && f.Stderr != "" {
		for _, line := range strings.Split(strings.TrimRight(f.Stderr, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", tr.cs(colGrey, line))
		}
	}

	for _, pass := range f.Passes {
		if tr.Verbose {
			fmt.Fprintf(w, "  %s %s %s\n",
				tr.cs(colGreen, "✓"),
				tr.cs(colGrey, pass.Pass),
				tr.cs(colGreen, fmt.Sprintf("(%d applied)", pass.Applied)))
		}
		for _, skip := range pass.Skips {
			fmt.Fprintf(w, "  %s %s\n",
				tr.cs(colRed, "✗"),
				tr.cs(colGrey, fmt.Sprintf("%s line %d: %s", skip.Pass, skip.Line, skip.Reason)))
		}
	}
}

func (tr *TextReporter) WriteResolve(w io.Writer, r *ResolveReport) error {
	divider := strings.Repeat("-", 40)

	fmt.Fprintf(w, "%s\n", divider)
	fmt.Fprint(w, tr.cs(colBoldWhite, "NORM42 RESOLVER REPORT\n\n"))

	if r.Plan != nil {
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Mode:    "), tr.cs(colWhite, string(r.Plan.Mode)))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Command: "), tr.cs(colWhite, planCommand(r.Plan)))
		fmt.Fprintf(w, "%s %s\n", tr.cs(colGrey, "Strategy:"), tr.cs(colWhite, r.Plan.Strategy))
	} else {
		fmt.Fprint(w, tr.cs(colBoldRed, "Formatter not found.\n"))
	}
	fmt.Fprintf(w, "%s\n", divider)

	for _, a := range r.Attempts {
		mark := tr.cs(colRed, "✗")
		if a.Found {
			mark = tr.cs(colGreen, "✓")
		}
		fmt.Fprintf(w, "  %s %s %s\n", mark, tr.cs(colWhite, a.Strategy), tr.cs(colGrey, a.Location))
	}

	if r.Plan == nil {
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprintf(w, "Install %s using one of the following methods:\n", resolver.ExecutableName)
		fmt.Fprint(w, "  pip install c_formatter_42\n")
		fmt.Fprint(w, "  pipx install c_formatter_42\n")
		fmt.Fprint(w, "  brew install c-formatter-42\n")
		fmt.Fprintf(w, "Or set the %s environment variable to the path of the executable.\n", config.FormatterPathEnvVar)
	}
	fmt.Fprintf(w, "%s\n", divider)

	return nil
}

// planCommand renders the command line a plan will execute.
func planCommand(plan *resolver.ExecutionPlan) string {
	switch plan.Mode {
	case resolver.ModeModule:
		return plan.PythonExe + " -m " + resolver.ModuleName
	case resolver.ModeShim:
		return plan.PythonExe + " (generated shim for " + plan.ModuleRoot + ")"
	default:
		return plan.Path
	}
}
