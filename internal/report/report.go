// Package report renders the outcome of format and resolve runs.
package report

import (
	"io"
	"time"

	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/rules"
)

// FileStatus classifies the outcome for one file.
type FileStatus string

const (
	StatusChanged   FileStatus = "changed"
	StatusUnchanged FileStatus = "unchanged"
	// StatusSkipped marks a file whose rewrite the user declined.
	StatusSkipped FileStatus = "skipped"
	StatusFailed  FileStatus = "failed"
)

// FileResult is the outcome of formatting a single file.
type FileResult struct {
	Path   string
	Status FileStatus
	// Passes carries the per-pass results of an in-process run.
	Passes []rules.Result
	// Stdout and Stderr carry whatever an external tool printed.
	Stdout string
	Stderr string
	Err    error
}

// RunReport aggregates one format invocation across files.
type RunReport struct {
	StartTime time.Time
	EndTime   time.Time
	// Check marks a dry run, where a changed file is drift to report
	// rather than a fix to write.
	Check bool
	Files []FileResult
}

// NewRunReport starts a report clocked from now.
func NewRunReport() *RunReport {
	return &RunReport{StartTime: time.Now()}
}

// Finish stamps the end time.
func (r *RunReport) Finish() {
	r.EndTime = time.Now()
}

// Add appends one file outcome.
func (r *RunReport) Add(fr FileResult) {
	r.Files = append(r.Files, fr)
}

// Stats counts files by what happened on disk. A declined rewrite left the
// file alone, so it counts as unchanged.
func (r *RunReport) Stats() (changed, unchanged, failed int) {
	for _, f := range r.Files {
		switch f.Status {
		case StatusChanged:
			changed++
		case StatusUnchanged, StatusSkipped:
			unchanged++
		case StatusFailed:
			failed++
		}
	}
	return changed, unchanged, failed
}

// ResolveReport describes the outcome of a resolver walk.
type ResolveReport struct {
	// Plan is the winning resolution, nil when the walk failed.
	Plan     *resolver.ExecutionPlan
	Attempts []resolver.Attempt
	// Err is the resolution failure, nil when Plan is set.
	Err error
}

// Reporter renders run and resolve reports in one output format.
type Reporter interface {
	WriteRun(w io.Writer, r *RunReport) error
	WriteResolve(w io.Writer, r *ResolveReport) error
}
