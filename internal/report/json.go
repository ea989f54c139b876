package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/norm42-dev/norm42/internal/resolver"
	"github.com/norm42-dev/norm42/internal/rules"
)

// JSONReporter renders reports as indented JSON for machine consumers.
type JSONReporter struct{}

type jsonFile struct {
	Path   string         `json:"path"`
	Status FileStatus     `json:"status"`
	Passes []rules.Result `json:"passes,omitempty"`
	Stdout string         `json:"stdout,omitempty"`
	Stderr string         `json:"stderr,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type jsonRun struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Duration  string `json:"duration"`
	Check     bool   `json:"check,omitempty"`
	Stats     struct {
		Changed   int `json:"changed"`
		Unchanged int `json:"unchanged"`
		Failed    int `json:"failed"`
	} `json:"stats"`
	Files []jsonFile `json:"files"`
}

type jsonResolve struct {
	Found    bool                    `json:"found"`
	Plan     *resolver.ExecutionPlan `json:"plan,omitempty"`
	Attempts []resolver.Attempt      `json:"attempts"`
	Error    string                  `json:"error,omitempty"`
}

func (jr *JSONReporter) WriteRun(w io.Writer, r *RunReport) error {
	out := jsonRun{
		StartTime: r.StartTime.Format(time.RFC3339),
		EndTime:   r.EndTime.Format(time.RFC3339),
		Duration:  r.EndTime.Sub(r.StartTime).String(),
		Check:     r.Check,
		Files:     make([]jsonFile, 0, len(r.Files)),
	}
	out.Stats.Changed, out.Stats.Unchanged, out.Stats.Failed = r.Stats()

	for _, f := range r.Files {
		jf := jsonFile{
			Path:   f.Path,
			Status: f.Status,
			Passes: f.Passes,
			Stdout: f.Stdout,
			Stderr: f.Stderr,
		}
		if f.Err != nil {
			jf.Error = f.Err.Error()
		}
		out.Files = append(out.Files, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (jr *JSONReporter) WriteResolve(w io.Writer, r *ResolveReport) error {
	out := jsonResolve{
		Found:    r.Plan != nil,
		Plan:     r.Plan,
		Attempts: r.Attempts,
	}
	if out.Attempts == nil {
		out.Attempts = []resolver.Attempt{}
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
