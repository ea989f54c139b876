package rules

// Pass is one rewrite stage of the pipeline.
type Pass interface {
	// Name identifies the pass in diagnostics and reports.
	Name() string
	// Apply rewrites the buffer in place and reports what happened.
	Apply(buf *SourceBuffer) Result
}

// Result describes one pass run over one buffer.
type Result struct {
	Pass    string `json:"pass"`
	Applied int    `json:"applied"`
	Skips   []Skip `json:"skips,omitempty"`
}

// Skip records a line a pass recognised but refused to rewrite. Skips are
// diagnostics, never failures: the pipeline always runs to completion.
type Skip struct {
	Pass   string `json:"pass"`
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
