package rules

import (
	"time"

	"github.com/norm42-dev/norm42/internal/header"
	"github.com/norm42-dev/norm42/internal/identity"
)

const defaultIndentWidth = 4

// Options configures an engine pipeline.
type Options struct {
	// IndentWidth is the number of leading spaces that equal one tab stop.
	IndentWidth int
	// Identity fills the author fields of synthesized headers.
	Identity identity.Identity
	// SkipHeaders drops the header pass from the pipeline.
	SkipHeaders bool
	// Clock overrides the header timestamp source. Tests pin it.
	Clock func() time.Time
}

// Engine runs the fixed normalisation pipeline over one buffer at a time.
type Engine struct {
	passes []Pass
}

// NewEngine builds the pipeline in its fixed order: indentation, declaration
// splitting, newline placement, blank pruning, the 42 header, and the final
// newline.
func NewEngine(opts Options) *Engine {
	width := opts.IndentWidth
	if width <= 0 {
		width = defaultIndentWidth
	}

	synth := header.NewSynthesizer()
	if opts.Clock != nil {
		synth.Now = opts.Clock
	}

	passes := []Pass{
		&indentPass{width: width},
		&declSplitPass{},
		&newlinePass{},
		&prunePass{},
	}
	if !opts.SkipHeaders {
		passes = append(passes, &headerPass{synth: synth, id: opts.Identity})
	}
	passes = append(passes, &eofPass{})

	return &Engine{passes: passes}
}

// NewHeaderEngine builds a pipeline that runs only the header and final
// newline passes, leaving the rest of the source untouched.
func NewHeaderEngine(opts Options) *Engine {
	synth := header.NewSynthesizer()
	if opts.Clock != nil {
		synth.Now = opts.Clock
	}

	return &Engine{passes: []Pass{
		&headerPass{synth: synth, id: opts.Identity},
		&eofPass{},
	}}
}

// Format runs every pass over text and returns the rewritten text with the
// per-pass results. It never fails: lines a pass cannot prove safe are left
// alone and surface as skips.
func (e *Engine) Format(name, text string) (string, []Result) {
	buf := NewSourceBuffer(name, text)
	results := make([]Result, 0, len(e.passes))
	for _, p := range e.passes {
		results = append(results, p.Apply(buf))
	}
	return buf.String(), results
}

// headerPass delegates to the header synthesizer.
type headerPass struct {
	synth *header.Synthesizer
	id    identity.Identity
}

func (p *headerPass) Name() string { return "header" }

func (p *headerPass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	lines, action := p.synth.Ensure(buf.Lines(), buf.Name(), p.id)
	if action != header.Unchanged {
		res.Applied++
	}
	buf.SetLines(lines)
	return res
}
