// Package rules implements the line-level normalisation pipeline that
// rewrites C sources towards the 42 norm without parsing C.
package rules

import (
	"strings"
)

// SourceBuffer holds the lines of one source file while the pipeline runs.
type SourceBuffer struct {
	name  string
	lines []string
}

// NewSourceBuffer splits text into lines. Windows line endings are normalised
// to LF on load; rendered output always uses LF.
func NewSourceBuffer(name, text string) *SourceBuffer {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &SourceBuffer{name: name, lines: lines}
}

// Name returns the file name the buffer was loaded from.
func (b *SourceBuffer) Name() string { return b.name }

// Lines returns the current line slice. Passes may mutate it in place and
// hand it back through SetLines.
func (b *SourceBuffer) Lines() []string { return b.lines }

// SetLines replaces the buffer contents.
func (b *SourceBuffer) SetLines(lines []string) { b.lines = lines }

// String renders the buffer back to text.
func (b *SourceBuffer) String() string { return strings.Join(b.lines, "\n") }
