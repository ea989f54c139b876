package rules

import (
	"slices"
	"strings"
)

// eofPass leaves the buffer with exactly one trailing newline, whatever the
// input ended with.
type eofPass struct{}

func (p *eofPass) Name() string { return "eof" }

func (p *eofPass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	in := buf.Lines()

	n := len(in)
	for n > 0 && strings.TrimSpace(in[n-1]) == "" {
		n--
	}

	out := make([]string, 0, n+2)
	out = append(out, in[:n]...)
	if n == 0 {
		// an empty file becomes a single newline
		out = append(out, "")
	}
	out = append(out, "")

	if !slices.Equal(in, out) {
		res.Applied++
	}
	buf.SetLines(out)
	return res
}
