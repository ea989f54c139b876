package rules

import (
	"strings"
)

// prunePass collapses runs of blank lines to a single blank and removes the
// blank directly after a function-opening brace (a line that is exactly "{"
// at column zero). Indented block braces keep their blank.
type prunePass struct{}

func (p *prunePass) Name() string { return "prune" }

func (p *prunePass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	in := buf.Lines()
	out := make([]string, 0, len(in))

	for _, line := range in {
		if strings.TrimSpace(line) == "" && len(out) > 0 {
			prev := out[len(out)-1]
			if strings.TrimSpace(prev) == "" || prev == "{" {
				res.Applied++
				continue
			}
		}
		out = append(out, line)
	}

	buf.SetLines(out)
	return res
}
