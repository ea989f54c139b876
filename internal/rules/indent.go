package rules

import (
	"strings"
)

// indentPass converts leading space runs that are an exact multiple of the
// indent width into tabs. Runs of at least one width that do not divide
// evenly are recorded as skips; shorter runs are treated as alignment and
// left alone. Whitespace after the first non-whitespace character is never
// touched.
type indentPass struct {
	width int
}

func (p *indentPass) Name() string { return "indent" }

func (p *indentPass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	sc := &lineScanner{}
	lines := buf.Lines()

	for i, line := range lines {
		_, inComment := sc.mask(line)
		if inComment {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		spaces := leadingSpaces(line)
		if spaces == 0 {
			continue
		}
		if spaces%p.width != 0 {
			if spaces >= p.width {
				res.Skips = append(res.Skips, Skip{
					Pass:   p.Name(),
					Line:   i + 1,
					Reason: "leading spaces are not a whole number of indent stops",
				})
			}
			continue
		}

		lines[i] = strings.Repeat("\t", spaces/p.width) + line[spaces:]
		res.Applied++
	}

	buf.SetLines(lines)
	return res
}

// leadingSpaces counts the run of space characters at the start of line.
func leadingSpaces(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}
