package rules

import (
	"regexp"
	"strings"
)

// bareDeclRe matches a bare declaration statement: one or more type words,
// a possibly pointered identifier, an optional array suffix, and the
// terminating semicolon. Matched against trimmed masked lines.
var bareDeclRe = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*\s+)+\**[A-Za-z_][A-Za-z0-9_]*(?:\[[^\]]*\])?;$`)

// newlinePass puts opening braces on their own lines and inserts the blank
// lines the norm requires after bare declarations and block-opening braces.
// A closing brace that shares its line with code (do/while tails, else
// chains) is never rewritten and is recorded as a skip.
type newlinePass struct{}

func (p *newlinePass) Name() string { return "newline" }

func (p *newlinePass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	lines := p.splitBraces(buf.Lines(), &res)
	lines = p.insertBlanks(lines, &res)
	buf.SetLines(lines)
	return res
}

// splitBraces moves a trailing opening brace onto its own line at the same
// indentation. Empty bodies written as {} stay on one line.
func (p *newlinePass) splitBraces(in []string, res *Result) []string {
	sc := &lineScanner{}
	out := make([]string, 0, len(in))

	for _, line := range in {
		masked, inComment := sc.mask(line)
		if inComment {
			out = append(out, line)
			continue
		}

		trimmed := strings.TrimSpace(masked)
		switch {
		case trimmed == "" || trimmed == "{":
			out = append(out, line)
		case strings.Contains(trimmed, "{}"):
			out = append(out, line)
		case strings.HasPrefix(trimmed, "}") && trimmed != "}" && trimmed != "};":
			res.Skips = append(res.Skips, Skip{
				Pass:   p.Name(),
				Line:   len(out) + 1,
				Reason: "closing brace shares a line with code",
			})
			out = append(out, line)
		case strings.HasSuffix(trimmed, "{"):
			cut := strings.LastIndexByte(masked, '{')
			head := strings.TrimRight(line[:cut], " \t")
			tail := strings.TrimRight(line[cut:], " \t")
			out = append(out, head, leadingWhitespace(line)+tail)
			res.Applied++
		default:
			out = append(out, line)
		}
	}

	return out
}

// insertBlanks adds a blank line after bare declarations and after lines
// consisting solely of an opening brace, except when the block is empty.
func (p *newlinePass) insertBlanks(in []string, res *Result) []string {
	sc := &lineScanner{}
	out := make([]string, 0, len(in))

	for i, line := range in {
		masked, inComment := sc.mask(line)
		out = append(out, line)
		if inComment {
			continue
		}
		if i+1 >= len(in) || strings.TrimSpace(in[i+1]) == "" {
			continue
		}

		trimmed := strings.TrimSpace(masked)
		if trimmed == "{" {
			if !strings.HasPrefix(strings.TrimSpace(in[i+1]), "}") {
				out = append(out, "")
				res.Applied++
			}
			continue
		}

		if bareDeclRe.MatchString(trimmed) && !controlKeywords[firstField(trimmed)] {
			out = append(out, "")
			res.Applied++
		}
	}

	return out
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func firstField(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
