package rules

import (
	"regexp"
	"strings"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// controlKeywords are statement keywords that rule a line out as a
// declaration even when it otherwise looks like one.
var controlKeywords = map[string]bool{
	"if":       true,
	"else":     true,
	"for":      true,
	"while":    true,
	"do":       true,
	"switch":   true,
	"case":     true,
	"default":  true,
	"return":   true,
	"goto":     true,
	"break":    true,
	"continue": true,
	"sizeof":   true,
	"typedef":  true,
}

// declSplitPass rewrites a single-line declaration with an initialiser into a
// bare declaration followed by a plain assignment at the same indentation.
// Anything it cannot prove safe is left byte-for-byte alone; declaration
// shaped lines among those are recorded as skips.
type declSplitPass struct{}

func (p *declSplitPass) Name() string { return "decl-split" }

func (p *declSplitPass) Apply(buf *SourceBuffer) Result {
	res := Result{Pass: p.Name()}
	sc := &lineScanner{}
	in := buf.Lines()
	out := make([]string, 0, len(in))

	for _, line := range in {
		masked, inComment := sc.mask(line)
		if inComment {
			out = append(out, line)
			continue
		}

		decl, assign, skip := splitDeclaration(line, masked)
		switch {
		case skip != "":
			res.Skips = append(res.Skips, Skip{Pass: p.Name(), Line: len(out) + 1, Reason: skip})
			out = append(out, line)
		case decl != "":
			out = append(out, decl, assign)
			res.Applied++
		default:
			out = append(out, line)
		}
	}

	buf.SetLines(out)
	return res
}

// splitDeclaration classifies one line. It returns the two replacement lines
// for a safe split, a skip reason for declaration-shaped lines that cannot be
// split, or zero values for lines the pass does not own.
func splitDeclaration(line, masked string) (decl, assign, skip string) {
	trimmed := strings.TrimRight(masked, " \t")
	if !strings.HasSuffix(trimmed, ";") {
		return "", "", ""
	}
	semi := len(trimmed) - 1
	if strings.TrimSpace(line[semi+1:]) != "" {
		// a trailing comment or second statement would be lost in the split
		return "", "", ""
	}

	eq := assignIndex(masked[:semi])
	if eq < 0 {
		return "", "", ""
	}

	lhs := strings.TrimSpace(masked[:eq])
	if strings.ContainsAny(lhs, "(){}") {
		return "", "", ""
	}

	fields := strings.Fields(lhs)
	if len(fields) < 2 {
		return "", "", ""
	}
	if controlKeywords[fields[0]] {
		return "", "", ""
	}

	// Declaration shaped from here on: skips are observable.
	if strings.Contains(lhs, ",") {
		return "", "", "multiple declarators in one statement"
	}
	if strings.ContainsAny(lhs, "[]") {
		return "", "", "array declarator"
	}
	if strings.Contains(lhs, "*") {
		return "", "", "pointer declarator"
	}
	for _, f := range fields {
		if !identRe.MatchString(f) {
			return "", "", "unsupported declarator"
		}
	}

	value := strings.TrimSpace(line[eq+1 : semi])
	if value == "" {
		return "", "", "no initialiser expression"
	}
	if strings.HasPrefix(value, "{") {
		return "", "", "braced initialiser"
	}
	if topLevelComma(masked[eq+1 : semi]) {
		return "", "", "multiple declarators in one statement"
	}

	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	name := fields[len(fields)-1]
	declaration := strings.TrimSpace(line[:eq])
	return indent + declaration + ";", indent + name + " = " + value + ";", ""
}

// topLevelComma reports whether s contains a comma outside any bracket
// nesting. Such a comma separates declarators, not call arguments.
func topLevelComma(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// assignIndex returns the index of the first plain assignment '=' in s, or
// -1. Compound assignment and comparison operators do not count.
func assignIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++
			continue
		}
		if i > 0 && strings.ContainsRune("+-*/%&|^<>!=", rune(s[i-1])) {
			continue
		}
		return i
	}
	return -1
}
