package rules

// lineScanner produces a code-only view of each line for pattern matching,
// tracking block-comment state across lines. Comment bodies, string literals
// and character literals are blanked with spaces, so column positions in the
// masked line match the original.
type lineScanner struct {
	inComment bool
}

// mask blanks the non-code spans of line and reports whether the line began
// inside a block comment. It must be called once per line, in order, so the
// comment state stays correct.
func (s *lineScanner) mask(line string) (masked string, startedInComment bool) {
	startedInComment = s.inComment
	out := []byte(line)
	n := len(line)
	i := 0

	for i < n {
		if s.inComment {
			if i+1 < n && line[i] == '*' && line[i+1] == '/' {
				out[i], out[i+1] = ' ', ' '
				s.inComment = false
				i += 2
				continue
			}
			out[i] = ' '
			i++
			continue
		}

		switch {
		case i+1 < n && line[i] == '/' && line[i+1] == '*':
			out[i], out[i+1] = ' ', ' '
			s.inComment = true
			i += 2
		case i+1 < n && line[i] == '/' && line[i+1] == '/':
			for ; i < n; i++ {
				out[i] = ' '
			}
		case line[i] == '"' || line[i] == '\'':
			// C literals cannot span lines, so an unterminated one
			// is masked to the end of the line only.
			quote := line[i]
			out[i] = ' '
			i++
			for i < n {
				if line[i] == '\\' && i+1 < n {
					out[i], out[i+1] = ' ', ' '
					i += 2
					continue
				}
				closed := line[i] == quote
				out[i] = ' '
				i++
				if closed {
					break
				}
			}
		default:
			i++
		}
	}

	return string(out), startedInComment
}
