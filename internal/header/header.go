// Package header creates and refreshes the bordered 42 school header block
// at the top of C source files.
package header

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/norm42-dev/norm42/internal/identity"
)

// Width is the total column width of every header line.
const Width = 80

// TimeLayout is the timestamp format used in the Created and Updated lines.
const TimeLayout = "2006/01/02 15:04:05"

// blockLines is the number of lines in a header block, borders included.
const blockLines = 11

// BorderLine frames the top and bottom of the block.
var BorderLine = "/* " + strings.Repeat("*", 74) + " */"

// Right-hand art for each decorated line of the block.
const (
	artTop     = ":::      ::::::::   */"
	artFile    = ":+:      :+:    :+:   */"
	artMid     = "+:+ +:+         +:+     */"
	artBy      = "+#+  +:+       +#+        */"
	artWide    = "+#+#+#+#+#+   +#+           */"
	artCreated = "#+#    #+#             */"
	artUpdated = "###   ########.fr       */"
)

const updatedPrefix = "/*   Updated: "

// Action reports what Ensure did to a buffer.
type Action int

const (
	Unchanged Action = iota
	Inserted
	Refreshed
)

// Synthesizer creates and refreshes 42 headers.
type Synthesizer struct {
	// Now is the clock used for header timestamps. Tests override it.
	Now func() time.Time
}

// NewSynthesizer creates a Synthesizer using the wall clock.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{Now: time.Now}
}

// Has reports whether lines begin with a header block.
func Has(lines []string) bool {
	return len(lines) > 0 && lines[0] == BorderLine
}

// Ensure returns lines with a header block present and current. A missing
// block is inserted at the top; an existing block has only its Updated line
// rewritten, every other byte is preserved.
func (s *Synthesizer) Ensure(lines []string, filename string, id identity.Identity) ([]string, Action) {
	if Has(lines) {
		return s.refresh(lines, id)
	}

	content := lines
	for len(content) > 0 && strings.TrimSpace(content[0]) == "" {
		content = content[1:]
	}

	now := s.Now()
	block := s.Render(filepath.Base(filename), id, now, now)
	out := make([]string, 0, len(block)+1+len(content))
	out = append(out, block...)
	out = append(out, "")
	out = append(out, content...)
	return out, Inserted
}

// Render produces the eleven lines of a header block.
func (s *Synthesizer) Render(filename string, id identity.Identity, created, updated time.Time) []string {
	by := fmt.Sprintf("By: %s <%s>", id.Login, id.Email)
	createdLine := fmt.Sprintf("Created: %s by %s", created.Format(TimeLayout), id.Login)
	updatedLine := fmt.Sprintf("Updated: %s by %s", updated.Format(TimeLayout), id.Login)

	return []string{
		BorderLine,
		pad("", "*/"),
		pad("", artTop),
		pad(filename, artFile),
		pad("", artMid),
		pad(by, artBy),
		pad("", artWide),
		pad(createdLine, artCreated),
		pad(updatedLine, artUpdated),
		pad("", "*/"),
		BorderLine,
	}
}

// refresh rewrites the Updated line of an existing block. A block without a
// recognisable Updated line is returned untouched.
func (s *Synthesizer) refresh(lines []string, id identity.Identity) ([]string, Action) {
	updated := pad(
		fmt.Sprintf("Updated: %s by %s", s.Now().Format(TimeLayout), id.Login),
		artUpdated,
	)

	for i := 0; i < len(lines) && i < blockLines; i++ {
		if !strings.HasPrefix(lines[i], updatedPrefix) {
			continue
		}
		if lines[i] == updated {
			return lines, Unchanged
		}
		out := slices.Clone(lines)
		out[i] = updated
		return out, Refreshed
	}

	return lines, Unchanged
}

// pad builds one header line of exactly Width display columns from its
// content and right-hand art. Content that would collide with the art is
// truncated, never reflowed.
func pad(content, art string) string {
	left := "/*"
	if content != "" {
		left += "   " + content
	}

	room := Width - runewidth.StringWidth(art)
	if runewidth.StringWidth(left) > room-1 {
		left = runewidth.Truncate(left, room-1, "")
	}

	return left + strings.Repeat(" ", room-runewidth.StringWidth(left)) + art
}
