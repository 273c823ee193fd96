package grid

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// EscapeHTML converts the characters that are markup in HTML into entities.
// It is not idempotent: callers escape a frame exactly once.
func EscapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// EscapeTerminal replaces control characters with '?' so that cell content
// cannot move the cursor or start an escape sequence. The result has the
// same number of runes as s.
func EscapeTerminal(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			buf.WriteByte('?')
			continue
		}
		buf.WriteRune(r)
	}

	return buf.String()
}

// Clamp truncates a presented row to width terminal columns. Rows made of
// wide runes occupy more columns than cells and would otherwise spill past
// the frame.
func Clamp(row string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(row) <= width {
		return row
	}
	return ansi.Truncate(row, width, "")
}
