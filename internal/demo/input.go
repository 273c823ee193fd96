package demo

import (
	"strings"

	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

const cursor = '_'

// Input is a labelled text field bound to the focus key name. The focused
// field is marked with '>' and shows a cursor.
func Input(label, name string, multiline bool) engine.RenderFunc {
	return func(ctx *engine.Context) slot.Text {
		k := ctx.FocusKey(name)

		rendering := true
		focused := false
		ctx.RegisterFocus(k, func(active focus.Key) {
			was := focused
			focused = active == k
			if !rendering && was != focused {
				ctx.Invalidate()
			}
		})
		text := ctx.RegisterInput(k, engine.InputOptions{
			Multiline: multiline,
			OnKey:     func(engine.KeyEvent) { ctx.Invalidate() },
		})
		rendering = false

		prefix := "  " + label + ": "
		if focused {
			prefix = "> " + label + ": "
		}
		if focused {
			text += string(cursor)
		}

		if !multiline {
			return slot.Literal(prefix + tail(text, ctx.Width()-runeLen(prefix)))
		}
		return slot.Literal(prefix + "\n" + tailLines(text, ctx.Width(), ctx.Height()-1))
	}
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// tailLines keeps the last height lines of s, each cut to its last width
// runes.
func tailLines(s string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for i, line := range lines {
		lines[i] = tail(line, width)
	}
	return strings.Join(lines, "\n")
}

func runeLen(s string) int {
	return len([]rune(s))
}

// pad cuts or pads s with blanks to exactly n runes.
func pad(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	return s + strings.Repeat(" ", n-len(r))
}

// center places s in the middle of n blanks.
func center(s string, n int) string {
	r := []rune(s)
	if len(r) >= n {
		return string(r[:n])
	}
	left := (n - len(r)) / 2
	return pad(strings.Repeat(" ", left)+s, n)
}
