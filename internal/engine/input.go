package engine

import (
	"unicode/utf8"

	"github.com/ShayCichocki/cellgrid/internal/focus"
)

// InputOptions configures RegisterInput.
type InputOptions struct {
	// Multiline lets enter append a line break.
	Multiline bool

	// OnKey runs after the buffer has been updated, for every key event
	// received while the input is focused. Components usually call
	// Invalidate here.
	OnKey func(KeyEvent)
}

// RegisterInput turns this node into a text input bound to k. While k is
// the active focus, printable keys append to k's buffer, backspace removes
// the last character and enter appends a newline in multiline mode. The
// buffer lives in the focus registry and survives rebuilds. Returns the
// current text.
func (c *Context) RegisterInput(k focus.Key, opts InputOptions) string {
	f := c.engine.focus
	f.Register(k)

	c.OnKeyDown(func(ev KeyEvent) {
		if f.Active() != k {
			return
		}
		if text, changed := applyKey(f.Text(k), ev, opts.Multiline); changed {
			f.SetText(k, text)
		}
		if opts.OnKey != nil {
			opts.OnKey(ev)
		}
	})

	return f.Text(k)
}

// applyKey returns text after ev and whether it changed.
func applyKey(text string, ev KeyEvent, multiline bool) (string, bool) {
	switch ev.Key {
	case KeyBackspace:
		if text == "" {
			return text, false
		}
		_, size := utf8.DecodeLastRuneInString(text)
		return text[:len(text)-size], true
	case KeyEnter:
		if !multiline {
			return text, false
		}
		return text + "\n", true
	}

	if r, ok := ev.Printable(); ok {
		return text + string(r), true
	}
	return text, false
}
