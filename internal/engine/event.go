package engine

import (
	"unicode"
	"unicode/utf8"

	"github.com/ShayCichocki/cellgrid/internal/focus"
)

// Key names understood by inputs. They match bubbletea's key strings.
const (
	KeyBackspace = "backspace"
	KeyEnter     = "enter"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
)

// KeyEvent is a raw keyboard event. Key is a single character for
// printable keys and a name such as "enter" otherwise.
type KeyEvent struct {
	Key string
	Alt bool
}

func (k KeyEvent) String() string {
	if k.Alt {
		return "alt+" + k.Key
	}
	return k.Key
}

// Printable returns the character typed, if the event is a single
// printable character.
func (k KeyEvent) Printable() (rune, bool) {
	if k.Alt || utf8.RuneCountInString(k.Key) != 1 {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(k.Key)
	if !unicode.IsPrint(r) {
		return 0, false
	}
	return r, true
}

// Event is one of BeforeUpdate, KeyDown or FocusChange.
type Event interface {
	isEvent()
}

// BeforeUpdate fires on a node just before it is discarded and rebuilt.
type BeforeUpdate struct{}

// KeyDown carries a keyboard event to every node.
type KeyDown struct {
	KeyEvent
}

// FocusChange announces the newly active focus key.
type FocusChange struct {
	Active focus.Key
}

func (BeforeUpdate) isEvent() {}
func (KeyDown) isEvent()      {}
func (FocusChange) isEvent()  {}

// hooks holds a node's callbacks per event kind, in registration order.
type hooks struct {
	beforeUpdate []func()
	keyDown      []func(KeyEvent)
	focusChange  []func(focus.Key)
}

func (h *hooks) len() int {
	return len(h.beforeUpdate) + len(h.keyDown) + len(h.focusChange)
}

// trigger runs n's callbacks for ev.
func trigger(n *Node, ev Event) {
	switch ev := ev.(type) {
	case BeforeUpdate:
		for _, fn := range n.hooks.beforeUpdate {
			fn()
		}
	case KeyDown:
		for _, fn := range n.hooks.keyDown {
			fn(ev.KeyEvent)
		}
	case FocusChange:
		for _, fn := range n.hooks.focusChange {
			fn(ev.Active)
		}
	}
}

// broadcast triggers ev on n and then on every descendant, pre-order,
// whether or not they are dirty.
func broadcast(n *Node, ev Event) {
	if n == nil {
		return
	}
	trigger(n, ev)
	for _, sym := range n.order {
		broadcast(n.children[sym], ev)
	}
}
