package engine

import (
	"testing"

	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

func TestApplyKey(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		key         KeyEvent
		multiline   bool
		want        string
		wantChanged bool
	}{
		{"printable appends", "ab", KeyEvent{Key: "c"}, false, "abc", true},
		{"space appends", "ab", KeyEvent{Key: " "}, false, "ab ", true},
		{"unicode appends", "", KeyEvent{Key: "é"}, false, "é", true},
		{"backspace erases", "abc", KeyEvent{Key: KeyBackspace}, false, "ab", true},
		{"backspace erases a whole rune", "aé", KeyEvent{Key: KeyBackspace}, false, "a", true},
		{"backspace on empty", "", KeyEvent{Key: KeyBackspace}, false, "", false},
		{"enter single line", "a", KeyEvent{Key: KeyEnter}, false, "a", false},
		{"enter multiline", "a", KeyEvent{Key: KeyEnter}, true, "a\n", true},
		{"named key ignored", "a", KeyEvent{Key: "up"}, false, "a", false},
		{"alt chord ignored", "a", KeyEvent{Key: "b", Alt: true}, false, "a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := applyKey(tt.text, tt.key, tt.multiline)
			if got != tt.want || changed != tt.wantChanged {
				t.Errorf("applyKey(%q, %q) = (%q, %v), want (%q, %v)",
					tt.text, tt.key.Key, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

// inputRoot renders one input per name, side by side, each one cell wide
// per character of width.
func inputRoot(width int, multiline bool, names ...string) (RenderFunc, map[string]focus.Key) {
	keys := make(map[string]focus.Key)
	return func(ctx *Context) slot.Text {
		var b slot.Builder
		for _, name := range names {
			name := name
			sym := ctx.MustChild(func(ctx *Context) slot.Text {
				k := ctx.FocusKey(name)
				keys[name] = k
				text := ctx.RegisterInput(k, InputOptions{
					Multiline: multiline,
					OnKey:     func(KeyEvent) { ctx.Invalidate() },
				})
				return slot.Literal(text)
			})
			b.Slot(sym, width)
		}
		return b.Text()
	}, keys
}

func typeKeys(e *Engine, q *queue, keys ...string) {
	for _, k := range keys {
		e.HandleKey(KeyEvent{Key: k})
		q.drain()
	}
}

func TestRegisterInput_Accumulates(t *testing.T) {
	root, keys := inputRoot(4, false, "K")
	e, target, q := mount(t, 4, 1, root)

	typeKeys(e, q, "h", "i", KeyBackspace, "!")

	if got := e.Focus().Text(keys["K"]); got != "h!" {
		t.Errorf("buffered text = %q, want %q", got, "h!")
	}
	if target.last() != "h!  " {
		t.Errorf("frame = %q, want %q", target.last(), "h!  ")
	}
}

func TestRegisterInput_OnlyActiveReceives(t *testing.T) {
	root, keys := inputRoot(3, false, "a", "b")
	e, target, q := mount(t, 6, 1, root)

	if e.Focus().Active() != keys["a"] {
		t.Fatalf("first registered input should be focused")
	}

	typeKeys(e, q, "x")
	e.GiveFocusTo(keys["b"])
	typeKeys(e, q, "y", "z")

	if got := e.Focus().Text(keys["a"]); got != "x" {
		t.Errorf("a = %q, want %q", got, "x")
	}
	if got := e.Focus().Text(keys["b"]); got != "yz" {
		t.Errorf("b = %q, want %q", got, "yz")
	}
	if target.last() != "x  yz " {
		t.Errorf("frame = %q, want %q", target.last(), "x  yz ")
	}
}

func TestRegisterInput_Multiline(t *testing.T) {
	root, keys := inputRoot(2, true, "notes")
	e, target, q := mount(t, 2, 2, root)

	// A single run of 2 cells in a 2-wide parent is one row; the grid's
	// second row stays blank.
	typeKeys(e, q, "a", KeyEnter, "b")

	if got := e.Focus().Text(keys["notes"]); got != "a\nb" {
		t.Errorf("text = %q, want %q", got, "a\nb")
	}
	if target.last() != "a \n  " {
		t.Errorf("frame = %q, want %q", target.last(), "a \n  ")
	}
}

func TestRegisterInput_OnKeySeesUpdatedBuffer(t *testing.T) {
	var seen []string
	root := func(ctx *Context) slot.Text {
		k := ctx.FocusKey("k")
		ctx.RegisterInput(k, InputOptions{OnKey: func(ev KeyEvent) {
			seen = append(seen, ev.Key+"="+ctx.Text(k))
		}})
		return slot.Literal("")
	}

	e, _, _ := mount(t, 1, 1, root)
	e.HandleKey(KeyEvent{Key: "q"})
	e.HandleKey(KeyEvent{Key: "up"})

	want := []string{"q=q", "up=q"}
	if len(seen) != len(want) || seen[0] != want[0] || seen[1] != want[1] {
		t.Errorf("OnKey saw %v, want %v", seen, want)
	}
}

func TestRegisterInput_SurvivesRebuild(t *testing.T) {
	captured := ""
	var saved *Context
	root := func(ctx *Context) slot.Text {
		saved = ctx
		k := ctx.FocusKey("field")
		text := ctx.RegisterInput(k, InputOptions{})
		ctx.OnBeforeUpdate(func() { captured = ctx.Text(k) })
		return slot.Literal(text)
	}

	e, target, q := mount(t, 5, 1, root)
	e.HandleKey(KeyEvent{Key: "o"})
	e.HandleKey(KeyEvent{Key: "k"})

	saved.Invalidate()
	q.drain()

	if captured != "ok" {
		t.Errorf("BeforeUpdate captured %q, want %q", captured, "ok")
	}
	if target.last() != "ok   " {
		t.Errorf("frame after rebuild = %q, want %q", target.last(), "ok   ")
	}
}
