package engine

import (
	"testing"

	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// focusRoot registers one focus target per name and records every focus
// callback as name:active.
func focusRoot(log *[]string, names ...string) RenderFunc {
	return func(ctx *Context) slot.Text {
		var b slot.Builder
		for _, name := range names {
			name := name
			sym := ctx.MustChild(func(ctx *Context) slot.Text {
				ctx.RegisterFocus(ctx.FocusKey(name), func(active focus.Key) {
					*log = append(*log, name+":"+ctx.FocusName(active))
				})
				return slot.Literal(name)
			})
			b.Slot(sym, 1)
		}
		return b.Text()
	}
}

func TestRegisterFocus_FirstRegistrantActive(t *testing.T) {
	var log []string
	e, _, _ := mount(t, 3, 1, focusRoot(&log, "A", "B", "C"))

	want := []string{"A:A", "B:A", "C:A"}
	if len(log) != 3 || log[0] != want[0] || log[1] != want[1] || log[2] != want[2] {
		t.Errorf("initial callbacks = %v, want %v", log, want)
	}
	if got := e.Focus().Name(e.Focus().Active()); got != "A" {
		t.Errorf("active = %q, want A", got)
	}
}

func TestAdvanceFocus_Cycles(t *testing.T) {
	var log []string
	e, _, _ := mount(t, 3, 1, focusRoot(&log, "A", "B", "C"))
	f := e.Focus()
	f.Activate(focus.None)

	for _, want := range []string{"A", "B", "C", "A"} {
		e.AdvanceFocus()
		if got := f.Name(f.Active()); got != want {
			t.Errorf("AdvanceFocus -> %q, want %q", got, want)
		}
	}
}

func TestAdvanceFocus_Broadcasts(t *testing.T) {
	var log []string
	e, _, q := mount(t, 3, 1, focusRoot(&log, "A", "B", "C"))
	log = nil

	e.AdvanceFocus()

	want := []string{"A:B", "B:B", "C:B"}
	if len(log) != 3 || log[0] != want[0] || log[1] != want[1] || log[2] != want[2] {
		t.Errorf("focus change callbacks = %v, want %v", log, want)
	}
	if len(q.fns) != 0 {
		t.Errorf("focus change should not schedule a tick, %d queued", len(q.fns))
	}
}

func TestRetreatFocus(t *testing.T) {
	var log []string
	e, _, _ := mount(t, 3, 1, focusRoot(&log, "A", "B", "C"))

	e.RetreatFocus()
	if got := e.Focus().Name(e.Focus().Active()); got != "C" {
		t.Errorf("RetreatFocus from A = %q, want C", got)
	}
}

func TestGiveFocusTo(t *testing.T) {
	var log []string
	var saved *Context
	root := func(ctx *Context) slot.Text {
		saved = ctx
		return focusRoot(&log, "A", "B")(ctx)
	}
	e, _, _ := mount(t, 2, 1, root)
	log = nil

	saved.GiveFocusTo(saved.FocusKey("A"))
	if len(log) != 0 {
		t.Errorf("focusing the active key broadcast %v", log)
	}

	saved.GiveFocusTo(saved.FocusKey("B"))
	if len(log) != 2 {
		t.Errorf("GiveFocusTo broadcast %d callbacks, want 2", len(log))
	}
	if saved.ActiveFocus() != e.Focus().Intern("B") {
		t.Errorf("active focus = %q, want B", saved.FocusName(saved.ActiveFocus()))
	}
}

func TestFocusRegistry_SurvivesRootReplacement(t *testing.T) {
	var log []string
	e, _, q := mount(t, 2, 1, focusRoot(&log, "A", "B"))
	e.AdvanceFocus()

	e.SetRoot(focusRoot(&log, "A", "B"))
	q.drain()

	if got := e.Focus().Name(e.Focus().Active()); got != "B" {
		t.Errorf("active after SetRoot = %q, want B", got)
	}
}

func TestWithFocusRegistry(t *testing.T) {
	shared := focus.NewRegistry()
	k := shared.Intern("pre")
	shared.Register(k)
	shared.SetText(k, "kept")

	root := func(ctx *Context) slot.Text {
		return slot.Literal(ctx.Text(ctx.FocusKey("pre")))
	}
	_, target, _ := mount(t, 4, 1, root, WithFocusRegistry(shared))

	if target.last() != "kept" {
		t.Errorf("frame = %q, want %q", target.last(), "kept")
	}
}

func TestRegisterFocus_ReactivatesAfterFocusCleared(t *testing.T) {
	var seen []string
	var saved *Context
	root := func(ctx *Context) slot.Text {
		saved = ctx
		ctx.RegisterFocus(ctx.FocusKey("a"), func(active focus.Key) {
			seen = append(seen, ctx.FocusName(active))
		})
		return slot.Literal("a")
	}
	e, _, q := mount(t, 1, 1, root)

	e.GiveFocusTo(focus.None)
	saved.Invalidate()
	q.drain()

	if got := e.Focus().Name(e.Focus().Active()); got != "a" {
		t.Errorf("active after re-registration = %q, want a", got)
	}
	if len(seen) == 0 || seen[len(seen)-1] != "a" {
		t.Errorf("callbacks saw %q, want the last one to be a", seen)
	}
}
