package engine

import (
	"fmt"

	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// Context is the capability surface a render function gets for its own
// node. It stays valid after the render function returns, so callbacks may
// keep it; once the node is rebuilt the old Context only affects the
// discarded node.
type Context struct {
	engine *Engine
	node   *Node
}

// Width returns the number of columns this node fills.
func (c *Context) Width() int { return c.node.width }

// Height returns the number of rows this node fills.
func (c *Context) Height() int { return c.node.height }

// RegisterChild allocates a placeholder for a child rendered by fn. It is
// only valid while this node's render function is running.
func (c *Context) RegisterChild(fn RenderFunc) (slot.Symbol, error) {
	if fn == nil {
		return 0, ErrNilRender
	}
	sym, err := c.node.alloc.Allocate()
	if err != nil {
		return 0, fmt.Errorf("register child: %w", err)
	}
	c.node.pending = append(c.node.pending, childReg{sym: sym, render: fn})
	return sym, nil
}

// MustChild is RegisterChild for render functions that cannot return an
// error. It panics on failure; the engine recovers the panic at the tick
// boundary and reports the error.
func (c *Context) MustChild(fn RenderFunc) slot.Symbol {
	sym, err := c.RegisterChild(fn)
	if err != nil {
		panic(err)
	}
	return sym
}

// Invalidate marks this node dirty and schedules a tick. Repeated calls
// before the tick runs coalesce.
func (c *Context) Invalidate() {
	c.node.dirty = true
	c.engine.schedule()
}

// OnBeforeUpdate registers fn to run just before this node is rebuilt.
func (c *Context) OnBeforeUpdate(fn func()) {
	c.node.hooks.beforeUpdate = append(c.node.hooks.beforeUpdate, fn)
}

// OnKeyDown registers fn for every broadcast key event.
func (c *Context) OnKeyDown(fn func(KeyEvent)) {
	c.node.hooks.keyDown = append(c.node.hooks.keyDown, fn)
}

// OnFocusChange registers fn for every focus change.
func (c *Context) OnFocusChange(fn func(focus.Key)) {
	c.node.hooks.focusChange = append(c.node.hooks.focusChange, fn)
}

// FocusKey returns the stable focus key for name.
func (c *Context) FocusKey(name string) focus.Key {
	return c.engine.focus.Intern(name)
}

// FocusName returns the name k was created with.
func (c *Context) FocusName(k focus.Key) string {
	return c.engine.focus.Name(k)
}

// ActiveFocus returns the active focus key, or focus.None.
func (c *Context) ActiveFocus() focus.Key {
	return c.engine.focus.Active()
}

// Text returns the input accumulated for k.
func (c *Context) Text(k focus.Key) string {
	return c.engine.focus.Text(k)
}

// RegisterFocus registers k as a focus target. If nothing is focused yet, k
// becomes active. fn is called once immediately with the active key and
// again on every focus change. Returns k's accumulated text.
func (c *Context) RegisterFocus(k focus.Key, fn func(active focus.Key)) string {
	f := c.engine.focus
	if f.Register(k) {
		c.engine.logf("focus: registered %q", f.Name(k))
	}
	if fn != nil {
		fn(f.Active())
		c.OnFocusChange(fn)
	}
	return f.Text(k)
}

// GiveFocusTo activates k and notifies the tree immediately.
func (c *Context) GiveFocusTo(k focus.Key) {
	c.engine.GiveFocusTo(k)
}

// AdvanceFocus moves focus to the next registered key.
func (c *Context) AdvanceFocus() {
	c.engine.AdvanceFocus()
}
