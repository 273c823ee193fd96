// Package engine composes a tree of text components into one character grid.
//
// Application code supplies RenderFuncs. Each one is evaluated with a
// Context bound to its node and returns a slot.Text: literal characters
// plus placeholder runs that reserve rectangular regions for children the
// function registered with Context.RegisterChild. The engine measures each
// child from the shape of its runs, renders it at that size, and on every
// tick collapses the tree by substituting child cells back into their
// parents.
//
// Nodes are cached across ticks. A node re-evaluates only after
// Context.Invalidate marks it dirty; clean ancestors keep their text and
// simply walk into their children, so invalidating a leaf re-runs just that
// leaf.
//
// All engine operations run on a single loop supplied by the host: ticks
// come from the Scheduler, keys from HandleKey. Nothing here is safe for
// concurrent use.
//
// Usage:
//
//	eng, err := engine.Mount(target, scheduler, func(ctx *engine.Context) slot.Text {
//	    var b slot.Builder
//	    b.Lit("> ").Slot(ctx.MustChild(input), ctx.Width()-2)
//	    return b.Text()
//	})
//
//	// later, from the host loop
//	eng.HandleKey(engine.KeyEvent{Key: "h"})
package engine
