package engine

import (
	"fmt"

	"github.com/ShayCichocki/cellgrid/internal/grid"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// TickStats counts what one tick did.
type TickStats struct {
	Evaluated int
	Reused    int
}

// render returns the node for s, reusing prev when it is clean.
//
// A clean prev keeps its text and children; the walk still descends so
// dirty descendants are rebuilt in place. A missing or dirty prev is
// replaced by a fresh node whose children are all rendered from scratch,
// each at the size its placeholder runs describe in the fresh text.
func (e *Engine) render(s placement, prev *Node, stats *TickStats) (*Node, error) {
	if prev != nil && !prev.dirty {
		stats.Reused++
		for _, sym := range prev.order {
			child := prev.children[sym]
			next, err := e.render(placement{render: child.render, width: child.width, height: child.height}, child, stats)
			if err != nil {
				return nil, err
			}
			prev.children[sym] = next
		}
		return prev, nil
	}

	if prev != nil {
		trigger(prev, BeforeUpdate{})
	}

	stats.Evaluated++
	n := newNode(s)
	ctx := &Context{engine: e, node: n}
	text := s.render(ctx)
	n.alloc.Seal()
	n.text = text

	for _, sym := range text.Symbols() {
		if !n.alloc.Owns(sym) {
			return nil, fmt.Errorf("%w: %v", ErrUnknownPlaceholder, sym)
		}
	}

	pending := n.pending
	n.pending = nil
	for _, c := range pending {
		w, h, err := slot.Measure(c.sym, n.text, n.width)
		if err != nil {
			return nil, fmt.Errorf("measure child %v: %w", c.sym, err)
		}
		child, err := e.render(placement{render: c.render, width: w, height: h}, nil, stats)
		if err != nil {
			return nil, err
		}
		n.order = append(n.order, c.sym)
		n.children[c.sym] = child
	}

	return n, nil
}

// collapse returns n's finished cells: every child collapsed and
// substituted in discovery order, then fitted to exactly width*height.
func collapse(n *Node) []rune {
	text := n.text
	for _, sym := range n.order {
		text = slot.Substitute(sym, text, collapse(n.children[sym]))
	}
	return grid.Fit(text.Runes(), n.width, n.height)
}
