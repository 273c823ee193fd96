package engine

import "github.com/ShayCichocki/cellgrid/internal/slot"

// RenderFunc produces a component's text. It runs synchronously and must
// register every child before returning.
type RenderFunc func(ctx *Context) slot.Text

// Node is one evaluated component in the tree. A node is owned by its
// parent; the root is owned by the Engine.
type Node struct {
	render RenderFunc
	text   slot.Text
	width  int
	height int
	dirty  bool

	alloc    slot.Allocator
	pending  []childReg
	order    []slot.Symbol
	children map[slot.Symbol]*Node

	hooks hooks
}

type childReg struct {
	sym    slot.Symbol
	render RenderFunc
}

// placement is what a parent knows about a child before rendering it.
type placement struct {
	render RenderFunc
	width  int
	height int
}

func newNode(s placement) *Node {
	return &Node{
		render:   s.render,
		width:    s.width,
		height:   s.height,
		children: make(map[slot.Symbol]*Node),
	}
}

// Text returns the node's last output, placeholders included.
func (n *Node) Text() slot.Text { return n.text }

// Width returns the number of columns the node fills.
func (n *Node) Width() int { return n.width }

// Height returns the number of rows the node fills.
func (n *Node) Height() int { return n.height }

// Dirty reports whether the node will re-evaluate on the next tick.
func (n *Node) Dirty() bool { return n.dirty }

// Symbols returns the node's placeholders in discovery order.
func (n *Node) Symbols() []slot.Symbol {
	out := make([]slot.Symbol, len(n.order))
	copy(out, n.order)
	return out
}

// Child returns the child registered under sym.
func (n *Node) Child(sym slot.Symbol) *Node {
	return n.children[sym]
}

// Children returns the children in discovery order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, sym := range n.order {
		out = append(out, n.children[sym])
	}
	return out
}
