package engine

import (
	"fmt"
	"strings"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
	"github.com/ShayCichocki/cellgrid/internal/focus"
	"github.com/ShayCichocki/cellgrid/internal/grid"
)

// Metrics describes a mount target: its size in pixels and the size of
// one character cell. Terminal hosts report cells as 1x1 pixels.
type Metrics struct {
	PixelWidth  int
	PixelHeight int
	CellWidth   int
	CellHeight  int
}

// Grid returns the number of whole cells that fit the target.
func (m Metrics) Grid() (width, height int, err error) {
	if m.CellWidth <= 0 || m.CellHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: cell size %dx%d", ErrBadMetrics, m.CellWidth, m.CellHeight)
	}
	width = m.PixelWidth / m.CellWidth
	height = m.PixelHeight / m.CellHeight
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: grid %dx%d", ErrBadMetrics, width, height)
	}
	return width, height, nil
}

// Target is where frames are presented.
type Target interface {
	// Measure reports the target's current size.
	Measure() (Metrics, error)
	// Present shows one frame: escaped rows joined by newlines.
	Present(grid string) error
	// Escape neutralizes characters special to the target's medium.
	Escape(s string) string
}

// Populated is implemented by targets that can already hold content.
type Populated interface {
	Populated() bool
}

// Scheduler runs callbacks at the host's next paint opportunity, on the
// engine's loop.
type Scheduler interface {
	Schedule(fn func())
}

// Frame is one presented grid.
type Frame struct {
	Seq    int
	Width  int
	Height int
	Grid   string
	Stats  TickStats
}

// Option configures an Engine.
type Option func(*Engine)

// WithFrameObserver calls fn after every presented frame.
func WithFrameObserver(fn func(Frame)) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// WithErrorHandler calls fn when a scheduled tick fails.
func WithErrorHandler(fn func(error)) Option {
	return func(e *Engine) {
		e.onError = fn
	}
}

// WithFocusRegistry makes the engine use r instead of a fresh registry.
func WithFocusRegistry(r *focus.Registry) Option {
	return func(e *Engine) {
		e.focus = r
	}
}

// Engine owns the component tree, the focus registry and the tick state.
type Engine struct {
	target Target
	sched  Scheduler
	focus  *focus.Registry

	root   RenderFunc
	tree   *Node
	width  int
	height int

	pending bool
	seq     int
	stats   TickStats
	err     error

	observers []func(Frame)
	onError   func(error)
}

// Mount validates target, measures it and installs root. The first tick is
// scheduled immediately; SetRoot replaces the root later.
func Mount(target Target, sched Scheduler, root RenderFunc, opts ...Option) (*Engine, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}
	if p, ok := target.(Populated); ok && p.Populated() {
		return nil, ErrTargetPopulated
	}

	m, err := target.Measure()
	if err != nil {
		return nil, fmt.Errorf("measure target: %w", err)
	}
	width, height, err := m.Grid()
	if err != nil {
		return nil, err
	}

	e := &Engine{
		target: target,
		sched:  sched,
		width:  width,
		height: height,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.focus == nil {
		e.focus = focus.NewRegistry()
	}

	e.logf("mount: grid %dx%d", width, height)
	if root != nil {
		e.SetRoot(root)
	}
	return e, nil
}

// SetRoot installs or replaces the root render function. The cached tree is
// dropped and a tick is scheduled.
func (e *Engine) SetRoot(root RenderFunc) {
	e.root = root
	e.tree = nil
	e.schedule()
}

// Resize applies new target metrics. The cached tree is dropped so the
// next tick rebuilds everything at the new size.
func (e *Engine) Resize(m Metrics) error {
	width, height, err := m.Grid()
	if err != nil {
		return err
	}
	e.logf("resize: %dx%d -> %dx%d", e.width, e.height, width, height)
	e.width, e.height = width, height
	e.tree = nil
	e.schedule()
	return nil
}

// Size returns the grid size in cells.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Focus returns the engine's focus registry.
func (e *Engine) Focus() *focus.Registry {
	return e.focus
}

// Tree returns the cached root node, or nil before the first tick.
func (e *Engine) Tree() *Node {
	return e.tree
}

// Stats returns the counts from the most recent tick.
func (e *Engine) Stats() TickStats {
	return e.stats
}

// Err returns the error of the most recent failed scheduled tick.
func (e *Engine) Err() error {
	return e.err
}

// Pending reports whether a tick is scheduled.
func (e *Engine) Pending() bool {
	return e.pending
}

// schedule requests a tick unless one is already pending.
func (e *Engine) schedule() {
	if e.pending {
		return
	}
	e.pending = true
	e.sched.Schedule(e.tick)
}

func (e *Engine) tick() {
	if err := e.Flush(); err != nil {
		e.err = err
		e.logf("tick failed: %v", err)
		if e.onError != nil {
			e.onError(err)
		}
	}
}

// Flush renders and presents a frame now.
func (e *Engine) Flush() error {
	e.pending = false
	if e.root == nil {
		return ErrNoRoot
	}

	var stats TickStats
	tree, err := e.build(&stats)
	if err != nil {
		e.tree = nil
		return err
	}
	e.tree = tree
	e.stats = stats

	rows := grid.Rows(collapse(tree), e.width)
	for i, row := range rows {
		rows[i] = e.target.Escape(row)
	}
	frame := strings.Join(rows, "\n")

	e.seq++
	e.logf("tick %d: evaluated=%d reused=%d", e.seq, stats.Evaluated, stats.Reused)
	if err := e.target.Present(frame); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}

	f := Frame{Seq: e.seq, Width: e.width, Height: e.height, Grid: frame, Stats: stats}
	for _, fn := range e.observers {
		fn(f)
	}
	return nil
}

// build reconciles the cached tree against the root, turning panics in
// render functions into errors.
func (e *Engine) build(stats *TickStats) (tree *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("render panic: %w", rerr)
			} else {
				err = fmt.Errorf("render panic: %v", r)
			}
		}
	}()
	return e.render(placement{render: e.root, width: e.width, height: e.height}, e.tree, stats)
}

// Broadcast delivers ev to every node of the cached tree, pre-order.
func (e *Engine) Broadcast(ev Event) {
	broadcast(e.tree, ev)
}

// HandleKey broadcasts a key event to the tree.
func (e *Engine) HandleKey(ev KeyEvent) {
	broadcast(e.tree, KeyDown{KeyEvent: ev})
}

// GiveFocusTo activates k. The change is broadcast at once rather than on
// the next tick.
func (e *Engine) GiveFocusTo(k focus.Key) {
	if !e.focus.Activate(k) {
		return
	}
	e.focusChanged()
}

// AdvanceFocus activates the next registered focus key, wrapping around.
func (e *Engine) AdvanceFocus() {
	e.focus.Advance()
	e.focusChanged()
}

// RetreatFocus activates the previous registered focus key, wrapping
// around.
func (e *Engine) RetreatFocus() {
	e.focus.Retreat()
	e.focusChanged()
}

func (e *Engine) focusChanged() {
	active := e.focus.Active()
	e.logf("focus: active %q", e.focus.Name(active))
	broadcast(e.tree, FocusChange{Active: active})
}

func (e *Engine) logf(format string, args ...interface{}) {
	debuglog.Printf("engine: "+format, args...)
}
