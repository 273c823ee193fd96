package engine

import (
	"testing"

	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// fakeTarget records presented frames.
type fakeTarget struct {
	metrics    Metrics
	measureErr error
	populated  bool
	escape     func(string) string
	frames     []string
}

func (f *fakeTarget) Measure() (Metrics, error) { return f.metrics, f.measureErr }

func (f *fakeTarget) Present(grid string) error {
	f.frames = append(f.frames, grid)
	return nil
}

func (f *fakeTarget) Escape(s string) string {
	if f.escape != nil {
		return f.escape(s)
	}
	return s
}

func (f *fakeTarget) Populated() bool { return f.populated }

func (f *fakeTarget) last() string {
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[len(f.frames)-1]
}

// queue is a Scheduler that runs callbacks when drained.
type queue struct {
	fns       []func()
	scheduled int
}

func (q *queue) Schedule(fn func()) {
	q.scheduled++
	q.fns = append(q.fns, fn)
}

func (q *queue) drain() {
	for len(q.fns) > 0 {
		fn := q.fns[0]
		q.fns = q.fns[1:]
		fn()
	}
}

func cells(width, height int) Metrics {
	return Metrics{PixelWidth: width, PixelHeight: height, CellWidth: 1, CellHeight: 1}
}

// mount creates an engine over a width x height fake target and runs the
// first tick.
func mount(t *testing.T, width, height int, root RenderFunc, opts ...Option) (*Engine, *fakeTarget, *queue) {
	t.Helper()
	target := &fakeTarget{metrics: cells(width, height)}
	q := &queue{}
	e, err := Mount(target, q, root, opts...)
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	q.drain()
	if err := e.Err(); err != nil {
		t.Fatalf("first tick failed: %v", err)
	}
	return e, target, q
}

func literal(s string) RenderFunc {
	return func(ctx *Context) slot.Text {
		return slot.Literal(s)
	}
}
