package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/grid"
)

var errNotMeasured = errors.New("terminal size not known yet")

// TerminalOptions configures a Terminal.
type TerminalOptions struct {
	// FrameInterval is how long a scheduled tick waits for the next frame.
	FrameInterval time.Duration
	// Border draws a rounded border around the grid.
	Border bool
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
	// Keys are the bindings the host handles itself.
	Keys KeyMap
	// Engine options applied at mount.
	Engine []engine.Option

	Input  io.Reader
	Output io.Writer
}

// Terminal hosts an engine in a bubbletea program.
type Terminal struct {
	model   *model
	program *tea.Program
}

// NewTerminal prepares a terminal host for root. The engine is mounted
// once the first window size arrives.
func NewTerminal(ctx context.Context, root engine.RenderFunc, opts TerminalOptions) *Terminal {
	m := newModel(root, opts)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	return &Terminal{
		model:   m,
		program: tea.NewProgram(m, progOpts...),
	}
}

// Run starts the program and blocks until it exits. Cancelling the
// context passed to NewTerminal is a clean exit.
func (t *Terminal) Run() error {
	_, err := t.program.Run()
	if t.model.err != nil {
		return t.model.err
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Do runs fn on the program's loop. It is the only safe way to touch the
// engine from another goroutine. It blocks until the loop accepts fn.
func (t *Terminal) Do(fn func()) {
	t.program.Send(runMsg{fn: fn})
}

type frameMsg struct{}

type runMsg struct {
	fn func()
}

// model is both the engine's Target and its Scheduler.
type model struct {
	root engine.RenderFunc
	opts TerminalOptions
	eng  *engine.Engine

	cols int
	rows int
	view string

	queued           []func()
	frameOutstanding bool
	err              error

	border lipgloss.Style
}

func newModel(root engine.RenderFunc, opts TerminalOptions) *model {
	return &model{
		root: root,
		opts: opts,
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.resized()

	case tea.KeyMsg:
		for _, ev := range KeyEvents(msg) {
			if m.eng == nil {
				if key.Matches(ev, m.opts.Keys.Quit) {
					return m, tea.Quit
				}
				continue
			}
			if Dispatch(m.eng, m.opts.Keys, ev) {
				return m, tea.Quit
			}
		}

	case runMsg:
		if msg.fn != nil {
			msg.fn()
		}

	case frameMsg:
		m.frameOutstanding = false
		fns := m.queued
		m.queued = nil
		for _, fn := range fns {
			fn()
		}
	}

	if m.err != nil {
		return m, tea.Quit
	}
	return m, m.nextFrame()
}

// View implements tea.Model.
func (m *model) View() string {
	return m.view
}

func (m *model) resized() {
	if m.eng == nil {
		opts := append([]engine.Option{engine.WithErrorHandler(m.fail)}, m.opts.Engine...)
		eng, err := engine.Mount(m, m, m.root, opts...)
		if err != nil {
			m.fail(fmt.Errorf("mount: %w", err))
			return
		}
		m.eng = eng
		return
	}

	metrics, _ := m.Measure()
	if err := m.eng.Resize(metrics); err != nil {
		// Too small to draw; keep the last frame until it grows again.
		debuglog.Printf("host: ignoring resize to %dx%d: %v", m.cols, m.rows, err)
	}
}

func (m *model) fail(err error) {
	debuglog.Printf("host: %v", err)
	m.err = err
}

func (m *model) nextFrame() tea.Cmd {
	if len(m.queued) == 0 || m.frameOutstanding {
		return nil
	}
	m.frameOutstanding = true
	if m.opts.FrameInterval <= 0 {
		return func() tea.Msg { return frameMsg{} }
	}
	return tea.Tick(m.opts.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *model) inset() int {
	if m.opts.Border {
		return 2
	}
	return 0
}

// Measure implements engine.Target. Terminal cells are reported as 1x1
// pixels.
func (m *model) Measure() (engine.Metrics, error) {
	if m.cols == 0 && m.rows == 0 {
		return engine.Metrics{}, errNotMeasured
	}
	return engine.Metrics{
		PixelWidth:  m.cols - m.inset(),
		PixelHeight: m.rows - m.inset(),
		CellWidth:   1,
		CellHeight:  1,
	}, nil
}

// Present implements engine.Target.
func (m *model) Present(frame string) error {
	metrics, err := m.Measure()
	if err != nil {
		return err
	}
	width := metrics.PixelWidth
	rows := strings.Split(frame, "\n")
	for i, row := range rows {
		rows[i] = grid.Clamp(row, width)
	}
	out := strings.Join(rows, "\n")
	if m.opts.Border {
		out = m.border.Render(out)
	}
	m.view = out
	return nil
}

// Escape implements engine.Target.
func (m *model) Escape(s string) string {
	return grid.EscapeTerminal(s)
}

// Schedule implements engine.Scheduler. Callbacks run on the next
// frameMsg.
func (m *model) Schedule(fn func()) {
	m.queued = append(m.queued, fn)
}
