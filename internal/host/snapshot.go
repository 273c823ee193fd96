package host

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/grid"
)

// Format is a snapshot output format.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatYAML Format = "yaml"
)

// ErrNotRegularFile is returned when a snapshot path names something other
// than a regular file.
var ErrNotRegularFile = errors.New("snapshot path is not a regular file")

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown snapshot format %q (want text, html or yaml)", s)
	}
}

// Snapshot is a headless target with a fixed grid size. It keeps the last
// presented frame.
type Snapshot struct {
	width  int
	height int
	format Format
	path   string

	frame  string
	frames int
}

// NewSnapshot creates a snapshot target. path may be empty when the result
// is only read back with Frame or Render.
func NewSnapshot(width, height int, format Format, path string) (*Snapshot, error) {
	if path != "" {
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.Mode().IsRegular():
			return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
		case err != nil && !os.IsNotExist(err):
			return nil, fmt.Errorf("stat snapshot path: %w", err)
		}
	}
	return &Snapshot{width: width, height: height, format: format, path: path}, nil
}

// Measure implements engine.Target.
func (s *Snapshot) Measure() (engine.Metrics, error) {
	return engine.Metrics{
		PixelWidth:  s.width,
		PixelHeight: s.height,
		CellWidth:   1,
		CellHeight:  1,
	}, nil
}

// Present implements engine.Target.
func (s *Snapshot) Present(frame string) error {
	s.frame = frame
	s.frames++
	return nil
}

// Escape implements engine.Target.
func (s *Snapshot) Escape(str string) string {
	if s.format == FormatHTML {
		return grid.EscapeHTML(str)
	}
	return grid.EscapeTerminal(str)
}

// Populated reports whether the output file already has content.
func (s *Snapshot) Populated() bool {
	if s.path == "" {
		return false
	}
	info, err := os.Stat(s.path)
	return err == nil && info.Size() > 0
}

// Frame returns the last presented frame.
func (s *Snapshot) Frame() string {
	return s.frame
}

// Frames returns how many frames were presented.
func (s *Snapshot) Frames() int {
	return s.frames
}

type yamlSnapshot struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Rows   []string `yaml:"rows"`
}

// Render encodes the last frame in the snapshot's format.
func (s *Snapshot) Render() ([]byte, error) {
	switch s.format {
	case FormatHTML:
		var buf bytes.Buffer
		fmt.Fprintf(&buf, "<pre class=\"cellgrid\" data-width=\"%d\" data-height=\"%d\">\n", s.width, s.height)
		buf.WriteString(s.frame)
		buf.WriteString("\n</pre>\n")
		return buf.Bytes(), nil
	case FormatYAML:
		out, err := yaml.Marshal(yamlSnapshot{
			Width:  s.width,
			Height: s.height,
			Rows:   strings.Split(s.frame, "\n"),
		})
		if err != nil {
			return nil, fmt.Errorf("encode snapshot: %w", err)
		}
		return out, nil
	default:
		return []byte(s.frame + "\n"), nil
	}
}

// Save writes the rendered snapshot to its path.
func (s *Snapshot) Save() error {
	if s.path == "" {
		return errors.New("snapshot has no output path")
	}
	out, err := s.Render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, out, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Queue is a Scheduler that holds callbacks until Drain runs them.
type Queue struct {
	fns []func()
}

// Schedule implements engine.Scheduler.
func (q *Queue) Schedule(fn func()) {
	q.fns = append(q.fns, fn)
}

// Len returns the number of waiting callbacks.
func (q *Queue) Len() int {
	return len(q.fns)
}

// Drain runs callbacks until the queue is empty, including ones scheduled
// while draining. It stops after limit rounds when limit > 0 and returns
// the number of callbacks run.
func (q *Queue) Drain(limit int) int {
	ran := 0
	for round := 0; len(q.fns) > 0; round++ {
		if limit > 0 && round >= limit {
			break
		}
		fns := q.fns
		q.fns = nil
		for _, fn := range fns {
			fn()
			ran++
		}
	}
	return ran
}

// Capture mounts root on snap, settles it, then feeds keys one at a time,
// settling after each. It stops early when a key matches the quit binding.
func Capture(snap *Snapshot, root engine.RenderFunc, km KeyMap, keys []engine.KeyEvent, opts ...engine.Option) (*engine.Engine, error) {
	q := &Queue{}
	eng, err := engine.Mount(snap, q, root, opts...)
	if err != nil {
		return nil, err
	}
	if err := settle(eng, q); err != nil {
		return eng, err
	}

	for _, ev := range keys {
		if Dispatch(eng, km, ev) {
			break
		}
		if err := settle(eng, q); err != nil {
			return eng, err
		}
	}
	return eng, nil
}

const maxSettleRounds = 64

func settle(eng *engine.Engine, q *Queue) error {
	q.Drain(maxSettleRounds)
	if q.Len() > 0 {
		return fmt.Errorf("frame did not settle after %d rounds", maxSettleRounds)
	}
	return eng.Err()
}
