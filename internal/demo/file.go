package demo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/slot"
)

// FileView shows the contents of a file and redraws when it changes.
type FileView struct {
	path string

	// Touched only on the engine's loop.
	content    string
	readErr    error
	invalidate func()

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewFileView reads path once. Call Watch to follow changes.
func NewFileView(path string) (*FileView, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	v := &FileView{path: abs, done: make(chan struct{})}
	v.content, v.readErr = readFile(abs)
	return v, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// Render draws the file, or the read error.
func (v *FileView) Render(ctx *engine.Context) slot.Text {
	v.invalidate = ctx.Invalidate
	if v.readErr != nil {
		return slot.Literal("error: " + v.readErr.Error())
	}
	return slot.Literal(v.content)
}

// Watch starts following the file. The parent directory is watched so that
// editors which replace the file on save are seen. Every change is re-read
// on the watcher goroutine and applied through post.
func (v *FileView) Watch(post func(func())) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(v.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(v.path), err)
	}

	v.mu.Lock()
	v.watcher = watcher
	v.mu.Unlock()

	go v.watchFile(watcher, post)
	return nil
}

func (v *FileView) watchFile(watcher *fsnotify.Watcher, post func(func())) {
	for {
		select {
		case <-v.done:
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != v.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			content, err := readFile(v.path)
			debuglog.Printf("file view: %s %s", event.Op, v.path)
			post(func() { v.apply(content, err) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			debuglog.Printf("file view: watcher error: %v", err)
		}
	}
}

// apply installs freshly read content. It runs on the engine's loop.
func (v *FileView) apply(content string, err error) {
	if content == v.content && err == v.readErr {
		return
	}
	v.content, v.readErr = content, err
	if v.invalidate != nil {
		v.invalidate()
	}
}

// Close stops watching.
func (v *FileView) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	select {
	case <-v.done:
		return nil
	default:
		close(v.done)
	}
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}

// FileScreen puts a title row over the file view. The view gets one run
// covering the rest of the screen.
func FileScreen(title string, v *FileView) engine.RenderFunc {
	return func(ctx *engine.Context) slot.Text {
		w, h := ctx.Width(), ctx.Height()
		var b slot.Builder
		b.Lit(pad(title, w))
		if h > 1 {
			sym := ctx.MustChild(v.Render)
			b.Slot(sym, w*(h-1))
		}
		return b.Text()
	}
}
