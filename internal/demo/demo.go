// Package demo holds the component trees the cellgrid binary can run.
package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ShayCichocki/cellgrid/internal/engine"
)

// Env carries host-provided settings into a demo.
type Env struct {
	// Path is the file shown by the file demo.
	Path string
}

// App is a built demo.
type App struct {
	// Root is the root render function to mount.
	Root engine.RenderFunc

	start func(post func(func())) error
	close func() error
}

// Start begins any background work. post must run its argument on the
// engine's loop. Apps without background work ignore it.
func (a *App) Start(post func(func())) error {
	if a.start == nil {
		return nil
	}
	return a.start(post)
}

// Close stops background work.
func (a *App) Close() error {
	if a.close == nil {
		return nil
	}
	return a.close()
}

// Demo is a named component tree.
type Demo struct {
	Name        string
	Description string
	build       func(Env) (*App, error)
}

// Build creates a fresh instance of the demo.
func (d Demo) Build(env Env) (*App, error) {
	return d.build(env)
}

var registry = map[string]Demo{}

func register(d Demo) {
	registry[d.Name] = d
}

func init() {
	register(Demo{
		Name:        "form",
		Description: "three text inputs with tab focus cycling",
		build:       func(Env) (*App, error) { return &App{Root: Form()}, nil },
	})
	register(Demo{
		Name:        "counter",
		Description: "a counter driven by + and -",
		build:       func(Env) (*App, error) { return &App{Root: CounterScreen()}, nil },
	})
	register(Demo{
		Name:        "split",
		Description: "side-by-side panes under a banner",
		build:       func(Env) (*App, error) { return &App{Root: Split()}, nil },
	})
	register(Demo{
		Name:        "file",
		Description: "a file that redraws when it changes on disk",
		build:       buildFile,
	})
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, error) {
	d, ok := registry[name]
	if !ok {
		return Demo{}, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the demo names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every demo, sorted by name.
func All() []Demo {
	var all []Demo
	for _, name := range Names() {
		all = append(all, registry[name])
	}
	return all
}

func buildFile(env Env) (*App, error) {
	if env.Path == "" {
		return nil, fmt.Errorf("file demo needs a path")
	}
	v, err := NewFileView(env.Path)
	if err != nil {
		return nil, err
	}
	return &App{
		Root:  FileScreen(env.Path, v),
		start: v.Watch,
		close: v.Close,
	}, nil
}
