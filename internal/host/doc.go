// Package host connects the engine to the outside world.
//
// Terminal runs the engine inside a bubbletea program: window size messages
// are the measurement, tea.Tick is the scheduler, View is the presentation
// and key messages are the event source. Every engine call happens inside
// the program's Update, which gives the engine the single loop it needs.
//
// Snapshot is a headless target that renders frames at a fixed size and
// writes the last one out as text, HTML or YAML.
package host
