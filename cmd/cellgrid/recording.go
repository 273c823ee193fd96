package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/ShayCichocki/cellgrid/internal/config"
	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/state"
)

// recording is an open frame database plus the recorder writing to it.
type recording struct {
	db  *state.DB
	rec *state.Recorder
}

// startRecording opens the frame database when recording is enabled.
// A nil recording means recording is off.
func startRecording(cfg *config.Config, demoName string) (*recording, error) {
	if !cfg.Record.Enabled {
		return nil, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	db, err := state.Open(cfg.RecordDBPath(cwd))
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &recording{db: db, rec: state.NewRecorder(db, demoName)}, nil
}

// options returns the engine options that feed the recorder.
func (r *recording) options() []engine.Option {
	if r == nil {
		return nil
	}
	return []engine.Option{engine.WithFrameObserver(r.rec.Observe)}
}

// finish closes the database and reports what was stored.
func (r *recording) finish() {
	if r == nil {
		return
	}
	defer r.db.Close()
	printStatus(r.summary())
}

// summary describes the outcome as a printStatus line. A run that never
// presented a frame has no session row, so no session ID is reported.
func (r *recording) summary() (string, string, color.Attribute) {
	if err := r.rec.Err(); err != nil {
		return "✗", fmt.Sprintf("Recording failed: %v", err), color.FgRed
	}
	if r.rec.Recorded() == 0 {
		return "•", "Nothing recorded: no frame was presented", color.FgYellow
	}
	return "✓", fmt.Sprintf("Recorded %d frames to %s (session %s)",
		r.rec.Recorded(), r.db.Path(), r.rec.Session().ID), color.FgGreen
}
