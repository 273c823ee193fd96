package config

import (
	"path/filepath"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
)

// DebugLogPath returns where the debug log is written: the configured
// path, or .cellgrid/logs/debug.log under dir.
func (c *Config) DebugLogPath(dir string) string {
	if c.Debug.LogPath != "" {
		return c.Debug.LogPath
	}
	return debuglog.DefaultPath(dir)
}

// RecordDBPath returns the frame database path: the configured path, or
// .cellgrid/frames.db under dir.
func (c *Config) RecordDBPath(dir string) string {
	if c.Record.DBPath != "" {
		return c.Record.DBPath
	}
	return filepath.Join(dir, ".cellgrid", "frames.db")
}
