package state

import "io"

// SessionStore handles session persistence.
type SessionStore interface {
	CreateSession(s *Session) error
	GetSession(id string) (*Session, error)
	LatestSession() (*Session, error)
	ListSessions() ([]Session, error)
}

// FrameStore handles frame persistence.
type FrameStore interface {
	RecordFrame(f *Frame) error
	GetFrame(sessionID string, seq int) (*Frame, error)
	ListFrames(sessionID string) ([]Frame, error)
}

// RecordStore is what a Recorder writes to.
type RecordStore interface {
	SessionStore
	FrameStore
}

// Migrator handles database schema migrations.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Store composes everything the recorder and the frames command need.
type Store interface {
	io.Closer
	Migrator
	SessionStore
	FrameStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store        = (*DB)(nil)
	_ SessionStore = (*DB)(nil)
	_ FrameStore   = (*DB)(nil)
)
