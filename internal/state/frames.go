package state

import (
	"database/sql"
	"fmt"
	"time"
)

// Session is one run of a demo whose frames were recorded.
type Session struct {
	ID        string    `json:"id"`
	Demo      string    `json:"demo"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	StartedAt time.Time `json:"started_at"`
}

// Frame is one presented grid.
type Frame struct {
	SessionID  string    `json:"session_id"`
	Seq        int       `json:"seq"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Content    string    `json:"content"`
	Evaluated  int       `json:"evaluated"`
	Reused     int       `json:"reused"`
	CapturedAt time.Time `json:"captured_at"`
}

// Session CRUD operations

// CreateSession creates a new session.
func (db *DB) CreateSession(s *Session) error {
	_, err := db.exec(`
		INSERT INTO sessions (id, demo, width, height, started_at)
		VALUES (?, ?, ?, ?, ?)
	`, s.ID, s.Demo, s.Width, s.Height, timestamp(s.StartedAt))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID. Returns nil if it does not exist.
func (db *DB) GetSession(id string) (*Session, error) {
	row := db.queryRow(`
		SELECT id, demo, width, height, started_at
		FROM sessions WHERE id = ?
	`, id)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// LatestSession returns the most recently started session, or nil.
func (db *DB) LatestSession() (*Session, error) {
	row := db.queryRow(`
		SELECT id, demo, width, height, started_at
		FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT 1
	`)

	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest session: %w", err)
	}
	return s, nil
}

// ListSessions returns all sessions, newest first.
func (db *DB) ListSessions() ([]Session, error) {
	rows, err := db.query(`
		SELECT id, demo, width, height, started_at
		FROM sessions ORDER BY started_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var s Session
	var startedAt string
	if err := row.Scan(&s.ID, &s.Demo, &s.Width, &s.Height, &startedAt); err != nil {
		return nil, err
	}
	s.StartedAt, _ = parseTimestamp(startedAt)
	return &s, nil
}

// Frame operations

// RecordFrame stores a frame.
func (db *DB) RecordFrame(f *Frame) error {
	_, err := db.exec(`
		INSERT INTO frames (session_id, seq, width, height, content, evaluated, reused, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, f.SessionID, f.Seq, f.Width, f.Height, f.Content, f.Evaluated, f.Reused, timestamp(f.CapturedAt))
	if err != nil {
		return fmt.Errorf("record frame %d: %w", f.Seq, err)
	}
	return nil
}

// GetFrame retrieves one frame of a session. Returns nil if it does not
// exist.
func (db *DB) GetFrame(sessionID string, seq int) (*Frame, error) {
	row := db.queryRow(`
		SELECT session_id, seq, width, height, content, evaluated, reused, captured_at
		FROM frames WHERE session_id = ? AND seq = ?
	`, sessionID, seq)

	f, err := scanFrame(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}
	return f, nil
}

// ListFrames returns a session's frames in presentation order.
func (db *DB) ListFrames(sessionID string) ([]Frame, error) {
	rows, err := db.query(`
		SELECT session_id, seq, width, height, content, evaluated, reused, captured_at
		FROM frames WHERE session_id = ? ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list frames: %w", err)
	}
	defer rows.Close()

	var frames []Frame
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames = append(frames, *f)
	}
	return frames, rows.Err()
}

// CountFrames returns how many frames a session has.
func (db *DB) CountFrames(sessionID string) (int, error) {
	var n int
	if err := db.queryRow(`SELECT COUNT(*) FROM frames WHERE session_id = ?`, sessionID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count frames: %w", err)
	}
	return n, nil
}

func scanFrame(row scanner) (*Frame, error) {
	var f Frame
	var capturedAt string
	if err := row.Scan(&f.SessionID, &f.Seq, &f.Width, &f.Height, &f.Content, &f.Evaluated, &f.Reused, &capturedAt); err != nil {
		return nil, err
	}
	f.CapturedAt, _ = parseTimestamp(capturedAt)
	return &f, nil
}
