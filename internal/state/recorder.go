package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/ShayCichocki/cellgrid/internal/debuglog"
	"github.com/ShayCichocki/cellgrid/internal/engine"
)

// Recorder stores every frame an engine presents under one session. The
// session row is written with the first frame, when the grid size is known.
type Recorder struct {
	store   RecordStore
	session *Session
	created bool
	now     func() time.Time

	recorded int
	err      error
}

// NewRecorder prepares a new session for demo.
func NewRecorder(store RecordStore, demo string) *Recorder {
	return &Recorder{
		store: store,
		session: &Session{
			ID:   uuid.New().String(),
			Demo: demo,
		},
		now: time.Now,
	}
}

// Session returns the recording session.
func (r *Recorder) Session() *Session {
	return r.session
}

// Observe records f. It has the signature engine.WithFrameObserver wants.
// A failed write is logged and remembered; recording stops after it.
func (r *Recorder) Observe(f engine.Frame) {
	if r.err != nil {
		return
	}
	if err := r.observe(f); err != nil {
		r.err = err
		debuglog.Printf("recorder: %v", err)
		return
	}
	r.recorded++
}

func (r *Recorder) observe(f engine.Frame) error {
	if !r.created {
		r.session.Width, r.session.Height = f.Width, f.Height
		r.session.StartedAt = r.now()
		if err := r.store.CreateSession(r.session); err != nil {
			return err
		}
		r.created = true
	}
	return r.store.RecordFrame(&Frame{
		SessionID:  r.session.ID,
		Seq:        f.Seq,
		Width:      f.Width,
		Height:     f.Height,
		Content:    f.Grid,
		Evaluated:  f.Stats.Evaluated,
		Reused:     f.Stats.Reused,
		CapturedAt: r.now(),
	})
}

// Recorded returns the number of frames stored.
func (r *Recorder) Recorded() int {
	return r.recorded
}

// Err returns the first write error, if any.
func (r *Recorder) Err() error {
	return r.err
}
