package state

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newSession(id string, started time.Time) *Session {
	return &Session{ID: id, Demo: "form", Width: 4, Height: 2, StartedAt: started}
}

func TestCreateAndGetSession(t *testing.T) {
	db := setupTestDB(t)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := db.CreateSession(newSession("s-1", started)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	got, err := db.GetSession("s-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if diff := cmp.Diff(newSession("s-1", started), got); diff != "" {
		t.Errorf("GetSession mismatch (-want +got):\n%s", diff)
	}

	missing, err := db.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession(missing) failed: %v", err)
	}
	if missing != nil {
		t.Errorf("GetSession(missing) = %v, want nil", missing)
	}
}

func TestListSessions_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		if err := db.CreateSession(newSession(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("CreateSession(%s) failed: %v", id, err)
		}
	}

	sessions, err := db.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	var ids []string
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]string{"new", "mid", "old"}, ids); diff != "" {
		t.Errorf("ListSessions order mismatch (-want +got):\n%s", diff)
	}

	latest, err := db.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession failed: %v", err)
	}
	if latest == nil || latest.ID != "new" {
		t.Errorf("LatestSession = %v, want new", latest)
	}
}

func TestLatestSession_Empty(t *testing.T) {
	db := setupTestDB(t)

	latest, err := db.LatestSession()
	if err != nil {
		t.Fatalf("LatestSession failed: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestSession = %v, want nil", latest)
	}
}

func TestRecordAndListFrames(t *testing.T) {
	db := setupTestDB(t)
	captured := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := db.CreateSession(newSession("s-1", captured)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	frames := []Frame{
		{SessionID: "s-1", Seq: 2, Width: 4, Height: 2, Content: "ab  \n    ", Evaluated: 1, Reused: 2, CapturedAt: captured},
		{SessionID: "s-1", Seq: 1, Width: 4, Height: 2, Content: "a   \n    ", Evaluated: 3, CapturedAt: captured},
	}
	for i := range frames {
		if err := db.RecordFrame(&frames[i]); err != nil {
			t.Fatalf("RecordFrame failed: %v", err)
		}
	}

	got, err := db.ListFrames("s-1")
	if err != nil {
		t.Fatalf("ListFrames failed: %v", err)
	}
	want := []Frame{frames[1], frames[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListFrames mismatch (-want +got):\n%s", diff)
	}

	one, err := db.GetFrame("s-1", 2)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if one == nil || one.Content != "ab  \n    " {
		t.Errorf("GetFrame = %v, want seq 2", one)
	}

	n, err := db.CountFrames("s-1")
	if err != nil {
		t.Fatalf("CountFrames failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountFrames = %d, want 2", n)
	}
}

func TestRecordFrame_DuplicateSeq(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()
	if err := db.CreateSession(newSession("s-1", now)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	f := &Frame{SessionID: "s-1", Seq: 1, Width: 1, Height: 1, Content: "x", CapturedAt: now}
	if err := db.RecordFrame(f); err != nil {
		t.Fatalf("RecordFrame failed: %v", err)
	}
	if err := db.RecordFrame(f); err == nil {
		t.Error("expected duplicate seq to fail")
	}
}

func TestGetFrame_Missing(t *testing.T) {
	db := setupTestDB(t)

	f, err := db.GetFrame("s-1", 1)
	if err != nil {
		t.Fatalf("GetFrame failed: %v", err)
	}
	if f != nil {
		t.Errorf("GetFrame = %v, want nil", f)
	}
}

func TestPurgeSessions(t *testing.T) {
	db := setupTestDB(t)
	now := time.Now()

	if err := db.CreateSession(newSession("old", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := db.CreateSession(newSession("fresh", now)); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	for _, id := range []string{"old", "fresh"} {
		if err := db.RecordFrame(&Frame{SessionID: id, Seq: 1, Width: 1, Height: 1, Content: "x", CapturedAt: now}); err != nil {
			t.Fatalf("RecordFrame failed: %v", err)
		}
	}

	n, err := db.PurgeSessions(now.Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PurgeSessions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d sessions, want 1", n)
	}

	if s, _ := db.GetSession("old"); s != nil {
		t.Error("old session survived purge")
	}
	if c, _ := db.CountFrames("old"); c != 0 {
		t.Errorf("old session kept %d frames", c)
	}
	if c, _ := db.CountFrames("fresh"); c != 1 {
		t.Errorf("fresh session has %d frames, want 1", c)
	}
}
