package demo

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ShayCichocki/cellgrid/internal/engine"
	"github.com/ShayCichocki/cellgrid/internal/host"
)

// capture renders root at w x h after feeding the comma-separated keys.
func capture(t *testing.T, root engine.RenderFunc, w, h int, keys string) (*engine.Engine, []string) {
	t.Helper()
	events, err := host.ParseKeys(keys)
	if err != nil {
		t.Fatalf("ParseKeys(%q) error = %v", keys, err)
	}
	snap, err := host.NewSnapshot(w, h, host.FormatText, "")
	if err != nil {
		t.Fatalf("NewSnapshot() error = %v", err)
	}
	eng, err := host.Capture(snap, root, host.DefaultKeyMap(), events)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	return eng, strings.Split(snap.Frame(), "\n")
}

func rows(w int, lines ...string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = pad(l, w)
	}
	return out
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"form", "counter", "split", "file"} {
		d, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
			continue
		}
		if d.Name != name || d.Description == "" {
			t.Errorf("Lookup(%q) = %+v", name, d)
		}
	}

	if _, err := Lookup("nope"); err == nil {
		t.Error("Lookup(nope) should fail")
	}

	if diff := cmp.Diff([]string{"counter", "file", "form", "split"}, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if len(All()) != 4 {
		t.Errorf("All() = %d demos, want 4", len(All()))
	}
}

func TestBuild_FileNeedsPath(t *testing.T) {
	d, _ := Lookup("file")
	if _, err := d.Build(Env{}); err == nil {
		t.Error("file demo without a path should fail")
	}
}

func TestForm_InitialLayout(t *testing.T) {
	_, got := capture(t, Form(), 32, 6, "")

	want := rows(32,
		"> Name: _",
		"  Email: ",
		strings.Repeat("─", 32),
		"  Notes: ",
		"",
		"focus: name  (tab/shift+tab)",
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_TypingAndFocus(t *testing.T) {
	_, got := capture(t, Form(), 32, 6, "a,d,a,tab,x,tab,l,enter,m,backspace,n")

	want := rows(32,
		"  Name: ada",
		"  Email: x",
		strings.Repeat("─", 32),
		"> Notes: ",
		"n_",
		"focus: notes  (tab/shift+tab)",
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ShiftTabWraps(t *testing.T) {
	eng, _ := capture(t, Form(), 32, 6, "shift+tab")

	if got := eng.Focus().Name(eng.Focus().Active()); got != FieldNotes {
		t.Errorf("focus = %q, want %q", got, FieldNotes)
	}
}

func TestForm_TypingRebuildsOnlyTheInput(t *testing.T) {
	eng, _ := capture(t, Form(), 32, 6, "z")

	stats := eng.Stats()
	if stats.Evaluated != 1 {
		t.Errorf("Evaluated = %d, want 1", stats.Evaluated)
	}
	if stats.Reused != 4 {
		t.Errorf("Reused = %d, want 4", stats.Reused)
	}
}

func TestForm_TooSmall(t *testing.T) {
	_, got := capture(t, Form(), 16, 2, "")

	want := rows(16, "window too small", "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestInput_LongTextShowsTail(t *testing.T) {
	_, got := capture(t, Input("N", "n", false), 8, 1, "a,b,c,d,e,f")

	// "> N: " leaves three cells: the last two runes and the cursor.
	if diff := cmp.Diff([]string{"> N: ef_"}, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestCounterScreen(t *testing.T) {
	_, got := capture(t, CounterScreen(), 30, 2, "+,+,+,-,x")

	want := rows(30, "count: 2", "+/- to change, ctrl+c to quit")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestSplit(t *testing.T) {
	_, got := capture(t, Split(), 21, 4, "+")

	want := []string{
		" cellgrid split demo ",
		strings.Repeat(" ", 21),
		"count: 1  │+         ",
		"          │          ",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestKeyLog_KeepsNewest(t *testing.T) {
	_, got := capture(t, KeyLog(), 6, 2, "a,b,alt+c")

	want := rows(6, "b", "alt+c")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pad short", pad("ab", 4), "ab  "},
		{"pad long", pad("abcdef", 4), "abcd"},
		{"center", center("ab", 6), "  ab  "},
		{"center odd", center("ab", 5), " ab  "},
		{"tail", tail("abcdef", 3), "def"},
		{"tail zero", tail("abc", 0), ""},
		{"tailLines", tailLines("a\nbcd\nef", 2, 2), "cd\nef"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}
