package debuglog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_EmptyPathIsNop(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	l.Log("dropped %d", 1)
	if err := l.Close(); err != nil {
		t.Errorf("Close on nop logger: %v", err)
	}
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")

	l, err := New(path)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	l.Log("tick %d", 7)
	l.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "debug log started") {
		t.Errorf("log missing header: %q", content)
	}
	if !strings.Contains(content, "tick 7") {
		t.Errorf("log missing message: %q", content)
	}
}

func TestPrintf_UsesDefault(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewWriter(&buf))
	defer SetDefault(nil)

	Printf("hello %s", "grid")
	if !strings.Contains(buf.String(), "hello grid") {
		t.Errorf("Printf output = %q, want it to contain %q", buf.String(), "hello grid")
	}

	SetDefault(nil)
	buf.Reset()
	Printf("ignored")
	if buf.Len() != 0 {
		t.Errorf("Printf with no default wrote %q", buf.String())
	}
}

func TestNilLogger(t *testing.T) {
	var l *DebugLogger
	l.Log("no panic")
	if err := l.Close(); err != nil {
		t.Errorf("Close on nil logger: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	got := DefaultPath("/repo")
	want := filepath.Join("/repo", ".cellgrid", "logs", "debug.log")
	if got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
