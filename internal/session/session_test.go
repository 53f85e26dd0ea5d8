package session

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Stop)
	return m
}

func TestFileStateRoundTrip(t *testing.T) {
	m := newTestManager(t)
	m.SetFileState("/tmp/a.go", FileState{Cursor: 42, Scroll: 3})

	state, ok := m.GetFileState("/tmp/a.go")
	if !ok {
		t.Fatalf("state not found")
	}
	if state.Cursor != 42 || state.Scroll != 3 {
		t.Fatalf("state = %+v, want cursor 42 scroll 3", state)
	}
	if got := m.GetActiveFile(); got != "/tmp/a.go" {
		t.Fatalf("active file = %q, want /tmp/a.go", got)
	}
	if _, ok := m.GetFileState("/tmp/other.go"); ok {
		t.Fatalf("unknown file reported state")
	}
}

func TestSessionPersistsAcrossManagers(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	m1, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	m1.SetFileState("/tmp/b.go", FileState{Cursor: 7, Scroll: 1})
	m1.Stop()

	m2, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager (reload): %v", err)
	}
	defer m2.Stop()
	state, ok := m2.GetFileState("/tmp/b.go")
	if !ok {
		t.Fatalf("state not restored")
	}
	if state.Cursor != 7 || state.Scroll != 1 {
		t.Fatalf("restored state = %+v, want cursor 7 scroll 1", state)
	}
}

func TestSaveSkipsWhenClean(t *testing.T) {
	m := newTestManager(t)
	m.SetFileState("/tmp/c.go", FileState{Cursor: 1})
	if err := m.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	info1, err := os.Stat(m.path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("clean save: %v", err)
	}
	info2, err := os.Stat(m.path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info1.ModTime().Equal(info2.ModTime()) {
		t.Fatalf("clean save rewrote the session file")
	}
}

func TestCorruptSessionStartsFresh(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	dir := filepath.Join(stateHome, "vied")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Stop()
	if _, ok := m.GetFileState("/tmp/x"); ok {
		t.Fatalf("corrupt session yielded state")
	}
}
