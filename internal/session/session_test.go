package session

import (
	"path/filepath"
	"testing"
)

func TestFileStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.db")
	m, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, ok, err := m.GetFileState("/src/main.go"); err != nil || ok {
		t.Fatalf("GetFileState on empty db = %v, %v", ok, err)
	}

	want := FileState{CursorRow: 3, CursorCol: 4, ScrollY: 10, ScrollX: 2}
	if err := m.SetFileState("/src/main.go", want); err != nil {
		t.Fatalf("SetFileState: %v", err)
	}
	want.CursorRow = 7
	if err := m.SetFileState("/src/main.go", want); err != nil {
		t.Fatalf("SetFileState update: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	m, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer m.Close()
	got, ok, err := m.GetFileState("/src/main.go")
	if err != nil || !ok {
		t.Fatalf("GetFileState = %v, %v", ok, err)
	}
	if got != want {
		t.Fatalf("state = %#v, want %#v", got, want)
	}

	if err := m.Forget("/src/main.go"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if _, ok, _ := m.GetFileState("/src/main.go"); ok {
		t.Fatalf("state still present after Forget")
	}
}

func TestNewManagerUsesStateDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KIRO_STATE_HOME", dir)
	m, err := NewManager()
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer m.Close()
	if want := filepath.Join(dir, "session.db"); m.Path() != want {
		t.Fatalf("Path = %q, want %q", m.Path(), want)
	}
}
