package terminal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/creack/pty"
)

func openPty(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty not available: %v", err)
	}
	t.Cleanup(func() {
		ptmx.Close()
		tty.Close()
	})
	return ptmx, tty
}

func TestSessionSizeAndRestore(t *testing.T) {
	ptmx, tty := openPty(t)
	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("Setsize: %v", err)
	}
	s, err := Open(tty, tty)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rows, cols, err := s.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if rows != 24 || cols != 80 {
		t.Fatalf("size = %dx%d, want 24x80", rows, cols)
	}
	if err := s.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := s.Restore(); err != nil {
		t.Fatalf("second Restore: %v", err)
	}

	out := make([]byte, len(altScreen))
	if _, err := io.ReadFull(ptmx, out); err != nil {
		t.Fatalf("read screen switch: %v", err)
	}
	if !bytes.Equal(out, []byte(altScreen)) {
		t.Fatalf("output = %q, want %q", out, altScreen)
	}
}

func TestSessionDecodesRawInput(t *testing.T) {
	ptmx, tty := openPty(t)
	s, err := Open(tty, tty)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Restore()

	if _, err := ptmx.Write([]byte("\x1b[A\x11")); err != nil {
		t.Fatalf("write: %v", err)
	}
	d := NewDecoder(tty)
	for _, want := range []string{"up", "ctrl+q"} {
		var k Key
		for k.IsNone() {
			if k, err = d.ReadKey(); err != nil {
				t.Fatalf("ReadKey: %v", err)
			}
		}
		if k.String() != want {
			t.Fatalf("key = %q, want %q", k.String(), want)
		}
	}
}

func TestOpenRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "in")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := Open(f, f); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("Open(file) = %v, want ErrNotTerminal", err)
	}
}

func TestHungUpAfterMasterCloses(t *testing.T) {
	ptmx, tty := openPty(t)
	s, err := Open(tty, tty)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Restore()

	if s.HungUp() {
		t.Fatalf("HungUp = true on a live terminal")
	}
	ptmx.Close()
	if !s.HungUp() {
		t.Fatalf("HungUp = false after the other side closed")
	}
}
