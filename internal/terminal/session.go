// Package terminal puts the controlling terminal in raw mode and turns its
// input into keys.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	altScreen     = "\x1b[?1049h"
	primaryScreen = "\x1b[?1049l"
	showCursor    = "\x1b[?25h"
)

// ErrNotTerminal is returned by Open when in is not a terminal.
var ErrNotTerminal = errors.New("terminal: input is not a terminal")

// ErrHangUp reports that the terminal went away.
var ErrHangUp = errors.New("terminal: input hung up")

// Session owns the raw mode of a terminal. Reads from In return after at
// most a tenth of a second even when no key was pressed.
type Session struct {
	In  *os.File
	Out *os.File

	state *term.State
	once  sync.Once
	err   error
}

// Open switches in to raw mode with a read timeout and out to the
// alternate screen.
func Open(in, out *os.File) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	s := &Session{In: in, Out: out, state: state}
	if err := setReadTimeout(fd); err != nil {
		_ = term.Restore(fd, state)
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	if _, err := io.WriteString(out, altScreen); err != nil {
		_ = term.Restore(fd, state)
		return nil, err
	}
	return s, nil
}

// setReadTimeout makes read(2) return after 100ms with zero bytes instead
// of blocking (VMIN=0, VTIME=1).
func setReadTimeout(fd int) error {
	tio, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return err
	}
	tio.Cc[unix.VMIN] = 0
	tio.Cc[unix.VTIME] = 1
	return unix.IoctlSetTermios(fd, ioctlWriteTermios, tio)
}

// HungUp reports whether the input side of the terminal was closed. With
// VMIN=0 a read from a hung-up terminal returns no data, the same as a read
// that timed out, so the input loop asks here when a read comes back empty.
func (s *Session) HungUp() bool {
	fds := []unix.PollFd{{Fd: int32(s.In.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return errors.Is(err, unix.EBADF)
	}
	return n > 0 && fds[0].Revents&(unix.POLLHUP|unix.POLLERR|unix.POLLNVAL) != 0
}

// Size returns the terminal size in rows and columns.
func (s *Session) Size() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(int(s.Out.Fd()))
	if err != nil {
		cols, rows, err = term.GetSize(int(s.In.Fd()))
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}
	return rows, cols, nil
}

// Restore leaves the alternate screen and puts the terminal back in the
// mode it had before Open. Only the first call has an effect.
func (s *Session) Restore() error {
	s.once.Do(func() {
		_, _ = io.WriteString(s.Out, primaryScreen+showCursor)
		s.err = term.Restore(int(s.In.Fd()), s.state)
	})
	return s.err
}
