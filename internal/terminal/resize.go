package terminal

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Resizes reports window size changes. The channel holds at most one
// pending notification; stop unsubscribes.
func Resizes() (ch <-chan os.Signal, stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, unix.SIGWINCH)
	return c, func() { signal.Stop(c) }
}

// Pending drains ch without blocking and reports whether anything was in
// it.
func Pending(ch <-chan os.Signal) bool {
	got := false
	for {
		select {
		case <-ch:
			got = true
		default:
			return got
		}
	}
}
