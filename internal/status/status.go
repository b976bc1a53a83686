// Package status keeps the transient message shown under the status bar.
package status

import (
	"fmt"
	"time"
)

// DefaultTimeout is how long a message stays visible.
const DefaultTimeout = 5 * time.Second

// Channel holds at most one message. Expiry is checked when the message is
// read; an expired message is never removed.
type Channel struct {
	msg     string
	created time.Time
	timeout time.Duration
	now     func() time.Time
}

func New(timeout time.Duration) *Channel {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Channel{timeout: timeout, now: time.Now}
}

// SetClock replaces the time source.
func (c *Channel) SetClock(now func() time.Time) {
	c.now = now
}

func (c *Channel) Timeout() time.Duration {
	return c.timeout
}

// Set replaces the message and restarts its lifetime.
func (c *Channel) Set(msg string) {
	c.msg = msg
	c.created = c.now()
}

func (c *Channel) Setf(format string, args ...any) {
	c.Set(fmt.Sprintf(format, args...))
}

func (c *Channel) Clear() {
	c.Set("")
}

// Current returns the message while it is live, or "".
func (c *Channel) Current() string {
	if c.msg == "" {
		return ""
	}
	if c.now().Sub(c.created) > c.timeout {
		return ""
	}
	return c.msg
}

// Raw returns the stored message regardless of its age.
func (c *Channel) Raw() string {
	return c.msg
}
