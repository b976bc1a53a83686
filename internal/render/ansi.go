package render

import "strconv"

// Escape sequences written by the renderer.
const (
	HideCursor    = "\x1b[?25l"
	ShowCursor    = "\x1b[?25h"
	GotoTopLeft   = "\x1b[H"
	ClearLine     = "\x1b[0K"
	ClearScreen   = "\x1b[2J"
	AltScreen     = "\x1b[?1049h"
	PrimaryScreen = "\x1b[?1049l"
	Reverse       = "\x1b[7m"
	NoReverse     = "\x1b[27m"
	Reset         = "\x1b[0m"
	DefaultFg     = "\x1b[39m"
	EOL           = "\r\n"
)

// Goto returns the sequence moving the cursor to 1-based column x, row y.
func Goto(x, y int) string {
	return "\x1b[" + strconv.Itoa(y) + ";" + strconv.Itoa(x) + "H"
}

// Fg returns the 24-bit foreground color sequence.
func Fg(r, g, b int32) string {
	return "\x1b[38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)) + "m"
}
