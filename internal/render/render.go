// Package render turns the editor state into the byte stream of one full
// redraw.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kobzarvs/kiro/internal/viewport"
	"github.com/kobzarvs/kiro/internal/width"
)

// Lines is the read side of the buffer.
type Lines interface {
	Len() int
	Line(i int) []rune
}

// Span colors the runes [Start, End) of a line. Color is an SGR sequence
// that sets the foreground; the run is closed with DefaultFg.
type Span struct {
	Start, End int
	Color      string
}

// Styler supplies the spans of a file row. Later spans win over earlier
// ones where they overlap.
type Styler interface {
	Spans(row int) []Span
}

// Frame is everything a redraw needs.
type Frame struct {
	Doc      Lines
	View     viewport.Viewport
	Filename string
	Dirty    bool
	// Message is the live status message, already expired to "" if stale.
	Message string
	// Welcome is shown on an empty document.
	Welcome string
	Styles  Styler
}

// NoName is shown in the status bar when the buffer has no file.
const NoName = "[No Name]"

// Draw writes the frame to w in a single Write call.
func Draw(w io.Writer, f Frame) error {
	var b strings.Builder
	Build(&b, f)
	_, err := io.WriteString(w, b.String())
	return err
}

// Build appends the frame to b.
func Build(b *strings.Builder, f Frame) {
	v := f.View
	b.WriteString(HideCursor)
	b.WriteString(GotoTopLeft)

	empty := f.Doc.Len() == 0
	for y := 0; y < v.Rows; y++ {
		row := v.RowOff + y
		switch {
		case empty && y == v.Rows/3:
			b.WriteString(Banner(f.Welcome, v.Cols))
		case row >= f.Doc.Len():
			b.WriteByte('~')
		default:
			var spans []Span
			if f.Styles != nil {
				spans = f.Styles.Spans(row)
			}
			writeLine(b, f.Doc.Line(row), v.ColOff, v.Cols, spans)
		}
		b.WriteString(ClearLine)
		b.WriteString(EOL)
	}

	b.WriteString(Reverse)
	b.WriteString(StatusBar(f.Filename, f.Doc.Len(), f.Dirty, v.FileRow(), v.Cols))
	b.WriteString(ClearLine)
	b.WriteString(EOL)
	b.WriteString(Reset)
	b.WriteString(width.Crop(f.Message, 0, v.Cols))
	b.WriteString(ClearLine)

	x := v.CX
	if row := v.FileRow(); row < f.Doc.Len() {
		x = v.ScreenX(f.Doc.Line(row))
	}
	b.WriteString(Goto(x+1, v.CY+1))
	b.WriteString(ShowCursor)
}

// Banner returns "~" followed by msg centered in cols-1 display columns.
// msg must have a known display width.
func Banner(msg string, cols int) string {
	w, ok := width.String(msg)
	if !ok {
		panic(fmt.Sprintf("render: cannot compute display width of %q, check the locale and terminal setup", msg))
	}
	field := cols - 1
	if w > field {
		return "~" + width.Crop(msg, 0, max(field, 0))
	}
	left := (field - w) / 2
	right := field - w - left
	return "~" + strings.Repeat(" ", left) + msg + strings.Repeat(" ", right)
}

// StatusBar returns the text of the reverse-video bar: file name, line count
// and modified flag on the left, cursor line on the right. When both do not
// fit in cols the left field is cropped.
func StatusBar(filename string, lines int, dirty bool, fileRow, cols int) string {
	if filename == "" {
		filename = NoName
	}
	modified := ""
	if dirty {
		modified = "(modified)"
	}
	left := filename + " - " + strconv.Itoa(lines) + " lines " + modified
	right := strconv.Itoa(fileRow+1) + "/" + strconv.Itoa(lines)
	lw := width.StringOrLen(left)
	rw := width.StringOrLen(right)
	if rw > cols {
		return width.Crop(right, 0, cols)
	}
	if lw+rw > cols {
		left = width.Crop(left, 0, cols-rw)
		lw = width.StringOrLen(left)
	}
	return left + strings.Repeat(" ", max(cols-lw-rw, 0)) + right
}

func writeLine(b *strings.Builder, line []rune, colOff, cols int, spans []Span) {
	used := 0
	current := ""
	for i := colOff; i < len(line); i++ {
		w := width.Layout(line[i])
		if used+w > cols {
			break
		}
		used += w
		color := spanColor(spans, i)
		if color != current {
			if color == "" {
				b.WriteString(DefaultFg)
			} else {
				b.WriteString(color)
			}
			current = color
		}
		writeRune(b, line[i])
	}
	if current != "" {
		b.WriteString(DefaultFg)
	}
}

func spanColor(spans []Span, i int) string {
	color := ""
	for _, s := range spans {
		if i >= s.Start && i < s.End {
			color = s.Color
		}
	}
	return color
}

func writeRune(b *strings.Builder, r rune) {
	if r == '\t' {
		b.WriteString(strings.Repeat(" ", width.Tab))
		return
	}
	if _, ok := width.Rune(r); ok {
		b.WriteRune(r)
		return
	}
	b.WriteString(Reverse)
	if r >= 0 && r < 0x20 {
		b.WriteRune('@' + r)
	} else {
		b.WriteByte('?')
	}
	b.WriteString(NoReverse)
}
