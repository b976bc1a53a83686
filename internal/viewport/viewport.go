// Package viewport maps file coordinates to the visible terminal window.
package viewport

import "github.com/kobzarvs/kiro/internal/width"

// Document is the part of the buffer the viewport needs for clamping.
type Document interface {
	Len() int
	LineLen(row int) int
}

// Viewport holds the cursor position on screen (CX, CY), the scroll
// offsets (RowOff, ColOff) and the size of the editing area.
type Viewport struct {
	CX, CY         int
	RowOff, ColOff int
	Rows, Cols     int
}

func New(rows, cols int) Viewport {
	v := Viewport{}
	v.SetSize(rows, cols)
	return v
}

func (v *Viewport) FileRow() int {
	return v.RowOff + v.CY
}

func (v *Viewport) FileCol() int {
	return v.ColOff + v.CX
}

// SetSize changes the dimensions. Sizes below one are raised to one and the
// cursor is pulled back inside the new window by scrolling.
func (v *Viewport) SetSize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	v.Rows, v.Cols = rows, cols
	if v.CY >= rows {
		v.RowOff += v.CY - rows + 1
		v.CY = rows - 1
	}
	if v.CX >= cols {
		v.ColOff += v.CX - cols + 1
		v.CX = cols - 1
	}
}

// ScrollToRow puts the cursor on file row, moving RowOff as little as
// possible.
func (v *Viewport) ScrollToRow(row int) {
	if row < 0 {
		row = 0
	}
	switch {
	case row < v.RowOff:
		v.RowOff = row
	case row >= v.RowOff+v.Rows:
		v.RowOff = row - v.Rows + 1
	}
	v.CY = row - v.RowOff
}

// ScrollToCol is ScrollToRow for columns.
func (v *Viewport) ScrollToCol(col int) {
	if col < 0 {
		col = 0
	}
	switch {
	case col < v.ColOff:
		v.ColOff = col
	case col >= v.ColOff+v.Cols:
		v.ColOff = col - v.Cols + 1
	}
	v.CX = col - v.ColOff
}

func (v *Viewport) ScrollTo(row, col int) {
	v.ScrollToRow(row)
	v.ScrollToCol(col)
}

// Normalize restores the invariants after an edit or a move: the file row
// is a line of doc or the append position right after it, the cursor is
// inside the window, and the file column does not go past the end of the
// line. An overflowing column is fixed by lowering ColOff to the line
// length if needed and parking the cursor at the line end.
func (v *Viewport) Normalize(doc Document) {
	if v.Rows < 1 || v.Cols < 1 {
		v.SetSize(v.Rows, v.Cols)
	}
	if v.RowOff < 0 {
		v.RowOff = 0
	}
	if v.ColOff < 0 {
		v.ColOff = 0
	}
	if v.CY < 0 {
		v.CY = 0
	}
	if v.CX < 0 {
		v.CX = 0
	}
	if row := v.FileRow(); row > doc.Len() {
		v.ScrollToRow(doc.Len())
	} else if v.CY >= v.Rows {
		v.ScrollToRow(row)
	}
	if v.CX >= v.Cols {
		v.ScrollToCol(v.FileCol())
	}
	lineLen := doc.LineLen(v.FileRow())
	if v.FileCol() > lineLen {
		if v.ColOff > lineLen {
			v.ColOff = lineLen
		}
		v.CX = lineLen - v.ColOff
	}
}

// FitWidth scrolls right until the rune under the cursor on line is drawn
// whole inside the window. At the line end the cursor takes one column.
// CX only counts runes, so wide runes and tabs can push the cursor past the
// right edge of the screen even though CX < Cols.
func (v *Viewport) FitWidth(line []rune) {
	col := v.FileCol()
	if v.ColOff > len(line) || col > len(line) {
		return
	}
	cur := 1
	if col < len(line) {
		cur = width.Layout(line[col])
	}
	for v.CX > 0 && width.LayoutRunes(line[v.ColOff:col])+cur > v.Cols {
		v.ColOff++
		v.CX--
	}
}

// ScreenX returns the terminal column of the cursor on line, which is the
// display width of the runes between ColOff and the cursor, laid out the
// same way the renderer draws them.
func (v *Viewport) ScreenX(line []rune) int {
	from, to := v.ColOff, v.FileCol()
	if from > len(line) {
		return v.CX
	}
	if to > len(line) {
		to = len(line)
	}
	x := width.LayoutRunes(line[from:to])
	if x >= v.Cols {
		x = v.Cols - 1
	}
	return x
}
