package editor

func (e *Editor) atBottom() bool {
	return e.view.CY == e.view.Rows-1
}

func (e *Editor) atRightEdge() bool {
	return e.view.CX == e.view.Cols-1
}

func (e *Editor) moveLeft() {
	v := &e.view
	if v.CX > 0 {
		v.CX--
		return
	}
	if v.ColOff > 0 {
		v.ColOff--
		return
	}
	if row := v.FileRow(); row > 0 {
		v.ScrollToRow(row - 1)
		v.ScrollToCol(e.buf.LineLen(row - 1))
	}
}

func (e *Editor) moveRight() {
	v := &e.view
	row := v.FileRow()
	if row >= e.buf.Len() {
		return
	}
	if v.FileCol() < e.buf.LineLen(row) {
		if e.atRightEdge() {
			v.ColOff++
		} else {
			v.CX++
		}
		return
	}
	v.CX, v.ColOff = 0, 0
	e.moveDownOne()
}

func (e *Editor) moveUp() {
	v := &e.view
	if v.CY > 0 {
		v.CY--
	} else if v.RowOff > 0 {
		v.RowOff--
	}
}

func (e *Editor) moveDown() {
	if e.view.FileRow() >= e.buf.Len() {
		return
	}
	e.moveDownOne()
}

func (e *Editor) moveDownOne() {
	if e.atBottom() {
		e.view.RowOff++
	} else {
		e.view.CY++
	}
}

// pageUp and pageDown first park the cursor on the top or bottom screen row,
// then move a full screen.
func (e *Editor) pageUp() {
	if e.view.CY != 0 {
		e.view.CY = 0
	}
	e.view.Normalize(e.buf)
	for i := 0; i < e.view.Rows; i++ {
		e.moveUp()
	}
}

func (e *Editor) pageDown() {
	if e.view.CY != e.view.Rows-1 {
		e.view.CY = e.view.Rows - 1
	}
	e.view.Normalize(e.buf)
	for i := 0; i < e.view.Rows; i++ {
		e.moveDown()
	}
}

func (e *Editor) insertRune(r rune) {
	v := &e.view
	e.buf.InsertChar(v.FileRow(), v.FileCol(), r)
	if e.atRightEdge() {
		v.ColOff++
	} else {
		v.CX++
	}
	e.edited()
}

// insertNewline splits the line at the cursor; at the append position it
// adds an empty line.
func (e *Editor) insertNewline() {
	v := &e.view
	e.buf.SplitLine(v.FileRow(), v.FileCol())
	e.moveDownOne()
	v.CX, v.ColOff = 0, 0
	e.edited()
}

func (e *Editor) backspace() {
	v := &e.view
	row, col := v.FileRow(), v.FileCol()
	if row >= e.buf.Len() || (row == 0 && col == 0) {
		return
	}
	joinCol, joined := e.buf.DeleteChar(row, col)
	e.edited()
	if !joined {
		if v.CX > 0 {
			v.CX--
		} else {
			v.ColOff--
		}
		return
	}
	if v.CY > 0 {
		v.CY--
	} else {
		v.RowOff--
	}
	v.ScrollToCol(joinCol)
}

// deleteForward removes the rune under the cursor, or joins the next line
// when the cursor is at the end of its line. The cursor does not move.
func (e *Editor) deleteForward() {
	row, col := e.view.FileRow(), e.view.FileCol()
	if row >= e.buf.Len() {
		return
	}
	if col < e.buf.LineLen(row) {
		e.buf.DeleteChar(row, col+1)
		e.edited()
		return
	}
	if row+1 < e.buf.Len() {
		e.buf.DeleteChar(row+1, 0)
		e.edited()
	}
}
