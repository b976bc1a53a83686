package editor

import (
	"unicode"

	"github.com/kobzarvs/kiro/internal/terminal"
)

const searchPrompt = "Search: %s (Use ESC/Arrows/Enter)"

// finder is the state of an incremental search. It lives while the prompt
// is open.
type finder struct {
	query []rune

	// Cursor and offsets when the search started. The window size is not
	// saved since the terminal may be resized while searching.
	savedCX, savedCY         int
	savedRowOff, savedColOff int

	// lastRow is the row of the previous match, -1 when the next search
	// starts over from the top.
	lastRow int

	matched  bool
	row, col int
}

func (e *Editor) startFind() {
	v := e.view
	e.find = &finder{
		savedCX:     v.CX,
		savedCY:     v.CY,
		savedRowOff: v.RowOff,
		savedColOff: v.ColOff,
		lastRow:     -1,
	}
	e.setStatusf(searchPrompt, "")
}

// Searching reports whether the search prompt is open.
func (e *Editor) Searching() bool {
	return e.find != nil
}

// Match returns the current search match in rune columns.
func (e *Editor) Match() (row, col, n int, ok bool) {
	f := e.find
	if f == nil || !f.matched {
		return 0, 0, 0, false
	}
	return f.row, f.col, len(f.query), true
}

func (e *Editor) findKey(k terminal.Key) {
	f := e.find
	dir := 0
	switch {
	case k.Code == terminal.CodeBackspace || k.Code == terminal.CodeDel ||
		(k.Code == terminal.CodeCtrl && k.Rune == 'h'):
		if len(f.query) > 0 {
			f.query = f.query[:len(f.query)-1]
		}
		f.lastRow = -1
	case k.Code == terminal.CodeEsc || k.Code == terminal.CodeEnter:
		if k.Code == terminal.CodeEsc {
			e.view.CX, e.view.CY = f.savedCX, f.savedCY
			e.view.RowOff, e.view.ColOff = f.savedRowOff, f.savedColOff
			e.normalize()
		}
		e.find = nil
		e.status.Clear()
		return
	case k.Code == terminal.CodeRight || k.Code == terminal.CodeDown:
		dir = 1
	case k.Code == terminal.CodeLeft || k.Code == terminal.CodeUp:
		dir = -1
	case k.Code == terminal.CodeRune && unicode.IsPrint(k.Rune):
		f.query = append(f.query, k.Rune)
		f.lastRow = -1
	}

	e.setStatusf(searchPrompt, string(f.query))
	if f.lastRow == -1 {
		dir = 1
	}
	if dir == 0 {
		return
	}
	if len(f.query) == 0 {
		f.matched = false
		return
	}
	e.searchFrom(dir)
}

// searchFrom scans the rows after (or before) the previous match, wrapping
// at both ends, and stops at the first row containing the query.
func (e *Editor) searchFrom(dir int) {
	f := e.find
	n := e.buf.Len()
	current := f.lastRow
	for i := 0; i < n; i++ {
		current += dir
		if current < 0 {
			current = n - 1
		} else if current >= n {
			current = 0
		}
		col := index(e.buf.Line(current), f.query)
		if col < 0 {
			continue
		}
		f.lastRow = current
		f.matched, f.row, f.col = true, current, col
		e.view.RowOff, e.view.CY = current, 0
		e.view.ColOff, e.view.CX = 0, 0
		e.view.ScrollToCol(col)
		e.normalize()
		return
	}
	f.matched = false
}

// index returns the rune offset of the first occurrence of sub in s, or -1.
func index(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j, r := range sub {
			if s[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
