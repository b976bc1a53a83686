// Package editor is the modeless editing engine: it turns keys into cursor
// moves and buffer edits and keeps the viewport consistent with the text.
package editor

import (
	"fmt"
	"io"

	"github.com/kobzarvs/kiro/internal/buffer"
	"github.com/kobzarvs/kiro/internal/config"
	"github.com/kobzarvs/kiro/internal/logger"
	"github.com/kobzarvs/kiro/internal/render"
	"github.com/kobzarvs/kiro/internal/status"
	"github.com/kobzarvs/kiro/internal/terminal"
	"github.com/kobzarvs/kiro/internal/viewport"
)

const Version = "0.1.0"

// MaxHighlightBytes is the largest document that is syntax highlighted.
const MaxHighlightBytes = 8 << 20

const (
	Welcome     = "キロ editor -- version " + Version
	HelpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"
)

const (
	actionMoveLeft      = "move_left"
	actionMoveRight     = "move_right"
	actionMoveUp        = "move_up"
	actionMoveDown      = "move_down"
	actionLineStart     = "line_start"
	actionLineEnd       = "line_end"
	actionPageUp        = "page_up"
	actionPageDown      = "page_down"
	actionNewline       = "newline"
	actionBackspace     = "backspace"
	actionDeleteForward = "delete_forward"
	actionInsertTab     = "insert_tab"
	actionInsertChar    = "insert_char"
	actionSave          = "save"
	actionQuit          = "quit"
	actionFind          = "find"
	actionRedraw        = "redraw"
)

// Highlighter colors the buffer for the renderer.
type Highlighter interface {
	render.Styler
	Open(path string, lines []string) string
	Update(lines []string)
}

type Editor struct {
	buf      *buffer.Buffer
	view     viewport.Viewport
	status   *status.Channel
	filename string
	keymap   config.Keymap

	quitTimes int
	quitLeft  int

	find *finder

	hl         Highlighter
	hlStale    bool
	hlLimit    int
	matchColor string

	actionHook func(action string)
}

func New(cfg config.Config) *Editor {
	keymap := make(config.Keymap, len(cfg.Keymap))
	for k, v := range cfg.Keymap {
		keymap[k] = v
	}
	quitTimes := cfg.Editor.QuitTimes
	if quitTimes < 0 {
		quitTimes = 0
	}
	return &Editor{
		buf:       buffer.New(),
		view:      viewport.New(1, 1),
		status:    status.New(cfg.Editor.StatusDuration()),
		keymap:    keymap,
		quitTimes: quitTimes,
		quitLeft:  quitTimes,
		hlLimit:   MaxHighlightBytes,
	}
}

// SetHighlighter enables syntax colors. matchColor is the SGR sequence used
// for the current search match.
func (e *Editor) SetHighlighter(h Highlighter, matchColor string) {
	e.hl = h
	e.matchColor = matchColor
	if h != nil && e.filename != "" {
		h.Open(e.filename, e.buf.Lines())
	}
}

// SetMatchColor sets the color of the current search match.
func (e *Editor) SetMatchColor(color string) {
	e.matchColor = color
}

// SetSize sets the editing area, excluding the status bar and message line.
func (e *Editor) SetSize(rows, cols int) {
	e.view.SetSize(rows, cols)
	e.normalize()
}

// OpenFile loads path. A missing file opens an empty buffer that is
// created on the first save.
func (e *Editor) OpenFile(path string) error {
	if err := e.buf.ReadFile(path); err != nil {
		return err
	}
	e.filename = path
	e.view = viewport.New(e.view.Rows, e.view.Cols)
	e.find = nil
	if e.hl != nil {
		lang := e.hl.Open(path, e.buf.Lines())
		logger.Info("opened file", "path", path, "lines", e.buf.Len(), "language", lang)
	} else {
		logger.Info("opened file", "path", path, "lines", e.buf.Len())
	}
	return nil
}

func (e *Editor) Filename() string {
	return e.filename
}

func (e *Editor) Lines() []string {
	return e.buf.Lines()
}

func (e *Editor) Dirty() int {
	return e.buf.Dirty()
}

func (e *Editor) View() viewport.Viewport {
	return e.view
}

// Cursor returns the file position of the cursor.
func (e *Editor) Cursor() (row, col int) {
	return e.view.FileRow(), e.view.FileCol()
}

// RestoreCursor moves the cursor to a remembered position. The position is
// clamped to the current text.
func (e *Editor) RestoreCursor(row, col, rowOff, colOff int) {
	e.view.RowOff, e.view.ColOff = max(rowOff, 0), max(colOff, 0)
	e.view.CY, e.view.CX = 0, 0
	if row > e.buf.Len() {
		row = e.buf.Len()
	}
	e.view.ScrollTo(row, col)
	e.normalize()
}

func (e *Editor) SetStatus(msg string) {
	e.status.Set(msg)
}

func (e *Editor) setStatusf(format string, args ...any) {
	e.status.Setf(format, args...)
}

// StatusMessage returns the message line. The search prompt stays up for as
// long as the search does.
func (e *Editor) StatusMessage() string {
	if e.find != nil {
		return e.status.Raw()
	}
	return e.status.Current()
}

// Status exposes the status channel, mainly to swap its clock.
func (e *Editor) Status() *status.Channel {
	return e.status
}

// HandleKey runs the action bound to k. It reports true when the editor
// should exit.
func (e *Editor) HandleKey(k terminal.Key) bool {
	if k.IsNone() {
		return false
	}
	if e.find != nil {
		e.findKey(k)
		e.quitLeft = e.quitTimes
		return false
	}
	action, ok := e.keymap[k.String()]
	if !ok {
		if k.Code != terminal.CodeRune {
			logger.Debug("unbound key", "key", k.String())
			e.quitLeft = e.quitTimes
			return false
		}
		action = actionInsertChar
	}
	quit := e.execAction(action, k.Rune)
	if action != actionQuit {
		e.quitLeft = e.quitTimes
	}
	return quit
}

func (e *Editor) execAction(action string, r rune) bool {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case actionMoveLeft:
		e.moveLeft()
	case actionMoveRight:
		e.moveRight()
	case actionMoveUp:
		e.moveUp()
	case actionMoveDown:
		e.moveDown()
	case actionLineStart:
		e.view.ScrollToCol(0)
	case actionLineEnd:
		e.view.ScrollToCol(e.buf.LineLen(e.view.FileRow()))
	case actionPageUp:
		e.pageUp()
	case actionPageDown:
		e.pageDown()
	case actionNewline:
		e.insertNewline()
	case actionBackspace:
		e.backspace()
	case actionDeleteForward:
		e.deleteForward()
	case actionInsertTab:
		e.insertRune('\t')
	case actionInsertChar:
		e.insertRune(r)
	case actionSave:
		e.Save()
	case actionQuit:
		return e.quit()
	case actionFind:
		e.startFind()
	case actionRedraw:
	default:
		logger.Warn("unknown action", "action", action)
	}
	e.normalize()
	return false
}

func (e *Editor) quit() bool {
	if e.buf.Dirty() > 0 && e.quitLeft > 0 {
		e.setStatusf("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitLeft)
		e.quitLeft--
		return false
	}
	return true
}

// Save writes the buffer to its file and reports the outcome on the status
// line. The buffer must have a file name.
func (e *Editor) Save() {
	if e.filename == "" {
		panic("editor: save without a file name")
	}
	n, err := e.buf.WriteFile(e.filename)
	if err != nil {
		logger.Error("save failed", "path", e.filename, "err", err)
		e.setStatusf("Could not write to file `%s`: %v", e.filename, err)
		return
	}
	logger.Info("saved", "path", e.filename, "bytes", n)
	e.setStatusf("%d bytes written to disk", n)
}

// Refresh draws the whole screen to w.
func (e *Editor) Refresh(w io.Writer) error {
	if e.hl != nil && e.hlStale {
		e.updateHighlight()
	}
	frame := render.Frame{
		Doc:      e.buf,
		View:     e.view,
		Filename: e.filename,
		Dirty:    e.buf.Dirty() > 0,
		Message:  e.StatusMessage(),
		Welcome:  Welcome,
		Styles:   e,
	}
	if err := render.Draw(w, frame); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}

// Spans merges syntax colors with the search match of row.
func (e *Editor) Spans(row int) []render.Span {
	var spans []render.Span
	if e.hl != nil {
		spans = e.hl.Spans(row)
	}
	if e.find != nil && e.find.matched && e.find.row == row && e.matchColor != "" {
		m := render.Span{Start: e.find.col, End: e.find.col + len(e.find.query), Color: e.matchColor}
		spans = append(spans[:len(spans):len(spans)], m)
	}
	return spans
}

// normalize clamps the cursor to the text and keeps it on a drawn column.
func (e *Editor) normalize() {
	e.view.Normalize(e.buf)
	if row := e.view.FileRow(); row < e.buf.Len() {
		e.view.FitWidth(e.buf.Line(row))
	}
}

// updateHighlight reparses the document, or turns highlighting off once
// the document has grown past hlLimit.
func (e *Editor) updateHighlight() {
	e.hlStale = false
	lines := e.buf.Lines()
	size := 0
	for _, l := range lines {
		size += len(l) + 1
	}
	if size > e.hlLimit {
		logger.Info("highlighting disabled", "path", e.filename, "bytes", size)
		e.hl = nil
		return
	}
	e.hl.Update(lines)
}

func (e *Editor) edited() {
	e.hlStale = true
}
