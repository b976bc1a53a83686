package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kobzarvs/kiro/internal/config"
	"github.com/kobzarvs/kiro/internal/editor"
	"github.com/kobzarvs/kiro/internal/highlight"
	"github.com/kobzarvs/kiro/internal/logger"
	"github.com/kobzarvs/kiro/internal/render"
	"github.com/kobzarvs/kiro/internal/session"
	"github.com/kobzarvs/kiro/internal/terminal"
)

// ErrUsage is returned when kiro is not given exactly one file name.
var ErrUsage = errors.New("usage: kiro <filename>")

// App is the top-level runtime for kiro.
type App struct {
	args    []string
	in, out *os.File
}

func New(args []string) *App {
	return &App{args: args, in: os.Stdin, out: os.Stdout}
}

func (a *App) Run() (err error) {
	if len(a.args) != 1 {
		return ErrUsage
	}
	path := a.args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	langs, err := config.LoadLanguages()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Editor.Debug); err != nil {
		fmt.Fprintln(os.Stderr, "kiro: logging disabled:", err)
	}
	defer logger.Close()

	ed := editor.New(cfg)
	if cfg.Editor.Highlight && !tooLarge(path) {
		palette := highlight.NewPalette(cfg.Theme)
		hl := highlight.New(langs, palette)
		defer hl.Close()
		ed.SetHighlighter(hl, palette.Color("match"))
	}
	if err := ed.OpenFile(path); err != nil {
		return err
	}

	var store *session.Manager
	if cfg.Editor.RestoreCursor {
		store, err = session.NewManager()
		if err != nil {
			logger.Warn("session store unavailable", "err", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	term, err := terminal.Open(a.in, a.out)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = term.Restore()
			_, _ = io.WriteString(a.out, render.ClearScreen+render.GotoTopLeft)
			logger.Error("panic", "value", r)
			logger.Close()
			panic(r)
		}
		if rerr := term.Restore(); err == nil && rerr != nil {
			err = fmt.Errorf("restore terminal: %w", rerr)
		}
	}()

	resizes, stop := terminal.Resizes()
	defer stop()
	a.resize(term, ed)

	abs, absErr := filepath.Abs(path)
	if absErr != nil {
		abs = path
	}
	if store != nil {
		if st, ok, err := store.GetFileState(abs); err != nil {
			logger.Warn("load file state", "path", abs, "err", err)
		} else if ok {
			ed.RestoreCursor(st.CursorRow, st.CursorCol, st.ScrollY, st.ScrollX)
		}
	}

	ed.SetStatus(editor.HelpMessage)
	if err := a.loop(term, ed, resizes); err != nil {
		return err
	}

	if store != nil {
		row, col := ed.Cursor()
		v := ed.View()
		st := session.FileState{CursorRow: row, CursorCol: col, ScrollY: v.RowOff, ScrollX: v.ColOff}
		if err := store.SetFileState(abs, st); err != nil {
			logger.Warn("save file state", "path", abs, "err", err)
		}
	}
	return nil
}

// loop redraws and dispatches keys until the editor asks to quit. Reads
// time out every 100ms; the screen is redrawn only after a key, a resize or
// a change of the message line.
func (a *App) loop(term *terminal.Session, ed *editor.Editor, resizes <-chan os.Signal) error {
	dec := terminal.NewDecoder(a.in)
	redraw := true
	shown := ""
	for {
		if terminal.Pending(resizes) {
			a.resize(term, ed)
			redraw = true
		}
		if msg := ed.StatusMessage(); msg != shown {
			redraw = true
		}
		if redraw {
			if err := ed.Refresh(a.out); err != nil {
				return err
			}
			shown = ed.StatusMessage()
			redraw = false
		}
		k, err := dec.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		if k.IsNone() {
			if term.HungUp() {
				return terminal.ErrHangUp
			}
			continue
		}
		if ed.HandleKey(k) {
			return nil
		}
		redraw = true
	}
}

// resize gives the editor the terminal size minus the status bar and the
// message line.
func (a *App) resize(term *terminal.Session, ed *editor.Editor) {
	rows, cols, err := term.Size()
	if err != nil {
		logger.Warn("window size", "err", err)
		return
	}
	logger.Debug("resize", "rows", rows, "cols", cols)
	ed.SetSize(rows-2, cols)
}

func tooLarge(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Size() > editor.MaxHighlightBytes
}
