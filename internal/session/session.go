package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kobzarvs/kiro/internal/config"
)

// FileState stores where the cursor was in a file.
type FileState struct {
	CursorRow int
	CursorCol int
	ScrollY   int
	ScrollX   int
}

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	cursor_row INTEGER NOT NULL,
	cursor_col INTEGER NOT NULL,
	scroll_y   INTEGER NOT NULL,
	scroll_x   INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Manager handles session persistence. Writes are synchronous.
type Manager struct {
	db   *sql.DB
	path string
}

// NewManager opens the session database in the state directory.
func NewManager() (*Manager, error) {
	dir, err := config.StateDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "session.db"))
}

// Open opens or creates the session database at path.
func Open(path string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(1000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}
	return &Manager{db: db, path: path}, nil
}

func (m *Manager) Path() string {
	return m.path
}

// GetFileState returns the saved state for a file.
func (m *Manager) GetFileState(absPath string) (FileState, bool, error) {
	var s FileState
	err := m.db.QueryRow(
		"SELECT cursor_row, cursor_col, scroll_y, scroll_x FROM files WHERE path = ?",
		absPath,
	).Scan(&s.CursorRow, &s.CursorCol, &s.ScrollY, &s.ScrollX)
	if errors.Is(err, sql.ErrNoRows) {
		return FileState{}, false, nil
	}
	if err != nil {
		return FileState{}, false, err
	}
	return s, true, nil
}

// SetFileState updates the state for a file.
func (m *Manager) SetFileState(absPath string, s FileState) error {
	_, err := m.db.Exec(
		`INSERT INTO files (path, cursor_row, cursor_col, scroll_y, scroll_x, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			cursor_row = excluded.cursor_row,
			cursor_col = excluded.cursor_col,
			scroll_y = excluded.scroll_y,
			scroll_x = excluded.scroll_x,
			updated_at = excluded.updated_at`,
		absPath, s.CursorRow, s.CursorCol, s.ScrollY, s.ScrollX, time.Now().UnixNano(),
	)
	return err
}

// Forget drops the state of a file.
func (m *Manager) Forget(absPath string) error {
	_, err := m.db.Exec("DELETE FROM files WHERE path = ?", absPath)
	return err
}

func (m *Manager) Close() error {
	return m.db.Close()
}
