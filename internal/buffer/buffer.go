// Package buffer holds the lines of the open file.
package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// TempSuffix is appended to the file name of the sibling file a save
// writes before renaming it over the target.
const TempSuffix = "~kirosave"

// Buffer is an ordered sequence of lines plus a count of unsaved edits.
type Buffer struct {
	lines [][]rune
	dirty int
}

func New(lines ...string) *Buffer {
	b := &Buffer{}
	for _, line := range lines {
		b.AppendLine(line)
	}
	return b
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 0
}

// Line returns the runes of line i. The slice is owned by the buffer.
func (b *Buffer) Line(i int) []rune {
	return b.lines[i]
}

// LineLen returns the length of line i in runes, or 0 past the end.
func (b *Buffer) LineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

// Lines returns a copy of the buffer contents.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Dirty returns the number of edits since the last successful save.
func (b *Buffer) Dirty() int {
	return b.dirty
}

// InsertLine inserts text before line index. index may equal Len.
func (b *Buffer) InsertLine(index int, text string) {
	if index < 0 || index > len(b.lines) {
		panic(fmt.Sprintf("buffer: insert line %d out of range [0,%d]", index, len(b.lines)))
	}
	b.insertRunes(index, []rune(text))
	b.dirty++
}

// AppendLine adds text as the last line. It is used while loading and does
// not count as an edit.
func (b *Buffer) AppendLine(text string) {
	b.lines = append(b.lines, []rune(text))
}

func (b *Buffer) insertRunes(index int, line []rune) {
	b.lines = append(b.lines, nil)
	copy(b.lines[index+1:], b.lines[index:])
	b.lines[index] = line
}

// InsertChar inserts ch at (row, col). Missing lines up to row are created
// and the line is padded with spaces up to col.
func (b *Buffer) InsertChar(row, col int, ch rune) {
	if row < 0 || col < 0 {
		panic(fmt.Sprintf("buffer: insert char at (%d,%d)", row, col))
	}
	for len(b.lines) <= row {
		b.AppendLine("")
	}
	line := b.lines[row]
	for len(line) < col {
		line = append(line, ' ')
	}
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = ch
	b.lines[row] = line
	b.dirty++
}

// SplitLine breaks line row at col and moves the remainder to a new line
// right after it. Past the end of the buffer it appends an empty line.
func (b *Buffer) SplitLine(row, col int) {
	if row >= len(b.lines) {
		b.AppendLine("")
		b.dirty++
		return
	}
	line := b.lines[row]
	if col > len(line) {
		col = len(line)
	}
	if col < 0 {
		col = 0
	}
	right := append([]rune(nil), line[col:]...)
	b.lines[row] = line[:col:col]
	b.insertRunes(row+1, right)
	b.dirty++
}

// DeleteChar removes the rune before (row, col). At column 0 the line is
// joined onto the previous one and joinCol is the column where the two
// halves meet. The start of the buffer and rows past the end are left
// untouched.
func (b *Buffer) DeleteChar(row, col int) (joinCol int, joined bool) {
	if row < 0 || row >= len(b.lines) {
		return 0, false
	}
	line := b.lines[row]
	if col > len(line) {
		col = len(line)
	}
	if col > 0 {
		copy(line[col-1:], line[col:])
		b.lines[row] = line[:len(line)-1]
		b.dirty++
		return 0, false
	}
	if row == 0 {
		return 0, false
	}
	prev := b.lines[row-1]
	joinCol = len(prev)
	b.lines[row-1] = append(prev, line...)
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	b.dirty++
	return joinCol, true
}

// Load replaces the buffer contents with the lines of r. Line terminators
// are \n or \r\n; a final terminator does not start another line.
func (b *Buffer) Load(r io.Reader) error {
	b.lines = nil
	br := bufio.NewReader(r)
	for {
		text, err := br.ReadString('\n')
		if text != "" {
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			b.AppendLine(text)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
	}
	b.dirty = 0
	return nil
}

// ReadFile loads path. A file that does not exist yet yields an empty
// buffer.
func (b *Buffer) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			b.lines = nil
			b.dirty = 0
			return nil
		}
		return err
	}
	defer f.Close()
	if err := b.Load(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// WriteTo writes every line followed by \n.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, line := range b.lines {
		m, err := bw.WriteString(string(line))
		n += int64(m)
		if err != nil {
			return n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// WriteFile saves the buffer to path through a temporary sibling file that
// is renamed over the target, so a failed write never truncates the
// original. The dirty counter is reset only once the rename succeeded.
func (b *Buffer) WriteFile(path string) (int64, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	tmp := filepath.Join(filepath.Dir(target), filepath.Base(target)+TempSuffix)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	n, err := b.WriteTo(f)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	b.dirty = 0
	return n, nil
}
