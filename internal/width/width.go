// Package width reports how many terminal columns text occupies.
package width

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Tab is the fixed display width of a tab character.
const Tab = 8

// cond is pinned so the result does not depend on the user's locale
// environment (RUNEWIDTH_EASTASIAN, LC_ALL...).
var cond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// printable lists the categories that have a defined width. Anything outside
// them is either a control code or unassigned.
var printable = []*unicode.RangeTable{
	unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Zs,
}

// Rune returns the display width of r. ok is false when r has no printable
// width (control codes, surrogates, unassigned code points).
func Rune(r rune) (w int, ok bool) {
	if r == '\t' {
		return Tab, true
	}
	if !utf8.ValidRune(r) || unicode.IsControl(r) {
		return 0, false
	}
	if !unicode.In(r, printable...) && !unicode.Is(unicode.Cf, r) {
		return 0, false
	}
	return cond.RuneWidth(r), true
}

// String sums Rune over s. It fails as soon as one rune is unrepresentable.
func String(s string) (int, bool) {
	total := 0
	for _, r := range s {
		w, ok := Rune(r)
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

// Runes is String for a rune slice.
func Runes(rs []rune) (int, bool) {
	total := 0
	for _, r := range rs {
		w, ok := Rune(r)
		if !ok {
			return 0, false
		}
		total += w
	}
	return total, true
}

// StringOrLen returns the display width of s, or its rune count when the
// width is unknown. The fallback is wrong for wide characters.
func StringOrLen(s string) int {
	if w, ok := String(s); ok {
		return w
	}
	return utf8.RuneCountInString(s)
}

// RunesOrLen is StringOrLen for a rune slice.
func RunesOrLen(rs []rune) int {
	if w, ok := Runes(rs); ok {
		return w
	}
	return len(rs)
}

// Layout returns the width used when placing r on screen: unrepresentable
// runes take one column.
func Layout(r rune) int {
	if w, ok := Rune(r); ok {
		return w
	}
	return 1
}

// LayoutRunes sums Layout over rs.
func LayoutRunes(rs []rune) int {
	total := 0
	for _, r := range rs {
		total += Layout(r)
	}
	return total
}

// CropRange returns the rune index range [from, to) of rs that fits in the
// display columns [start, start+width). A rune straddling either edge is
// left out.
func CropRange(rs []rune, start, width int) (from, to int) {
	if width < 0 {
		width = 0
	}
	end := start + width
	pos := 0
	from = len(rs)
	for i, r := range rs {
		if pos >= start {
			from = i
			break
		}
		pos += Layout(r)
	}
	to = from
	for to < len(rs) {
		w := Layout(rs[to])
		if pos+w > end {
			break
		}
		pos += w
		to++
	}
	return from, to
}

// Crop returns the part of s visible in the display columns
// [start, start+width).
func Crop(s string, start, width int) string {
	rs := []rune(s)
	from, to := CropRange(rs, start, width)
	return string(rs[from:to])
}
