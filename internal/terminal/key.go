package terminal

import "unicode"

// Code identifies the kind of key.
type Code int

const (
	CodeNone Code = iota
	CodeRune
	CodeCtrl
	CodeEnter
	CodeTab
	CodeBackspace
	CodeEsc
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDn
	CodeDel
)

var codeNames = map[Code]string{
	CodeEnter:     "enter",
	CodeTab:       "tab",
	CodeBackspace: "backspace",
	CodeEsc:       "esc",
	CodeUp:        "up",
	CodeDown:      "down",
	CodeLeft:      "left",
	CodeRight:     "right",
	CodeHome:      "home",
	CodeEnd:       "end",
	CodePgUp:      "pgup",
	CodePgDn:      "pgdn",
	CodeDel:       "del",
}

// Key is one decoded keystroke. Rune is set for CodeRune (the typed
// character) and CodeCtrl (the lower-case key held with Ctrl).
type Key struct {
	Code Code
	Rune rune
}

func RuneKey(r rune) Key {
	return Key{Code: CodeRune, Rune: r}
}

func CtrlKey(r rune) Key {
	return Key{Code: CodeCtrl, Rune: unicode.ToLower(r)}
}

// IsNone reports a read that timed out without input.
func (k Key) IsNone() bool {
	return k.Code == CodeNone
}

// String returns the name used in keymaps: "ctrl+s", "up", "pgdn", or the
// character itself.
func (k Key) String() string {
	switch k.Code {
	case CodeNone:
		return ""
	case CodeRune:
		return string(k.Rune)
	case CodeCtrl:
		return "ctrl+" + string(k.Rune)
	}
	return codeNames[k.Code]
}
