package terminal

import (
	"errors"
	"io"
	"unicode/utf8"
)

const esc = 0x1b

// Decoder turns the byte stream of a raw-mode terminal into keys. A read
// returning no bytes is a timeout: the decoder reports CodeNone, or a lone
// Esc when it was in the middle of an escape sequence.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// readByte returns ok=false on timeout.
func (d *Decoder) readByte() (b byte, ok bool, err error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, err
}

// ReadKey reads the next key.
func (d *Decoder) ReadKey() (Key, error) {
	b, ok, err := d.readByte()
	if err != nil || !ok {
		return Key{}, err
	}
	switch {
	case b == esc:
		return d.escape()
	case b == '\r' || b == '\n':
		return Key{Code: CodeEnter}, nil
	case b == '\t':
		return Key{Code: CodeTab}, nil
	case b == 0x7f:
		return Key{Code: CodeBackspace}, nil
	case b < 0x20:
		return CtrlKey(rune(b) + '@'), nil
	case b < utf8.RuneSelf:
		return RuneKey(rune(b)), nil
	}
	return d.readUTF8(b)
}

func (d *Decoder) escape() (Key, error) {
	b, ok, err := d.readByte()
	if err != nil || !ok {
		return Key{Code: CodeEsc}, err
	}
	switch b {
	case '[':
		return d.csi()
	case 'O':
		b, ok, err := d.readByte()
		if err != nil || !ok {
			return Key{Code: CodeEsc}, err
		}
		switch b {
		case 'H':
			return Key{Code: CodeHome}, nil
		case 'F':
			return Key{Code: CodeEnd}, nil
		}
	}
	return Key{Code: CodeEsc}, nil
}

func (d *Decoder) csi() (Key, error) {
	b, ok, err := d.readByte()
	if err != nil || !ok {
		return Key{Code: CodeEsc}, err
	}
	if b >= '0' && b <= '9' {
		t, ok, err := d.readByte()
		if err != nil || !ok {
			return Key{Code: CodeEsc}, err
		}
		if t != '~' {
			return Key{Code: CodeEsc}, nil
		}
		switch b {
		case '1', '7':
			return Key{Code: CodeHome}, nil
		case '3':
			return Key{Code: CodeDel}, nil
		case '4', '8':
			return Key{Code: CodeEnd}, nil
		case '5':
			return Key{Code: CodePgUp}, nil
		case '6':
			return Key{Code: CodePgDn}, nil
		}
		return Key{Code: CodeEsc}, nil
	}
	switch b {
	case 'A':
		return Key{Code: CodeUp}, nil
	case 'B':
		return Key{Code: CodeDown}, nil
	case 'C':
		return Key{Code: CodeRight}, nil
	case 'D':
		return Key{Code: CodeLeft}, nil
	case 'H':
		return Key{Code: CodeHome}, nil
	case 'F':
		return Key{Code: CodeEnd}, nil
	}
	return Key{Code: CodeEsc}, nil
}

// readUTF8 completes a multi-byte character starting with lead. Malformed input
// yields utf8.RuneError.
func (d *Decoder) readUTF8(lead byte) (Key, error) {
	var n int
	switch {
	case lead&0xe0 == 0xc0:
		n = 2
	case lead&0xf0 == 0xe0:
		n = 3
	case lead&0xf8 == 0xf0:
		n = 4
	default:
		return RuneKey(utf8.RuneError), nil
	}
	p := make([]byte, 1, n)
	p[0] = lead
	for len(p) < n {
		b, ok, err := d.readByte()
		if err != nil {
			return Key{}, err
		}
		if !ok {
			break
		}
		p = append(p, b)
	}
	r, _ := utf8.DecodeRune(p)
	return RuneKey(r), nil
}
