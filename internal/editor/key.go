package editor

import "fmt"

// Key is an abstract key event. Printable bytes and control characters are
// their own value; navigation keys live above the byte range.
type Key int

const (
	KeyBackspace Key = 127
	KeyEscape    Key = 0x1b
	KeyEnter     Key = '\r'
)

const (
	KeyLeft Key = iota + 1000
	KeyRight
	KeyUp
	KeyDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl returns the key produced by holding control with c.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsPrintable reports whether k inserts a visible byte.
func (k Key) IsPrintable() bool {
	return k >= ' ' && k < 127
}

// IsDigit reports whether k is '0'..'9'.
func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

// String returns the registry form of k: the byte itself for printable keys,
// "<name>" for everything else.
func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "<escape>"
	case KeyEnter:
		return "<enter>"
	case KeyBackspace:
		return "<backspace>"
	case KeyDelete:
		return "<delete>"
	case KeyLeft:
		return "<left>"
	case KeyRight:
		return "<right>"
	case KeyUp:
		return "<up>"
	case KeyDown:
		return "<down>"
	case KeyHome:
		return "<home>"
	case KeyEnd:
		return "<end>"
	case KeyPageUp:
		return "<pgup>"
	case KeyPageDown:
		return "<pgdown>"
	}
	if k.IsPrintable() {
		return string(rune(k))
	}
	if k >= 0 && k < ' ' {
		return fmt.Sprintf("<ctrl+%c>", byte(k)+'a'-1)
	}
	return fmt.Sprintf("<key%d>", int(k))
}
