package tui

import (
	"unicode/utf8"

	"github.com/joeycumines/go-asynctui/component"
)

// decodeKey turns one read of raw terminal bytes into a KeyEvent. Grounded
// on the teacher's termtest/key.go reverse mapping (friendly key name →
// ANSI byte sequence) — this is the inverse direction, recognizing the
// same sequences coming from a real terminal.
func decodeKey(b []byte) component.KeyEvent {
	switch string(b) {
	case "\r", "\n":
		return component.KeyEvent{Key: component.KeyEnter}
	case "\t":
		return component.KeyEvent{Key: component.KeyTab}
	case "\x7f", "\x08":
		return component.KeyEvent{Key: component.KeyBackspace}
	case "\x1b":
		return component.KeyEvent{Key: component.KeyEsc}
	case "\x1b[A", "\x1bOA":
		return component.KeyEvent{Key: component.KeyUp}
	case "\x1b[B", "\x1bOB":
		return component.KeyEvent{Key: component.KeyDown}
	case "\x1b[C", "\x1bOC":
		return component.KeyEvent{Key: component.KeyRight}
	case "\x1b[D", "\x1bOD":
		return component.KeyEvent{Key: component.KeyLeft}
	case "\x1b[1;5A":
		return component.KeyEvent{Key: component.KeyUp, Ctrl: true}
	case "\x1b[1;5B":
		return component.KeyEvent{Key: component.KeyDown, Ctrl: true}
	case "\x1b[1;5C":
		return component.KeyEvent{Key: component.KeyRight, Ctrl: true}
	case "\x1b[1;5D":
		return component.KeyEvent{Key: component.KeyLeft, Ctrl: true}
	case "\x1b[H", "\x1b[1~":
		return component.KeyEvent{Key: component.KeyHome}
	case "\x1b[F", "\x1b[4~":
		return component.KeyEvent{Key: component.KeyEnd}
	case "\x1b[3~":
		return component.KeyEvent{Key: component.KeyDelete}
	case "\x17": // ctrl+w — the common terminal encoding for ctrl+backspace
		return component.KeyEvent{Key: component.KeyBackspace, Ctrl: true}
	case "\x15": // ctrl+u
		return component.KeyEvent{Key: component.KeyChar, Rune: 'u', Ctrl: true}
	case "\x0b": // ctrl+k
		return component.KeyEvent{Key: component.KeyChar, Rune: 'k', Ctrl: true}
	}

	r, _ := utf8.DecodeRune(b)
	if r >= 0x01 && r <= 0x1a {
		// Other C0 control bytes: ctrl+<letter>.
		return component.KeyEvent{Key: component.KeyChar, Rune: 'a' + (r - 1), Ctrl: true}
	}
	if r == utf8.RuneError {
		return component.KeyEvent{}
	}
	return component.KeyEvent{Key: component.KeyChar, Rune: r}
}
