package tui

import (
	"testing"

	"github.com/joeycumines/go-asynctui/component"
	"github.com/stretchr/testify/assert"
)

func TestDecodeKeyNamedKeys(t *testing.T) {
	cases := map[string]component.Key{
		"\r":     component.KeyEnter,
		"\n":     component.KeyEnter,
		"\t":     component.KeyTab,
		"\x7f":   component.KeyBackspace,
		"\x1b":   component.KeyEsc,
		"\x1b[A": component.KeyUp,
		"\x1b[B": component.KeyDown,
		"\x1b[C": component.KeyRight,
		"\x1b[D": component.KeyLeft,
		"\x1b[3~": component.KeyDelete,
		"\x1b[H": component.KeyHome,
		"\x1b[F": component.KeyEnd,
	}
	for seq, want := range cases {
		got := decodeKey([]byte(seq))
		assert.Equal(t, want, got.Key, "sequence %q", seq)
	}
}

func TestDecodeKeyCtrlArrows(t *testing.T) {
	ev := decodeKey([]byte("\x1b[1;5C"))
	assert.Equal(t, component.KeyRight, ev.Key)
	assert.True(t, ev.Ctrl)
}

func TestDecodeKeyPlainRune(t *testing.T) {
	ev := decodeKey([]byte("q"))
	assert.Equal(t, component.KeyChar, ev.Key)
	assert.Equal(t, 'q', ev.Rune)
	assert.False(t, ev.Ctrl)
}

func TestDecodeKeyMultibyteRune(t *testing.T) {
	ev := decodeKey([]byte("é"))
	assert.Equal(t, component.KeyChar, ev.Key)
	assert.Equal(t, 'é', ev.Rune)
}

func TestDecodeKeyControlLetterIsCtrlModifier(t *testing.T) {
	ev := decodeKey([]byte{0x03}) // ctrl+c
	assert.Equal(t, component.KeyChar, ev.Key)
	assert.Equal(t, 'c', ev.Rune)
	assert.True(t, ev.Ctrl)
}

func TestDecodeKeyCtrlUAndCtrlK(t *testing.T) {
	ev := decodeKey([]byte{0x15})
	assert.Equal(t, 'u', ev.Rune)
	assert.True(t, ev.Ctrl)

	ev = decodeKey([]byte{0x0b})
	assert.Equal(t, 'k', ev.Rune)
	assert.True(t, ev.Ctrl)
}
