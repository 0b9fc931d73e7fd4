package component

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStartsEmptyAndFocused(t *testing.T) {
	in := NewInput()
	assert.Equal(t, "", in.Value())
	lines := in.Render(20)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "> "))
}

func TestInputInsertCharAppendsAtCursor(t *testing.T) {
	in := NewInput()
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'h'})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'i'})
	assert.Equal(t, "hi", in.Value())
}

func TestInputSetValueMovesCursorToEnd(t *testing.T) {
	in := NewInput()
	in.SetValue("hello")
	in.HandleInput(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "hell", in.Value())
}

func TestInputLeftRightMoveCursorWithoutMutating(t *testing.T) {
	in := NewInput()
	in.SetValue("abc")
	in.HandleInput(KeyEvent{Key: KeyLeft})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'X'})
	assert.Equal(t, "abXc", in.Value())
}

func TestInputHomeEndMoveCursorToEdges(t *testing.T) {
	in := NewInput()
	in.SetValue("abc")
	in.HandleInput(KeyEvent{Key: KeyHome})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'X'})
	assert.Equal(t, "Xabc", in.Value())

	in.HandleInput(KeyEvent{Key: KeyEnd})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'Y'})
	assert.Equal(t, "XabcY", in.Value())
}

func TestInputBackspaceDeletesBeforeCursor(t *testing.T) {
	in := NewInput()
	in.SetValue("abc")
	in.HandleInput(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "ab", in.Value())
}

func TestInputBackspaceAtStartIsNoop(t *testing.T) {
	in := NewInput()
	in.HandleInput(KeyEvent{Key: KeyBackspace})
	assert.Equal(t, "", in.Value())
}

func TestInputDeleteRemovesAfterCursor(t *testing.T) {
	in := NewInput()
	in.SetValue("abc")
	in.HandleInput(KeyEvent{Key: KeyHome})
	in.HandleInput(KeyEvent{Key: KeyDelete})
	assert.Equal(t, "bc", in.Value())
}

func TestInputCtrlLeftRightMoveByWord(t *testing.T) {
	in := NewInput()
	in.SetValue("foo bar baz")
	in.HandleInput(KeyEvent{Key: KeyLeft, Ctrl: true})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'X'})
	assert.Equal(t, "foo bar Xbaz", in.Value())
}

func TestInputCtrlBackspaceDeletesWordBackward(t *testing.T) {
	in := NewInput()
	in.SetValue("foo bar baz")
	in.HandleInput(KeyEvent{Key: KeyBackspace, Ctrl: true})
	assert.Equal(t, "foo bar ", in.Value())
}

func TestInputCtrlUDeletesToStart(t *testing.T) {
	in := NewInput()
	in.SetValue("hello")
	in.HandleInput(KeyEvent{Key: KeyLeft})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'u', Ctrl: true})
	assert.Equal(t, "o", in.Value())
}

func TestInputCtrlKDeletesToEnd(t *testing.T) {
	in := NewInput()
	in.SetValue("hello")
	in.HandleInput(KeyEvent{Key: KeyHome})
	in.HandleInput(KeyEvent{Key: KeyRight})
	in.HandleInput(KeyEvent{Key: KeyChar, Rune: 'k', Ctrl: true})
	assert.Equal(t, "h", in.Value())
}

func TestInputEnterInvokesOnSubmit(t *testing.T) {
	in := NewInput()
	in.SetValue("query")
	var got string
	in.OnSubmit = func(v string) { got = v }
	in.HandleInput(KeyEvent{Key: KeyEnter})
	assert.Equal(t, "query", got)
}

func TestInputEscInvokesOnEscape(t *testing.T) {
	in := NewInput()
	called := false
	in.OnEscape = func() { called = true }
	in.HandleInput(KeyEvent{Key: KeyEsc})
	assert.True(t, called)
}

func TestInputFocusedRendersInverseCursor(t *testing.T) {
	in := NewInput()
	in.SetValue("hi")
	in.SetFocused(true)
	lines := in.Render(20)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "\x1b[7m")
}

func TestInputUnfocusedRendersNoCursor(t *testing.T) {
	in := NewInput()
	in.SetValue("hi")
	in.SetFocused(false)
	lines := in.Render(20)
	require.Len(t, lines, 1)
	assert.NotContains(t, lines[0], "\x1b[7m")
}

func TestInputNarrowWidthRendersBlank(t *testing.T) {
	in := NewInput()
	in.SetValue("hi")
	lines := in.Render(1)
	require.Len(t, lines, 1)
	assert.Equal(t, " ", lines[0])
}

func TestComputeScrollKeepsCursorVisible(t *testing.T) {
	chars := []rune("abcdefghij")
	offset := computeScroll(9, 0, 4, chars)
	assert.LessOrEqual(t, 9-offset, 4)
}

func TestInputIsValidComponent(t *testing.T) {
	var _ Component = NewInput()
}
