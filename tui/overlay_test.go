package tui

import (
	"testing"

	"github.com/joeycumines/go-asynctui/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushOverlaySavesFocus(t *testing.T) {
	var stack []*overlayEntry
	stack, handle := pushOverlay(stack, component.NewText("x", 0, 0), OverlayOptions{}, 2, true)
	require.Len(t, stack, 1)
	assert.False(t, handle.Hidden())
	assert.Equal(t, 2, stack[0].savedFocus)
	assert.True(t, stack[0].hadSavedFocus)
}

func TestPopOverlayRestoresFocus(t *testing.T) {
	var stack []*overlayEntry
	stack, _ = pushOverlay(stack, component.NewText("x", 0, 0), OverlayOptions{}, 3, true)

	rest, focus, hasFocus, ok := popOverlay(stack)
	require.True(t, ok)
	assert.Len(t, rest, 0)
	assert.Equal(t, 3, focus)
	assert.True(t, hasFocus)
}

func TestPopOverlayOnEmptyStackReportsNotOK(t *testing.T) {
	rest, _, _, ok := popOverlay(nil)
	assert.False(t, ok)
	assert.Len(t, rest, 0)
}

func TestOverlayHandleHideShowToggleVisibility(t *testing.T) {
	var stack []*overlayEntry
	stack, handle := pushOverlay(stack, component.NewText("x", 0, 0), OverlayOptions{}, 0, false)

	assert.True(t, hasVisibleOverlay(stack))
	handle.Hide()
	assert.True(t, handle.Hidden())
	assert.False(t, hasVisibleOverlay(stack))
	handle.Show()
	assert.False(t, handle.Hidden())
	assert.True(t, hasVisibleOverlay(stack))
}

func TestTopmostVisibleSkipsHiddenEntries(t *testing.T) {
	var stack []*overlayEntry
	stack, first := pushOverlay(stack, component.NewText("first", 0, 0), OverlayOptions{}, 0, false)
	stack, _ = pushOverlay(stack, component.NewText("second", 0, 0), OverlayOptions{}, 0, false)

	stack[1].hidden.Store(true)
	top, ok := topmostVisible(stack)
	require.True(t, ok)
	assert.Equal(t, stack[0], top)

	first.Hide()
	_, ok = topmostVisible(stack)
	assert.False(t, ok)
}

func TestNilHandleIsSafeNoOp(t *testing.T) {
	var h OverlayHandle
	assert.False(t, h.Hidden())
	assert.NotPanics(t, func() {
		h.Hide()
		h.Show()
	})
}
