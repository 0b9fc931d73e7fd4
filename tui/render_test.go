package tui

import (
	"testing"

	"github.com/joeycumines/go-asynctui/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFrameFirstRenderWritesEverything(t *testing.T) {
	var state renderState
	out := renderFrame(&state, []string{"one", "two"}, 80)
	require.NotNil(t, out)
	s := string(out)
	assert.Contains(t, s, "one")
	assert.Contains(t, s, "two")
	assert.Contains(t, s, syncOutputBegin)
	assert.Contains(t, s, syncOutputEnd)
	assert.Equal(t, 2, state.hardwareCursorRow)
}

func TestRenderFrameIdenticalContentProducesNoOutput(t *testing.T) {
	var state renderState
	renderFrame(&state, []string{"same"}, 80)
	out := renderFrame(&state, []string{"same"}, 80)
	assert.Nil(t, out)
}

func TestRenderFrameWidthChangeClearsScrollback(t *testing.T) {
	var state renderState
	renderFrame(&state, []string{"line"}, 80)
	out := renderFrame(&state, []string{"line"}, 40)
	require.NotNil(t, out)
	assert.Contains(t, string(out), clearScrollback)
}

func TestRenderFrameDifferentialOnlyTouchesChangedRows(t *testing.T) {
	var state renderState
	renderFrame(&state, []string{"a", "b", "c"}, 80)
	out := renderFrame(&state, []string{"a", "B", "c"}, 80)
	require.NotNil(t, out)
	s := string(out)
	assert.Contains(t, s, "B")
}

func TestFirstLastDiffDetectsRangeAndGrowth(t *testing.T) {
	first, last, changed := firstLastDiff([]string{"a", "b", "c"}, []string{"a", "x", "c"})
	assert.True(t, changed)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, last)

	first, last, changed = firstLastDiff([]string{"a"}, []string{"a", "b"})
	assert.True(t, changed)
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, last)

	_, _, changed = firstLastDiff([]string{"a", "b"}, []string{"a", "b"})
	assert.False(t, changed)
}

func TestStopCursorAdjustMovesDownToLogicalRow(t *testing.T) {
	state := renderState{cursorRow: 5, hardwareCursorRow: 2}
	adjust := stopCursorAdjust(&state)
	assert.Equal(t, cursorDown(3), string(adjust))

	state = renderState{cursorRow: 2, hardwareCursorRow: 2}
	assert.Nil(t, stopCursorAdjust(&state))
}

func TestComposeOverlaysSplicesVisibleEntriesOnly(t *testing.T) {
	base := []string{"0123456789", "0123456789"}
	var stack []*overlayEntry
	stack, handle := pushOverlay(stack, component.NewText("XX", 0, 0), OverlayOptions{Width: 4, Anchor: AnchorTopLeft}, 0, false)

	out := composeOverlays(base, stack, 10)
	assert.Contains(t, out[0], "XX")

	handle.Hide()
	out = composeOverlays(base, stack, 10)
	assert.Equal(t, base, out)
}

func TestOverlayPositionAnchorsToEachCorner(t *testing.T) {
	row, col := overlayPosition(OverlayOptions{Anchor: AnchorTopLeft}, 80, 24, 10, 3)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)

	row, col = overlayPosition(OverlayOptions{Anchor: AnchorTopRight}, 80, 24, 10, 3)
	assert.Equal(t, 0, row)
	assert.Equal(t, 70, col)

	row, col = overlayPosition(OverlayOptions{Anchor: AnchorBottomLeft}, 80, 24, 10, 3)
	assert.Equal(t, 21, row)
	assert.Equal(t, 0, col)

	row, col = overlayPosition(OverlayOptions{Anchor: AnchorBottomRight}, 80, 24, 10, 3)
	assert.Equal(t, 21, row)
	assert.Equal(t, 70, col)
}

func TestOverlayPositionClampsNegativeToZero(t *testing.T) {
	row, col := overlayPosition(OverlayOptions{Anchor: AnchorTopLeft, OffsetRow: -5, OffsetCol: -5}, 80, 24, 10, 3)
	assert.Equal(t, 0, row)
	assert.Equal(t, 0, col)
}
