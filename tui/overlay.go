package tui

import (
	"sync/atomic"

	"github.com/joeycumines/go-asynctui/component"
)

// Anchor names the corner of the terminal an overlay's (row, column) is
// computed against before OffsetRow/OffsetCol are applied.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
)

// OverlayOptions configures how show_overlay positions and sizes an
// overlay, exactly spec.md §4.9's anchor + signed-offset model.
type OverlayOptions struct {
	Width     int
	MaxHeight int
	Anchor    Anchor
	OffsetRow int
	OffsetCol int
}

// OverlayHandle is returned by Engine.ShowOverlay. Hiding via the handle
// makes the entry invisible and removes it from input routing but leaves
// it on the stack until HideOverlay explicitly pops it — a
// reference-counted, interior-mutable cell per spec.md's design note,
// modeled as a pointer to a shared atomic.Bool rather than anything
// cyclic.
type OverlayHandle struct {
	hidden *atomic.Bool
}

// Hide marks the overlay invisible without removing it from the stack.
func (h OverlayHandle) Hide() {
	if h.hidden != nil {
		h.hidden.Store(true)
	}
}

// Show reverses Hide.
func (h OverlayHandle) Show() {
	if h.hidden != nil {
		h.hidden.Store(false)
	}
}

// Hidden reports the overlay's current visibility.
func (h OverlayHandle) Hidden() bool {
	return h.hidden != nil && h.hidden.Load()
}

type overlayEntry struct {
	component    component.Component
	options      OverlayOptions
	hidden       *atomic.Bool
	savedFocus   int
	hadSavedFocus bool
}

// pushOverlay appends a new overlay entry, saving the current focus so
// HideOverlay/popOverlay can restore it, and returns a handle over its
// hidden flag.
func pushOverlay(stack []*overlayEntry, comp component.Component, opts OverlayOptions, focus int, hasFocus bool) ([]*overlayEntry, OverlayHandle) {
	hidden := &atomic.Bool{}
	entry := &overlayEntry{
		component:     comp,
		options:       opts,
		hidden:        hidden,
		savedFocus:    focus,
		hadSavedFocus: hasFocus,
	}
	return append(stack, entry), OverlayHandle{hidden: hidden}
}

// popOverlay removes the topmost entry, reporting the focus it should be
// restored to.
func popOverlay(stack []*overlayEntry) (rest []*overlayEntry, restoreFocus int, hasFocus bool, ok bool) {
	if len(stack) == 0 {
		return stack, 0, false, false
	}
	last := stack[len(stack)-1]
	return stack[:len(stack)-1], last.savedFocus, last.hadSavedFocus, true
}

// topmostVisible returns the topmost non-hidden overlay, if any.
func topmostVisible(stack []*overlayEntry) (*overlayEntry, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if !stack[i].hidden.Load() {
			return stack[i], true
		}
	}
	return nil, false
}

// hasVisibleOverlay reports whether any non-hidden entry exists.
func hasVisibleOverlay(stack []*overlayEntry) bool {
	_, ok := topmostVisible(stack)
	return ok
}
