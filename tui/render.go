package tui

import (
	"strconv"
	"strings"

	"github.com/joeycumines/go-asynctui/ansitext"
)

const (
	sgrReset          = "\x1b[0m"
	clearScrollback   = "\x1b[3J\x1b[2J\x1b[H"
	eraseInLine       = "\x1b[2K"
	syncOutputBegin   = "\x1b[?2026h"
	syncOutputEnd     = "\x1b[?2026l"
)

// renderState is the differential-render bookkeeping carried between
// frames, exactly spec.md §4.8's previous_lines/previous_width/cursor_row/
// hardware_cursor_row, grounded line-for-line on original_source's
// tau-tui/src/tui.rs TUI::render.
type renderState struct {
	previousLines     []string
	previousWidth     int
	cursorRow         int
	hardwareCursorRow int
}

func cursorUp(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + "A"
}

func cursorDown(n int) string {
	if n <= 0 {
		return ""
	}
	return "\x1b[" + strconv.Itoa(n) + "B"
}

// composeOverlays splices every non-hidden overlay into base, oldest to
// newest, per spec.md §4.8's overlay-compositing algorithm.
func composeOverlays(base []string, overlays []*overlayEntry, terminalWidth int) []string {
	lines := append([]string(nil), base...)
	for _, entry := range overlays {
		if entry.hidden.Load() {
			continue
		}
		lines = spliceOverlay(lines, entry, terminalWidth)
	}
	return lines
}

func spliceOverlay(base []string, entry *overlayEntry, terminalWidth int) []string {
	width := entry.options.Width
	if width <= 0 || width > terminalWidth {
		width = terminalWidth
	}
	overlayLines := entry.component.Render(width)
	if entry.options.MaxHeight > 0 && len(overlayLines) > entry.options.MaxHeight {
		overlayLines = overlayLines[:entry.options.MaxHeight]
	}
	if len(overlayLines) == 0 {
		return base
	}

	row, col := overlayPosition(entry.options, terminalWidth, len(base), width, len(overlayLines))

	for len(base) < row+len(overlayLines) {
		base = append(base, "")
	}

	for i, overlayLine := range overlayLines {
		base[row+i] = spliceLineAtColumn(base[row+i], overlayLine, col, width)
	}
	return base
}

func overlayPosition(opts OverlayOptions, terminalWidth, baseLineCount, overlayWidth, overlayHeight int) (row, col int) {
	switch opts.Anchor {
	case AnchorTopRight:
		col = terminalWidth - overlayWidth + opts.OffsetCol
		row = opts.OffsetRow
	case AnchorBottomLeft:
		col = opts.OffsetCol
		row = baseLineCount - overlayHeight + opts.OffsetRow
	case AnchorBottomRight:
		col = terminalWidth - overlayWidth + opts.OffsetCol
		row = baseLineCount - overlayHeight + opts.OffsetRow
	default: // AnchorTopLeft
		col = opts.OffsetCol
		row = opts.OffsetRow
	}
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return row, col
}

// spliceLineAtColumn emits the base prefix truncated to column, the
// overlay line, and the base suffix starting from column+overlayWidth,
// each boundary wrapped in an SGR reset so neither side's active style
// bleeds into the other.
func spliceLineAtColumn(baseLine, overlayLine string, column, overlayWidth int) string {
	prefix := ansitext.Truncate(baseLine, column, "")
	pad := column - ansitext.VisibleColumns(prefix)
	if pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}

	activePrefix, suffix := ansitext.SliceFromColumn(baseLine, column+overlayWidth)

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(sgrReset)
	b.WriteString(overlayLine)
	b.WriteString(sgrReset)
	b.WriteString(activePrefix)
	b.WriteString(suffix)
	return b.String()
}

// renderFrame computes the escape-sequence buffer for one frame, updating
// state in place. It returns nil if the frame produced no output (content
// byte-identical to the previous frame).
func renderFrame(state *renderState, lines []string, width int) []byte {
	var buf strings.Builder

	switch {
	case state.previousWidth == 0:
		writeFullFrame(&buf, lines)
		state.hardwareCursorRow = len(lines)

	case width != state.previousWidth:
		buf.WriteString(clearScrollback)
		writeFullFrame(&buf, lines)
		state.hardwareCursorRow = len(lines)

	default:
		first, last, changed := firstLastDiff(state.previousLines, lines)
		if changed {
			if state.hardwareCursorRow > first {
				buf.WriteString(cursorUp(state.hardwareCursorRow - first))
			} else if state.hardwareCursorRow < first {
				buf.WriteString(cursorDown(first - state.hardwareCursorRow))
			}
			buf.WriteByte('\r')

			for i := first; i <= last; i++ {
				buf.WriteString(eraseInLine)
				if i < len(lines) {
					buf.WriteString(lines[i])
					buf.WriteString(sgrReset)
					buf.WriteString("\r\n")
				} else {
					buf.WriteString("\r\n")
				}
			}

			cursorPos := last + 1
			if cursorPos > len(lines) {
				buf.WriteString(cursorUp(cursorPos - len(lines)))
				state.hardwareCursorRow = len(lines)
			} else {
				state.hardwareCursorRow = cursorPos
			}
		}
	}

	state.cursorRow = len(lines)
	state.previousLines = lines
	state.previousWidth = width

	if buf.Len() == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(buf.Len() + len(syncOutputBegin) + len(syncOutputEnd))
	out.WriteString(syncOutputBegin)
	out.WriteString(buf.String())
	out.WriteString(syncOutputEnd)
	return []byte(out.String())
}

func writeFullFrame(buf *strings.Builder, lines []string) {
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteString(sgrReset)
		buf.WriteString("\r\n")
	}
}

// firstLastDiff finds the first and last index at which old and next
// differ, treating an out-of-range index as distinct from any value.
func firstLastDiff(old, next []string) (first, last int, changed bool) {
	maxLen := len(old)
	if len(next) > maxLen {
		maxLen = len(next)
	}
	first, last = -1, -1
	for i := 0; i < maxLen; i++ {
		var o, n string
		var oOK, nOK bool
		if i < len(old) {
			o, oOK = old[i], true
		}
		if i < len(next) {
			n, nOK = next[i], true
		}
		if oOK != nOK || o != n {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last, first >= 0
}

// stopCursorAdjust returns the escape sequence needed to move the
// hardware cursor from its current row down to the logical cursor row
// (|L1|), so terminal output issued after Stop appears below the
// rendered region rather than inside it.
func stopCursorAdjust(state *renderState) []byte {
	if state.cursorRow <= state.hardwareCursorRow {
		return nil
	}
	return []byte(cursorDown(state.cursorRow - state.hardwareCursorRow))
}
