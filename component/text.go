package component

import (
	"strings"

	"github.com/joeycumines/go-asynctui/ansitext"
)

// Text word-wraps its content to width−2·padX, pads rows to full width,
// surrounds with padY empty rows, and caches the last (width, lines)
// pair so repeated renders at an unchanged width are free. Grounded on
// original_source/crates/tau-tui/src/components/text.rs.
type Text struct {
	text string
	padX int
	padY int

	cacheWidth int
	cacheLines []string
	cached     bool
}

// NewText returns a Text rendering s with the given horizontal/vertical
// padding.
func NewText(s string, padX, padY int) *Text {
	return &Text{text: s, padX: padX, padY: padY}
}

// SetText replaces the content, invalidating the render cache if it
// actually changed.
func (t *Text) SetText(s string) {
	if t.text == s {
		return
	}
	t.text = s
	t.cached = false
}

func (t *Text) Invalidate() { t.cached = false }

func (t *Text) HandleInput(KeyEvent) {}

func (t *Text) Render(columnBudget int) []string {
	if t.cached && t.cacheWidth == columnBudget {
		return t.cacheLines
	}
	lines := t.renderInner(columnBudget)
	t.cacheWidth = columnBudget
	t.cacheLines = lines
	t.cached = true
	return lines
}

func (t *Text) renderInner(fullWidth int) []string {
	if t.text == "" {
		return nil
	}
	innerWidth := fullWidth - 2*t.padX
	if innerWidth <= 0 {
		return nil
	}

	wrapped := ansitext.Wrap(t.text, innerWidth)
	padLeft := strings.Repeat(" ", t.padX)

	var lines []string
	for i := 0; i < t.padY; i++ {
		lines = append(lines, "")
	}
	for _, line := range wrapped {
		visWidth := ansitext.VisibleColumns(line)
		rightPad := fullWidth - t.padX - visWidth
		if rightPad < 0 {
			rightPad = 0
		}
		lines = append(lines, padLeft+line+strings.Repeat(" ", rightPad))
	}
	for i := 0; i < t.padY; i++ {
		lines = append(lines, "")
	}
	return lines
}
