package component

import (
	"strings"

	"github.com/joeycumines/go-asynctui/ansitext"
)

const sgrReset = "\x1b[0m"

// PaddedBox wraps a Container of children with horizontal/vertical
// padding and an optional background SGR prefix. Grounded on
// original_source/crates/tau-tui/src/components/box_component.rs,
// including its richer-than-boolean background (an arbitrary SGR
// string, not just "has background").
type PaddedBox struct {
	*Container
	padX, padY int
	background string
	hasBG      bool
}

// NewPaddedBox returns an empty PaddedBox with the given padding.
func NewPaddedBox(padX, padY int) *PaddedBox {
	return &PaddedBox{Container: NewContainer(), padX: padX, padY: padY}
}

// SetBackground sets the raw ANSI SGR prefix (e.g. "\x1b[48;5;236m")
// wrapped around every produced line, including padding rows.
func (b *PaddedBox) SetBackground(sgr string) {
	b.background = sgr
	b.hasBG = true
}

func (b *PaddedBox) Render(fullWidth int) []string {
	if b.Container.Len() == 0 {
		return nil
	}
	innerWidth := fullWidth - 2*b.padX
	if innerWidth < 0 {
		innerWidth = 0
	}
	childLines := b.Container.Render(innerWidth)
	if len(childLines) == 0 {
		return nil
	}

	padLeft := strings.Repeat(" ", b.padX)
	bgStart, bgEnd := "", ""
	if b.hasBG {
		bgStart, bgEnd = b.background, sgrReset
	}

	emptyPadded := bgStart + strings.Repeat(" ", fullWidth) + bgEnd

	var lines []string
	for i := 0; i < b.padY; i++ {
		lines = append(lines, emptyPadded)
	}
	for _, line := range childLines {
		vis := ansitext.VisibleColumns(line)
		rightPad := fullWidth - b.padX - vis
		if rightPad < 0 {
			rightPad = 0
		}
		lines = append(lines, bgStart+padLeft+line+strings.Repeat(" ", rightPad)+bgEnd)
	}
	for i := 0; i < b.padY; i++ {
		lines = append(lines, emptyPadded)
	}
	return lines
}
