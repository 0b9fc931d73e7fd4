package component

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	inputPrompt      = "> "
	inputPromptWidth = 2
)

// Input is a single-line editable buffer with a "> " prompt, cursor,
// horizontal scrolling, and Emacs-ish editing keys. Grounded on
// original_source/crates/tau-tui/src/components/input.rs, including its
// compute_scroll/char_col_width/chars_col_width pure helpers.
type Input struct {
	buffer []rune
	cursor int // rune index
	focused bool
	scroll  int // rune index of first visible char after the prompt

	OnSubmit func(value string)
	OnEscape func()
}

// NewInput returns an empty, focused Input.
func NewInput() *Input {
	return &Input{focused: true}
}

// Value returns the current text content.
func (in *Input) Value() string { return string(in.buffer) }

// SetValue replaces the content and moves the cursor to the end.
func (in *Input) SetValue(s string) {
	in.buffer = []rune(s)
	in.cursor = len(in.buffer)
	in.scroll = 0
}

// SetFocused toggles whether the cursor is rendered.
func (in *Input) SetFocused(focused bool) { in.focused = focused }

func (in *Input) Invalidate() {}

func charColWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

func charsColWidth(rs []rune) int {
	total := 0
	for _, r := range rs {
		total += charColWidth(r)
	}
	return total
}

// computeScroll is the pure scroll-offset function: given the cursor's
// rune index, the current offset, the available columns, and the
// buffer, it returns the offset that keeps the cursor visible.
func computeScroll(cursor, currentOffset, available int, chars []rune) int {
	if available <= 0 {
		return 0
	}
	offset := currentOffset
	if offset > len(chars) {
		offset = len(chars)
	}
	if cursor < offset {
		offset = cursor
	}
	for {
		colsBefore := charsColWidth(chars[offset:cursor])
		cursorW := 1
		if cursor < len(chars) {
			if w := charColWidth(chars[cursor]); w > cursorW {
				cursorW = w
			}
		}
		if colsBefore+cursorW <= available {
			break
		}
		if offset < cursor {
			offset++
		} else {
			break
		}
	}
	return offset
}

func (in *Input) Render(width int) []string {
	if width <= inputPromptWidth {
		return []string{strings.Repeat(" ", max0(width))}
	}
	available := width - inputPromptWidth
	chars := in.buffer

	in.scroll = computeScroll(in.cursor, in.scroll, available, chars)
	scroll := in.scroll

	visibleEnd := scroll
	visCols := 0
	for visibleEnd < len(chars) {
		w := charColWidth(chars[visibleEnd])
		if visCols+w > available {
			break
		}
		visCols += w
		visibleEnd++
	}

	var b strings.Builder
	b.WriteString(inputPrompt)

	if in.focused {
		b.WriteString(string(chars[scroll:in.cursor]))

		cursorChar := " "
		if in.cursor < len(chars) {
			cursorChar = string(chars[in.cursor])
		}
		b.WriteString("\x1b[7m")
		b.WriteString(cursorChar)
		b.WriteString("\x1b[27m")

		afterStart := in.cursor + 1
		if afterStart > visibleEnd {
			afterStart = visibleEnd
		}
		if afterStart < visibleEnd {
			b.WriteString(string(chars[afterStart:visibleEnd]))
		}

		cursorExtra := 0
		if in.cursor >= len(chars) {
			cursorExtra = 1
		}
		contentCols := inputPromptWidth + visCols + cursorExtra
		pad := width - contentCols
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	} else {
		b.WriteString(string(chars[scroll:visibleEnd]))
		pad := width - inputPromptWidth - visCols
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}

	return []string{b.String()}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func (in *Input) HandleInput(event KeyEvent) {
	switch {
	case event.Key == KeyLeft && event.Ctrl:
		in.moveWordBackward()
	case event.Key == KeyRight && event.Ctrl:
		in.moveWordForward()
	case event.Key == KeyLeft:
		if in.cursor > 0 {
			in.cursor--
		}
	case event.Key == KeyRight:
		if in.cursor < len(in.buffer) {
			in.cursor++
		}
	case event.Key == KeyHome:
		in.cursor = 0
	case event.Key == KeyEnd:
		in.cursor = len(in.buffer)
	case event.Key == KeyBackspace && event.Ctrl:
		in.deleteWordBackward()
	case event.Key == KeyBackspace:
		in.deleteBackward()
	case event.Key == KeyDelete:
		in.deleteForward()
	case event.Key == KeyChar && event.Rune == 'u' && event.Ctrl:
		in.deleteToStart()
	case event.Key == KeyChar && event.Rune == 'k' && event.Ctrl:
		in.deleteToEnd()
	case event.Key == KeyChar && !event.Ctrl:
		in.insertChar(event.Rune)
	case event.Key == KeyEnter:
		if in.OnSubmit != nil {
			in.OnSubmit(string(in.buffer))
		}
	case event.Key == KeyEsc:
		if in.OnEscape != nil {
			in.OnEscape()
		}
	}

	if in.cursor > len(in.buffer) {
		in.cursor = len(in.buffer)
	}
}

func (in *Input) insertChar(r rune) {
	buf := make([]rune, 0, len(in.buffer)+1)
	buf = append(buf, in.buffer[:in.cursor]...)
	buf = append(buf, r)
	buf = append(buf, in.buffer[in.cursor:]...)
	in.buffer = buf
	in.cursor++
}

func (in *Input) deleteBackward() {
	if in.cursor == 0 {
		return
	}
	in.buffer = append(in.buffer[:in.cursor-1], in.buffer[in.cursor:]...)
	in.cursor--
}

func (in *Input) deleteForward() {
	if in.cursor >= len(in.buffer) {
		return
	}
	in.buffer = append(in.buffer[:in.cursor], in.buffer[in.cursor+1:]...)
}

func (in *Input) deleteWordBackward() {
	if in.cursor == 0 {
		return
	}
	old := in.cursor
	in.moveWordBackward()
	newPos := in.cursor
	in.buffer = append(in.buffer[:newPos], in.buffer[old:]...)
}

func (in *Input) deleteToStart() {
	in.buffer = in.buffer[in.cursor:]
	in.cursor = 0
}

func (in *Input) deleteToEnd() {
	in.buffer = in.buffer[:in.cursor]
}

func (in *Input) moveWordBackward() {
	pos := in.cursor
	for pos > 0 && in.buffer[pos-1] == ' ' {
		pos--
	}
	for pos > 0 && in.buffer[pos-1] != ' ' {
		pos--
	}
	in.cursor = pos
}

func (in *Input) moveWordForward() {
	pos := in.cursor
	count := len(in.buffer)
	for pos < count && in.buffer[pos] != ' ' {
		pos++
	}
	for pos < count && in.buffer[pos] == ' ' {
		pos++
	}
	in.cursor = pos
}
