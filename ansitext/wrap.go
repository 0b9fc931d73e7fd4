package ansitext

import (
	"unicode"

	"github.com/rivo/uniseg"
)

const sgrReset = "\x1b[0m"

// wrapToken is either an escape sequence (width 0, never split) or a single
// grapheme cluster of visible text.
type wrapToken struct {
	text   string
	width  int
	isEsc  bool
}

func tokenizeForWrap(s string) []wrapToken {
	var toks []wrapToken
	i := 0
	for i < len(s) {
		if s[i] == esc {
			if seq, ok := ExtractEscape(s, i); ok {
				toks = append(toks, wrapToken{text: seq, isEsc: true})
				i += len(seq)
				continue
			}
		}
		g, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		if g == "" {
			break
		}
		toks = append(toks, wrapToken{text: g, width: graphemeWidth(g)})
		i += len(s[i:]) - len(rest)
	}
	return toks
}

func isWhitespaceGrapheme(g string) bool {
	for _, r := range g {
		return unicode.IsSpace(r)
	}
	return false
}

// Wrap produces a sequence of lines of visible width <= columns, breaking
// at the last whitespace within the budget when possible, otherwise
// hard-breaking. After any break, the active SGR state (the last escape
// sequence seen before the break) is re-emitted so the next line displays
// in the same style; every produced line ends with an explicit SGR reset.
// A single grapheme cluster wider than columns is placed on a line of its
// own, and that line is wider than columns.
func Wrap(s string, columns int) []string {
	if columns <= 0 {
		return nil
	}

	toks := tokenizeForWrap(s)
	if len(toks) == 0 {
		return nil
	}

	// escAt[k] = last escape sequence among toks[0..k] inclusive, "" if none.
	escAt := make([]string, len(toks))
	last := ""
	for k, t := range toks {
		if t.isEsc {
			last = t.text
		}
		escAt[k] = last
	}
	leadingSGR := func(i int) string {
		if i <= 0 {
			return ""
		}
		return escAt[i-1]
	}

	var lines []string
	i := 0
	for i < len(toks) {
		var buf []byte
		if p := leadingSGR(i); p != "" {
			buf = append(buf, p...)
		}
		lineWidth := 0
		lastBreak := -1 // index within toks (absolute) of the whitespace break candidate
		textSeen := false
		j := i
		forcedNewline := false
		for j < len(toks) {
			t := toks[j]
			if t.isEsc {
				buf = append(buf, t.text...)
				j++
				continue
			}
			if t.text == "\n" {
				// An explicit newline always forces a break here,
				// regardless of remaining width budget; the newline
				// itself is consumed, not rendered.
				forcedNewline = true
				j++
				break
			}
			if lineWidth+t.width > columns {
				if !textSeen {
					// Can't fit even a single grapheme: force it onto this
					// line alone rather than looping forever.
					buf = append(buf, t.text...)
					lineWidth += t.width
					j++
				}
				break
			}
			buf = append(buf, t.text...)
			lineWidth += t.width
			textSeen = true
			if isWhitespaceGrapheme(t.text) {
				lastBreak = j
			}
			j++
		}

		if forcedNewline {
			lines = append(lines, string(buf)+sgrReset)
			i = j
			continue
		}

		if j >= len(toks) {
			lines = append(lines, string(buf)+sgrReset)
			i = j
			continue
		}

		if lastBreak < 0 {
			// Hard break: everything scanned so far (buf) forms the line.
			lines = append(lines, string(buf)+sgrReset)
			i = j
			continue
		}

		// Soft break at lastBreak: rebuild buf truncated to content before
		// the whitespace token, dropping the whitespace itself.
		var trimmed []byte
		if p := leadingSGR(i); p != "" {
			trimmed = append(trimmed, p...)
		}
		for k := i; k < lastBreak; k++ {
			trimmed = append(trimmed, toks[k].text...)
		}
		lines = append(lines, string(trimmed)+sgrReset)
		i = lastBreak + 1
	}

	return lines
}
