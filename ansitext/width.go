package ansitext

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const tabWidth = 3

// VisibleColumns returns the column width of s after stripping escape
// sequences, using the Unicode East-Asian-Width column rule for every
// character except TAB, which is a fixed 3-column convention.
func VisibleColumns(s string) int {
	stripped := StripEscapes(s)
	width := 0
	for _, r := range stripped {
		if r == '\t' {
			width += tabWidth
			continue
		}
		width += runewidth.RuneWidth(r)
	}
	return width
}

// graphemeWidth returns the column width of a single grapheme cluster,
// applying the TAB override.
func graphemeWidth(g string) int {
	if g == "\t" {
		return tabWidth
	}
	return runewidth.StringWidth(g)
}

// Truncate returns a prefix of s whose visible width plus the visible
// width of ellipsis is <= maxColumns, appending ellipsis if truncation
// occurred. ANSI sequences pass through without contributing to width;
// grapheme clusters are never split. If maxColumns is smaller than the
// ellipsis width, the result has visible width 0 (no ellipsis either).
func Truncate(s string, maxColumns int, ellipsis string) string {
	if VisibleColumns(s) <= maxColumns {
		return s
	}

	ellipsisWidth := VisibleColumns(ellipsis)
	contentBudget := maxColumns - ellipsisWidth
	if contentBudget < 0 {
		contentBudget = 0
	}

	var b []byte
	width := 0
	i := 0
	for i < len(s) {
		if s[i] == esc {
			if seq, ok := ExtractEscape(s, i); ok {
				b = append(b, seq...)
				i += len(seq)
				continue
			}
		}

		g, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		if g == "" {
			break
		}
		gw := graphemeWidth(g)
		if width+gw > contentBudget {
			break
		}
		b = append(b, g...)
		width += gw
		i += len(s[i:]) - len(rest)
	}

	if ellipsisWidth <= maxColumns {
		b = append(b, ellipsis...)
	}
	return string(b)
}

// SliceFromColumn returns the active-SGR-state prefix and the remaining
// text such that concatenating them produces a string whose visible width
// equals max(0, VisibleColumns(s)-col) and starts at visual column col.
// The returned prefix re-establishes whatever SGR sequence was last active
// at the cut point, so splicing the remainder into another line preserves
// styling.
func SliceFromColumn(s string, col int) (activePrefix string, remainder string) {
	if col <= 0 {
		return "", s
	}

	var lastSGR string
	width := 0
	i := 0
	for i < len(s) {
		if s[i] == esc {
			if seq, ok := ExtractEscape(s, i); ok {
				lastSGR = seq
				i += len(seq)
				continue
			}
		}
		g, rest, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
		if g == "" {
			break
		}
		gw := graphemeWidth(g)
		if width+gw > col {
			// col lands inside this grapheme cluster: treat the whole
			// cluster as past the cut (never split a grapheme).
			return lastSGR, s[i:]
		}
		width += gw
		i += len(s[i:]) - len(rest)
		if width == col {
			return lastSGR, s[i:]
		}
	}
	return lastSGR, ""
}
