package ansitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEscape(t *testing.T) {
	cases := []struct {
		name    string
		s       string
		pos     int
		wantSeq string
		wantOK  bool
	}{
		{"non-escape", "hello", 0, "", false},
		{"out of bounds", "hi", 10, "", false},
		{"mid text", "abc", 1, "", false},
		{"sgr", "\x1b[31m", 0, "\x1b[31m", true},
		{"sgr reset", "\x1b[0m", 0, "\x1b[0m", true},
		{"complex sgr", "\x1b[38;2;255;128;0m", 0, "\x1b[38;2;255;128;0m", true},
		{"cursor up", "\x1b[10A", 0, "\x1b[10A", true},
		{"clear line", "\x1b[2K", 0, "\x1b[2K", true},
		{"at offset", "hi\x1b[31mred", 2, "\x1b[31m", true},
		{"osc bel", "\x1b]8;;https://example.com\x07", 0, "\x1b]8;;https://example.com\x07", true},
		{"osc st", "\x1b]0;title\x1b\\", 0, "\x1b]0;title\x1b\\", true},
		{"apc", "\x1b_data\x07", 0, "\x1b_data\x07", true},
		{"unterminated csi", "\x1b[31", 0, "", false},
		{"unterminated osc", "\x1b]8;;url", 0, "", false},
		{"bare esc", "\x1b", 0, "", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			seq, ok := ExtractEscape(c.s, c.pos)
			assert.Equal(t, c.wantOK, ok)
			assert.Equal(t, c.wantSeq, seq)
		})
	}
}

func TestStripEscapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "hello world", "hello world"},
		{"empty string", "", ""},
		{"sgr color", "\x1b[31mhello\x1b[0m", "hello"},
		{"complex sgr", "\x1b[1;4;38;5;196mtext\x1b[0m", "text"},
		{"cursor movement", "\x1b[5G\x1b[2Khi", "hi"},
		{"osc hyperlink", "\x1b]8;;https://example.com\x07click here\x1b]8;;\x07", "click here"},
		{"osc st terminator", "\x1b]0;window title\x1b\\visible", "visible"},
		{"apc", "\x1b_some application data\x07visible", "visible"},
		{"preserves unicode", "\x1b[31m你好\x1b[0m", "你好"},
		{"multiple sequences", "\x1b[1mbold\x1b[0m and \x1b[4munderline\x1b[0m", "bold and underline"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, StripEscapes(c.in))
		})
	}
}

func TestStripEscapesIdempotent(t *testing.T) {
	samples := []string{
		"hello",
		"\x1b[31mhello\x1b[0m",
		"\x1b]8;;https://example.com\x07click\x1b]8;;\x07",
		"你好\x1b[1m世界",
	}
	for _, s := range samples {
		once := StripEscapes(s)
		twice := StripEscapes(once)
		assert.Equal(t, once, twice)
		assert.Equal(t, VisibleColumns(s), VisibleColumns(once))
	}
}
