// Package ansitext provides ANSI-escape-aware string measurement and
// manipulation: extracting and stripping escape sequences, measuring
// visible column width per Unicode East-Asian-Width rules, truncating and
// word-wrapping without splitting a grapheme cluster or losing active SGR
// state, and slicing a styled string starting at an arbitrary visual
// column.
//
// Every function treats escape sequences as zero-width and opaque: they
// pass through truncation and wrapping untouched and never contribute to a
// width calculation. Tabs are a fixed-width convention, not a terminal
// stop: three columns, always.
package ansitext
