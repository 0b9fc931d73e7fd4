//go:build unix

package terminal

import (
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOSDrivesRealPTY attaches terminal.OS to a real PTY, grounded on the
// teacher's termtest/console.go (github.com/creack/pty-backed harness),
// exercising the real raw-mode and window-size syscalls instead of a mock.
func TestOSDrivesRealPTY(t *testing.T) {
	ptm, pts, err := pty.Open()
	require.NoError(t, err)
	defer ptm.Close()
	defer pts.Close()

	require.NoError(t, pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}))

	term := NewOSWithFiles(pts, pts)

	require.NoError(t, term.Start())
	defer term.Stop()

	cols, rows := term.Size()
	assert.Equal(t, 80, cols)
	assert.Equal(t, 24, rows)

	n, err := term.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, term.Flush())

	require.NoError(t, term.Stop())
}
