package terminal

import (
	"bufio"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
)

const (
	enterAltScreen = "\x1b[?1049h"
	leaveAltScreen = "\x1b[?1049l"
	hideCursorSeq  = "\x1b[?25l"
	showCursorSeq  = "\x1b[?25h"
)

// OS is the real terminal back-end: raw mode entry/exit is delegated to
// platformEnterRaw/platformSize (os_unix.go / os_windows.go), and output
// goes through mattn/go-colorable so ANSI sequences survive on a Windows
// console that hasn't opted into virtual terminal processing. Grounded on
// the teacher's prompt/term/term.go (sync.Once-guarded original-mode
// capture/restore) and prompt/reader_posix.go / reader_windows.go (raw
// mode entry per platform).
type OS struct {
	mu      sync.Mutex
	in      *os.File
	out     *bufio.Writer
	restore func() error
	started bool
}

// NewOS returns a terminal.OS driving the process's stdin/stdout.
func NewOS() *OS {
	return &OS{
		in:  os.Stdin,
		out: bufio.NewWriter(colorable.NewColorableStdout()),
	}
}

// NewOSWithFiles returns a terminal.OS driving the given files instead of
// the process's stdin/stdout — used by termtest-style integration tests
// that attach to a PTY rather than the process's own console.
func NewOSWithFiles(in, out *os.File) *OS {
	return &OS{
		in:  in,
		out: bufio.NewWriter(out),
	}
}

func (t *OS) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started {
		return nil
	}
	restore, err := platformEnterRaw(t.in.Fd())
	if err != nil {
		return err
	}
	t.restore = restore
	t.started = true
	t.out.WriteString(enterAltScreen)
	t.out.WriteString(hideCursorSeq)
	return t.out.Flush()
}

func (t *OS) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return nil
	}
	t.out.WriteString(showCursorSeq)
	t.out.WriteString(leaveAltScreen)
	flushErr := t.out.Flush()
	restoreErr := t.restore()
	t.started = false
	if restoreErr != nil {
		return restoreErr
	}
	return flushErr
}

// Read reads raw input bytes from the terminal's input file — used by the
// tui engine's bridging goroutine to turn the native byte stream into key
// events. Not part of the Terminal interface itself (spec.md §4.7 and
// §6's "internal interface to the OS or to a mock" deliberately omit
// reading), mirroring how the teacher keeps output (Renderer) and input
// (Reader) as separate concerns in prompt.Prompt.
func (t *OS) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *OS) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Write(p)
}

func (t *OS) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Flush()
}

func (t *OS) Size() (columns, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cols, rowCount, err := platformSize(t.in.Fd())
	if err != nil {
		return DefaultColumns, DefaultRows
	}
	return cols, rowCount
}

func (t *OS) ShowCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out.WriteString(showCursorSeq)
	t.out.Flush()
}

func (t *OS) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.out.WriteString(hideCursorSeq)
	t.out.Flush()
}

// DefaultColumns/DefaultRows are the best-guess fallback size, used when
// the window-size ioctl/equivalent fails — mirrors the teacher's
// reader_posix.go GetWinSize fallback.
const (
	DefaultColumns = 80
	DefaultRows    = 24
)

var _ Terminal = (*OS)(nil)
