//go:build !windows

package terminal

import (
	"sync"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// saveTermiosOnce captures the original termios for a given fd exactly
// once per process, mirroring the teacher's prompt/term/term.go — the
// termios captured from the first caller's fd is what every restore
// writes back on Stop.
var (
	saveTermios     unix.Termios
	saveTermiosErr  error
	saveTermiosOnce sync.Once
)

func platformEnterRaw(fd uintptr) (func() error, error) {
	saveTermiosOnce.Do(func() {
		v, err := termios.Tcgetattr(fd)
		saveTermiosErr = err
		if err == nil {
			saveTermios = *v
		}
	})
	if saveTermiosErr != nil {
		return nil, saveTermiosErr
	}

	raw, err := termios.Tcgetattr(fd)
	if err != nil {
		return nil, err
	}
	termios.Cfmakeraw(raw)
	if err := termios.Tcsetattr(fd, termios.TCSANOW, raw); err != nil {
		return nil, err
	}

	restore := func() error {
		saved := saveTermios
		return termios.Tcsetattr(fd, termios.TCSANOW, &saved)
	}
	return restore, nil
}

func platformSize(fd uintptr) (columns, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
