//go:build windows

package terminal

import (
	"sync"

	tty "github.com/mattn/go-tty"
)

// currentTTY holds the open go-tty handle between platformEnterRaw and
// platformSize/restore — go-tty owns Win32 console-mode state internally,
// so unlike the POSIX path there is no separate fd to re-query. Grounded
// on the teacher's reader_windows.go, which holds exactly one *tty.TTY for
// the life of the reader.
var (
	ttyMu      sync.Mutex
	currentTTY *tty.TTY
)

func platformEnterRaw(_ uintptr) (func() error, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, err
	}
	ttyMu.Lock()
	currentTTY = t
	ttyMu.Unlock()

	restore := func() error {
		ttyMu.Lock()
		defer ttyMu.Unlock()
		if currentTTY == nil {
			return nil
		}
		err := currentTTY.Close()
		currentTTY = nil
		return err
	}
	return restore, nil
}

func platformSize(_ uintptr) (columns, rows int, err error) {
	ttyMu.Lock()
	t := currentTTY
	ttyMu.Unlock()
	if t == nil {
		return 0, 0, errNoTTY
	}
	w, h, err := t.Size()
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

var errNoTTY = ttyNotOpenError{}

type ttyNotOpenError struct{}

func (ttyNotOpenError) Error() string { return "terminal: no tty open" }
