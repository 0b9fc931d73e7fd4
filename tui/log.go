package tui

import "github.com/joeycumines/logiface"

// logifaceLogger adapts a logiface.Logger[E] to runtimeLogger, exactly
// mirroring asyncrt's NewLogifaceLogger — the two packages don't share a
// logger type because tui.PanicError and asyncrt.PanicError are distinct,
// but the adaptation shape (a generic logiface.Logger wrapped to satisfy
// a tiny local interface) is the same pattern the teacher's
// logiface-stumpy factory establishes.
type logifaceLogger[E logiface.Event] struct {
	logger *logiface.Logger[E]
}

// NewLogifaceLogger adapts a logiface.Logger[E] (e.g. one built with
// stumpy.L.New(...)) for use with WithLogger.
func NewLogifaceLogger[E logiface.Event](logger *logiface.Logger[E]) runtimeLogger {
	return &logifaceLogger[E]{logger: logger}
}

func (l *logifaceLogger[E]) LogPanic(err *PanicError) {
	l.logger.Err().Any("value", err.Value).Log("tui: event handler panicked")
}
