package asyncrt

import "github.com/joeycumines/logiface"

// runtimeLogger is the narrow logging surface the runtime needs: one
// event per recovered task panic. Kept independent of any concrete
// Event type so the runtime package itself stays generic-free; callers
// wire in a concrete logiface.Logger via NewLogifaceLogger.
type runtimeLogger interface {
	// LogPanic records a panic recovered from a task's Poll call.
	LogPanic(err *PanicError)
}

// logifaceLogger adapts a logiface.Logger[E] to runtimeLogger, matching
// the logiface-stumpy package's chained-builder logging style
// (.Err().Any().Log(msg)) used throughout the monorepo.
type logifaceLogger[E logiface.Event] struct {
	logger *logiface.Logger[E]
}

// NewLogifaceLogger wraps logger for use with WithLogger. Typical setup
// mirrors logiface-stumpy's example: stumpy.L.New(stumpy.WithStumpy(...)).
func NewLogifaceLogger[E logiface.Event](logger *logiface.Logger[E]) runtimeLogger {
	return &logifaceLogger[E]{logger: logger}
}

func (l *logifaceLogger[E]) LogPanic(err *PanicError) {
	l.logger.Err().
		Any("value", err.Value).
		Log("asyncrt: task panicked")
}
