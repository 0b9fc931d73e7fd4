package asyncrt

// PollState is the result of polling a Future once.
type PollState int

const (
	// Pending means the future has not yet produced a value; it has
	// arranged for its Waker to be invoked when it should be polled again.
	Pending PollState = iota
	// Ready means the future has completed.
	Ready
)

func (s PollState) String() string {
	if s == Ready {
		return "Ready"
	}
	return "Pending"
}

// Waker schedules its associated task back onto the executor's ready
// queue. Wake may be called from any goroutine — by the reactor's react
// loop, by a hardware timer, or by user code — and must not block.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to the Waker interface.
type WakerFunc func()

// Wake implements Waker.
func (f WakerFunc) Wake() { f() }

// Future is the cooperative task shape the executor and reactor operate
// on. Go has no native coroutine-polling primitive the way an async/await
// language does, so tasks here are explicit poll-to-completion state
// machines rather than goroutines — this is deliberate: the foreign
// interface (cmd/libasynctui) needs a poll-to-completion contract that can
// cross a C ABI, and only an explicit Poll method can do that. A Future
// must not be polled concurrently from two goroutines; the executor
// guarantees this by construction (one driver goroutine at a time per
// task).
type Future interface {
	// Poll advances the future. It returns Ready when the future has
	// completed. If it returns Pending, it must have arranged — directly
	// or via the reactor — for waker.Wake to be called at least once
	// after the future becomes able to make progress.
	Poll(waker Waker) PollState
}

// FutureFunc adapts a single poll step to the Future interface, for
// futures with no internal state beyond what the closure captures.
type FutureFunc func(waker Waker) PollState

// Poll implements Future.
func (f FutureFunc) Poll(waker Waker) PollState { return f(waker) }
