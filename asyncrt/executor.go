package asyncrt

import (
	"sync"
)

// task pairs a Future with the bookkeeping the executor needs to drive
// it: a done latch so a Waker fired after completion is a harmless
// no-op, and a self-referential waker so the future can re-enqueue
// itself without the executor handing out a fresh closure per poll.
type task struct {
	future Future
	exec   *Executor

	mu   sync.Mutex
	done bool
}

func (t *task) Wake() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.mu.Unlock()
	t.exec.enqueue(t)
}

// poll drives the task once, recovering a panicking future into a
// PanicError surfaced by BlockOn rather than crashing the process — an
// unhandled panic in one task must not take down every other task
// sharing this executor.
func (t *task) poll() (done bool, panicErr error) {
	defer func() {
		if v := recover(); v != nil {
			done = true
			panicErr = &PanicError{Value: v}
		}
	}()
	if t.future.Poll(t) == Ready {
		t.mu.Lock()
		t.done = true
		t.mu.Unlock()
		return true, nil
	}
	return false, nil
}

// Executor is the process-global cooperative task scheduler. It holds a
// simple FIFO ready queue fed by Spawn and by tasks' own Wakers, and
// drains it either one tick at a time (TryTick) or to a fixed point,
// interleaved with reactor polls (BlockOn). Grounded on
// original_source's tau-rt Executor (ConcurrentQueue<Runnable> +
// OnceLock-based global + schedule/spawn/try_tick/block_on).
type Executor struct {
	mu    sync.Mutex
	ready []*task
}

var (
	executorOnce sync.Once
	executorInst *Executor
)

// GetExecutor returns the process-global Executor, creating it on first
// call.
func GetExecutor() *Executor {
	executorOnce.Do(func() {
		executorInst = &Executor{}
	})
	return executorInst
}

// newExecutor builds a standalone Executor for test isolation, mirroring
// newReactor.
func newExecutor() *Executor {
	return &Executor{}
}

func (e *Executor) enqueue(t *task) {
	e.mu.Lock()
	e.ready = append(e.ready, t)
	e.mu.Unlock()
}

// Spawn schedules future to run on the executor, polling it for the
// first time on the next TryTick/BlockOn rather than immediately — this
// matches the original executor's spawn, which enqueues a Runnable
// rather than running it inline, so callers never observe partial
// progress made during their own Spawn call.
func (e *Executor) Spawn(future Future) {
	t := &task{future: future, exec: e}
	e.enqueue(t)
}

// TryTick polls every currently-ready task once, draining wake-driven
// re-enqueues made during this tick as well, and reports whether it did
// any work. It never blocks and never touches the reactor.
func (e *Executor) TryTick() (didWork bool, panicErr error) {
	for {
		e.mu.Lock()
		if len(e.ready) == 0 {
			e.mu.Unlock()
			return didWork, nil
		}
		batch := e.ready
		e.ready = nil
		e.mu.Unlock()

		didWork = true
		for i, t := range batch {
			t.mu.Lock()
			if t.done {
				t.mu.Unlock()
				continue
			}
			t.mu.Unlock()

			done, err := t.poll()
			if err != nil {
				// Put the rest of this batch back at the front of the
				// queue so the panicking task does not drop the others.
				e.mu.Lock()
				e.ready = append(append([]*task(nil), batch[i+1:]...), e.ready...)
				e.mu.Unlock()
				return didWork, err
			}
			_ = done
		}
	}
}

// BlockOn drives the executor until future completes, interleaving
// TryTick drains with reactor React calls so tasks blocked on IO or
// timers make progress. Grounded on original_source's block_on: tick
// while there's ready work (zero-timeout react between ticks so
// newly-ready IO is picked up immediately), otherwise react with a
// short timeout so the loop doesn't busy-spin while waiting on a
// longer-out timer or slow IO.
func (e *Executor) BlockOn(r *Reactor, future Future, opts ...Option) error {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return err
	}
	idleReactTimeout := cfg.idleReactTimeout

	done := make(chan struct{})
	var once sync.Once

	wrapped := FutureFunc(func(waker Waker) PollState {
		state := future.Poll(waker)
		if state == Ready {
			once.Do(func() { close(done) })
		}
		return state
	})
	e.Spawn(wrapped)

	for {
		select {
		case <-done:
			return nil
		default:
		}

		didWork, err := e.TryTick()
		if err != nil {
			if cfg.logger != nil {
				if pe, ok := err.(*PanicError); ok {
					cfg.logger.LogPanic(pe)
				}
			}
			return err
		}

		select {
		case <-done:
			return nil
		default:
		}

		timeout := idleReactTimeout
		if didWork {
			timeout = 0
		}
		if err := r.React(timeout); err != nil {
			return err
		}
	}
}
