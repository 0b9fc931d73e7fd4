package asyncrt

import (
	"sync"
	"time"
)

// Reactor is the process-global I/O and timer readiness engine. It owns
// exactly one OS poller instance and the two pieces of state every
// caller ultimately polls against: the IO source table and the timer
// dual-index. Grounded on original_source's tau-rt Reactor (poller +
// Mutex<Slab<Source>> + Mutex<TimerState> + Mutex<Events>), translated
// to Go's lock-per-structure style rather than one struct-wide mutex,
// matching the eventloop package's finer-grained locking texture.
type Reactor struct {
	poller  poller
	sources *sourceTable
	timers  *timerState

	waitMu   sync.Mutex
	waitBuf  []Event
}

var (
	reactorOnce sync.Once
	reactorInst *Reactor
	reactorErr  error
)

// newReactor builds a standalone Reactor bypassing the process-global
// singleton, for test isolation — each test gets its own poller and
// timer/source state rather than sharing GetReactor's.
func newReactor() (*Reactor, error) {
	p, err := newPlatformPoller()
	if err != nil {
		return nil, err
	}
	return &Reactor{
		poller:  p,
		sources: newSourceTable(),
		timers:  newTimerState(),
	}, nil
}

// GetReactor returns the process-global Reactor, creating it on first
// call. Every host and plugin sharing this runtime must resolve to the
// same Reactor instance — loading two copies of this package's native
// half into one process (e.g. via two independently dlopen'd copies of
// the FFI shared object) is a configuration error the caller is
// responsible for avoiding; the reactor has no way to detect it.
func GetReactor() (*Reactor, error) {
	reactorOnce.Do(func() {
		p, err := newPlatformPoller()
		if err != nil {
			reactorErr = err
			return
		}
		reactorInst = &Reactor{
			poller:  p,
			sources: newSourceTable(),
			timers:  newTimerState(),
		}
	})
	return reactorInst, reactorErr
}

// IORegister registers fd with the reactor and returns its source key.
// The poller is told about fd immediately, with no interest set; the
// first IOPollReadable/IOPollWritable call arms the interest it needs.
func (r *Reactor) IORegister(fd int) (uint64, error) {
	key := r.sources.Insert(fd)
	if err := r.poller.Add(fd, Interest{Key: key}); err != nil {
		r.sources.Remove(key)
		return 0, err
	}
	return key, nil
}

// IODeregister releases key's source. fd is the same descriptor passed
// to the matching IORegister call — the poller interface removes by fd,
// not by key.
func (r *Reactor) IODeregister(key uint64, fd int) error {
	src, ok := r.sources.Get(key)
	if !ok {
		return &UnknownHandleError{Handle: key}
	}
	_ = src
	r.sources.Remove(key)
	return r.poller.Remove(fd)
}

func (r *Reactor) updateInterest(key uint64, fd int) error {
	src, ok := r.sources.Get(key)
	if !ok {
		return &UnknownHandleError{Handle: key}
	}
	interest := Interest{
		Key:      key,
		Readable: src.readWaker != nil,
		Writable: src.writeWaker != nil,
	}
	return r.poller.Modify(fd, interest)
}

// IOPollReadable reports whether key is currently readable. If not, it
// arranges for waker.Wake to be called once react() observes
// readability, and arms the poller's read interest for fd.
func (r *Reactor) IOPollReadable(key uint64, fd int, waker Waker) (ready bool, err error) {
	ready, known := r.sources.PollReadable(key, waker)
	if !known {
		return false, &UnknownHandleError{Handle: key}
	}
	if ready {
		return true, nil
	}
	return false, r.updateInterest(key, fd)
}

// IOPollWritable mirrors IOPollReadable for write readiness.
func (r *Reactor) IOPollWritable(key uint64, fd int, waker Waker) (ready bool, err error) {
	ready, known := r.sources.PollWritable(key, waker)
	if !known {
		return false, &UnknownHandleError{Handle: key}
	}
	if ready {
		return true, nil
	}
	return false, r.updateInterest(key, fd)
}

// TimerCreate registers a new timer expiring at deadline, whose waker
// is invoked by a future react() call once the deadline passes.
func (r *Reactor) TimerCreate(deadline time.Time, waker Waker) uint64 {
	return r.timers.Create(deadline, waker)
}

// TimerCancel cancels a pending timer. See timerState.Cancel for the
// tolerated-race semantics.
func (r *Reactor) TimerCancel(id uint64) {
	r.timers.Cancel(id)
}

// TimerPoll reports whether id's deadline has already passed, without
// waiting for the next react() call to drain it.
func (r *Reactor) TimerPoll(id uint64, now time.Time) (expired, known bool) {
	return r.timers.Poll(id, now)
}

// TimerPollAndArm is TimerPoll plus: if not yet expired, it (re)arms the
// timer's waker to the given one. See timerState.PollAndArm.
func (r *Reactor) TimerPollAndArm(id uint64, now time.Time, waker Waker) (expired, known bool) {
	return r.timers.PollAndArm(id, now, waker)
}

// React runs one reactor tick: it drains every expired timer's waker,
// computes an effective poll timeout capped by the next timer deadline,
// polls the OS for readiness, latches whatever came back, and finally
// invokes every collected waker. Wakers are always invoked after the
// poller has been read and all locks released — a Wake callback that
// turns around and calls back into the reactor (e.g. to poll again)
// must not deadlock against react()'s own locking.
//
// Grounded step-for-step on original_source's Reactor::react.
func (r *Reactor) React(timeout time.Duration) error {
	now := time.Now()

	var wakers []Waker
	wakers = r.timers.DrainExpired(now, wakers)

	effTimeout := timeout
	if deadline, ok := r.timers.NextDeadline(); ok {
		untilNext := deadline.Sub(now)
		if untilNext < 0 {
			untilNext = 0
		}
		if timeout < 0 || untilNext < timeout {
			effTimeout = untilNext
		}
	}

	r.waitMu.Lock()
	events, err := r.poller.Wait(r.waitBuf[:0], effTimeout)
	r.waitBuf = events
	r.waitMu.Unlock()
	if err != nil {
		return err
	}

	for _, ev := range events {
		if ev.Readable {
			if w := r.sources.SetReadable(ev.Key); w != nil {
				wakers = append(wakers, w)
			}
		}
		if ev.Writable {
			if w := r.sources.SetWritable(ev.Key); w != nil {
				wakers = append(wakers, w)
			}
		}
	}

	for _, w := range wakers {
		w.Wake()
	}
	return nil
}

// Close releases the reactor's OS poller. Only meaningful in tests,
// which construct reactors outside the process-global singleton.
func (r *Reactor) Close() error {
	return r.poller.Close()
}
