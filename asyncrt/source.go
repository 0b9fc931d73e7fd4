package asyncrt

import "sync"

// source tracks one registered fd's readiness latches and the wakers
// waiting on them. readReady/writeReady are latched by react() when the
// poller reports an event and cleared by IOPollReadable/IOPollWritable
// when a caller consumes the readiness.
type source struct {
	fd           int
	readWaker    Waker
	writeWaker   Waker
	readReady    bool
	writeReady   bool
}

// sourceTable is the reactor's slot table of registered IO sources: a
// slice indexed by key plus an explicit free list for slot reuse. The
// original reactor uses Rust's slab crate for this; nothing in the
// retrieval pack provides an equivalent generic slab, and the structure
// here is small and invariant-bearing enough (index stability across
// append/remove, tombstone-free reuse) that a dependency would not
// reduce risk over writing it directly.
type sourceTable struct {
	mu    sync.Mutex
	slots []*source
	free  []uint64
}

func newSourceTable() *sourceTable {
	return &sourceTable{}
}

// Insert adds fd and returns its slot key.
func (t *sourceTable) Insert(fd int) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	src := &source{fd: fd}
	if n := len(t.free); n > 0 {
		key := t.free[n-1]
		t.free = t.free[:n-1]
		t.slots[key] = src
		return key
	}
	key := uint64(len(t.slots))
	t.slots = append(t.slots, src)
	return key
}

// Remove frees key's slot for reuse. Removing an unknown or
// already-removed key is a no-op.
func (t *sourceTable) Remove(key uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return
	}
	t.slots[key] = nil
	t.free = append(t.free, key)
}

// Get returns the source at key, if live.
func (t *sourceTable) Get(key uint64) (*source, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return nil, false
	}
	return t.slots[key], true
}

// SetReadable latches readiness for key and returns the waker to invoke,
// if one was registered and waiting.
func (t *sourceTable) SetReadable(key uint64) Waker {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return nil
	}
	src := t.slots[key]
	src.readReady = true
	w := src.readWaker
	src.readWaker = nil
	return w
}

// SetWritable latches writability for key, mirroring SetReadable.
func (t *sourceTable) SetWritable(key uint64) Waker {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return nil
	}
	src := t.slots[key]
	src.writeReady = true
	w := src.writeWaker
	src.writeWaker = nil
	return w
}

// PollReadable reports and clears a latched read-ready state, or
// records waker to be invoked once react() observes readability.
func (t *sourceTable) PollReadable(key uint64, waker Waker) (ready, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return false, false
	}
	src := t.slots[key]
	if src.readReady {
		src.readReady = false
		return true, true
	}
	src.readWaker = waker
	return false, true
}

// PollWritable mirrors PollReadable for the write-ready latch.
func (t *sourceTable) PollWritable(key uint64, waker Waker) (ready, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if key >= uint64(len(t.slots)) || t.slots[key] == nil {
		return false, false
	}
	src := t.slots[key]
	if src.writeReady {
		src.writeReady = false
		return true, true
	}
	src.writeWaker = waker
	return false, true
}
