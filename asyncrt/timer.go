package asyncrt

import (
	"container/heap"
	"sync"
	"time"
)

// timerEntry is a single pending timer. id is assigned monotonically at
// creation and is what timer.go's two indexes share: the heap orders by
// (deadline, id) for deterministic expiry order among same-deadline
// timers, and the id->entry map gives O(1) cancel/lookup. Both indexes
// hold the same *timerEntry, so a cancellation and a heap-pop can never
// disagree about whether a timer is live: canceled is the single source
// of truth.
type timerEntry struct {
	id       uint64
	deadline time.Time
	waker    Waker
	canceled bool
}

// timerHeap is a container/heap.Interface min-heap over *timerEntry,
// ordered by (deadline, id) — the same shape as the eventloop package's
// timerHeap, generalized to carry a Waker instead of a Task.
type timerHeap []*timerEntry

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].id < h[j].id
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *timerHeap) Push(x any) {
	*h = append(*h, x.(*timerEntry))
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// timerState is the reactor's timer dual-index: a heap for efficient
// "what's the next deadline / what has expired" queries, and a map for
// O(1) cancellation by id. Grounded on the eventloop package's
// container/heap-based timerHeap, combined with the original reactor's
// TimerState (a BTreeMap<(Instant,u64),Waker> + HashMap<u64,Instant>) —
// container/heap is the idiomatic Go stand-in for the ordered-map half.
type timerState struct {
	mu      sync.Mutex
	nextID  uint64
	heap    timerHeap
	byID    map[uint64]*timerEntry
}

func newTimerState() *timerState {
	return &timerState{
		byID: make(map[uint64]*timerEntry),
	}
}

// Create registers a new timer and returns its id.
func (t *timerState) Create(deadline time.Time, waker Waker) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	entry := &timerEntry{id: t.nextID, deadline: deadline, waker: waker}
	heap.Push(&t.heap, entry)
	t.byID[entry.id] = entry
	return entry.id
}

// Cancel marks a timer canceled. Canceling an unknown or already-expired
// id is a no-op — the reactor's contract tolerates late cancellation
// races against expiry.
func (t *timerState) Cancel(id uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byID[id]
	if !ok {
		return
	}
	entry.canceled = true
	delete(t.byID, id)
}

// NextDeadline reports the deadline of the earliest live timer, if any.
func (t *timerState) NextDeadline() (deadline time.Time, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.heap) > 0 {
		top := t.heap[0]
		if top.canceled {
			heap.Pop(&t.heap)
			continue
		}
		return top.deadline, true
	}
	return time.Time{}, false
}

// DrainExpired pops every live timer whose deadline is at or before now,
// in deadline order, appending each one's waker (if it has one) to
// wakers. Canceled entries encountered along the way are discarded
// rather than returned.
func (t *timerState) DrainExpired(now time.Time, wakers []Waker) []Waker {
	t.mu.Lock()
	defer t.mu.Unlock()

	for len(t.heap) > 0 {
		top := t.heap[0]
		if top.canceled {
			heap.Pop(&t.heap)
			continue
		}
		if top.deadline.After(now) {
			break
		}
		heap.Pop(&t.heap)
		delete(t.byID, top.id)
		if top.waker != nil {
			wakers = append(wakers, top.waker)
		}
	}
	return wakers
}

// Poll reports whether the given timer has already expired, without
// removing it from either index — used by TimerPoll, which is allowed
// to observe expiry ahead of the next react() drain.
func (t *timerState) Poll(id uint64, now time.Time) (expired bool, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byID[id]
	if !ok {
		return false, false
	}
	return !entry.deadline.After(now), true
}

// PollAndArm is Poll plus: if the timer hasn't expired yet, it replaces
// the timer's waker with the given one, so the next DrainExpired call
// wakes this caller instead of whatever waker the timer was created
// with. Used where a timer is created before its eventual poller is
// known (e.g. across an FFI boundary, where the first poll is the
// earliest point a waker token exists).
func (t *timerState) PollAndArm(id uint64, now time.Time, waker Waker) (expired bool, known bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.byID[id]
	if !ok {
		return false, false
	}
	if entry.deadline.After(now) {
		entry.waker = waker
		return false, true
	}
	return true, true
}
