package asyncrt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingWaker struct{ n int }

func (w *countingWaker) Wake() { w.n++ }

func TestTimerStateCreateAndDrainExpired(t *testing.T) {
	ts := newTimerState()
	now := time.Now()

	w1 := &countingWaker{}
	w2 := &countingWaker{}
	id1 := ts.Create(now.Add(-time.Millisecond), w1) // already expired
	id2 := ts.Create(now.Add(time.Hour), w2)          // not yet expired
	require.NotZero(t, id1)
	require.NotZero(t, id2)

	wakers := ts.DrainExpired(now, nil)
	require.Len(t, wakers, 1)
	assert.Equal(t, w1, wakers[0])

	// Second drain finds nothing new.
	wakers = ts.DrainExpired(now, nil)
	assert.Empty(t, wakers)
}

func TestTimerStateDrainOrdersByDeadlineThenID(t *testing.T) {
	ts := newTimerState()
	base := time.Now().Add(-time.Second)

	wa, wb, wc := &countingWaker{}, &countingWaker{}, &countingWaker{}
	ts.Create(base, wa)
	ts.Create(base, wb)
	ts.Create(base, wc)

	wakers := ts.DrainExpired(time.Now(), nil)
	require.Len(t, wakers, 3)
	// All three share a deadline, so drain order must match creation
	// (id) order — the heap's tie-break.
	assert.Same(t, wa, wakers[0])
	assert.Same(t, wb, wakers[1])
	assert.Same(t, wc, wakers[2])
}

func TestTimerStateCancelRemovesEntry(t *testing.T) {
	ts := newTimerState()
	w := &countingWaker{}
	id := ts.Create(time.Now().Add(-time.Millisecond), w)

	ts.Cancel(id)

	wakers := ts.DrainExpired(time.Now(), nil)
	assert.Empty(t, wakers, "canceled timer must not fire")
}

func TestTimerStateCancelUnknownIsNoop(t *testing.T) {
	ts := newTimerState()
	assert.NotPanics(t, func() { ts.Cancel(9999) })
}

func TestTimerStateNextDeadline(t *testing.T) {
	ts := newTimerState()
	_, ok := ts.NextDeadline()
	assert.False(t, ok, "empty timer state has no next deadline")

	d1 := time.Now().Add(time.Hour)
	d2 := time.Now().Add(time.Minute)
	ts.Create(d1, &countingWaker{})
	ts.Create(d2, &countingWaker{})

	next, ok := ts.NextDeadline()
	require.True(t, ok)
	assert.True(t, next.Equal(d2), "next deadline must be the earliest live timer")
}

func TestTimerStatePollAndArmRearmsWaker(t *testing.T) {
	ts := newTimerState()
	w1 := &countingWaker{}
	id := ts.Create(time.Now().Add(time.Hour), w1)

	w2 := &countingWaker{}
	expired, known := ts.PollAndArm(id, time.Now(), w2)
	assert.True(t, known)
	assert.False(t, expired)

	wakers := ts.DrainExpired(time.Now().Add(2*time.Hour), nil)
	require.Len(t, wakers, 1)
	assert.Equal(t, w2, wakers[0], "rearmed waker must fire, not the original")
}

func TestTimerStatePollExpiredAndUnknown(t *testing.T) {
	ts := newTimerState()
	id := ts.Create(time.Now().Add(-time.Millisecond), &countingWaker{})

	expired, known := ts.Poll(id, time.Now())
	assert.True(t, known)
	assert.True(t, expired)

	_, known = ts.Poll(12345, time.Now())
	assert.False(t, known)
}
