package asyncrt

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorSpawnAndTick(t *testing.T) {
	exec := newExecutor()
	var counter atomic.Int64

	ran := false
	exec.Spawn(FutureFunc(func(waker Waker) PollState {
		if !ran {
			ran = true
			counter.Add(1)
		}
		return Ready
	}))

	didWork, err := exec.TryTick()
	require.NoError(t, err)
	assert.True(t, didWork, "should have had a task to run")
	assert.EqualValues(t, 1, counter.Load())
}

func TestExecutorTryTickEmptyQueue(t *testing.T) {
	exec := newExecutor()
	didWork, err := exec.TryTick()
	require.NoError(t, err)
	assert.False(t, didWork, "no tasks should be in queue")
}

func TestExecutorBlockOnImmediate(t *testing.T) {
	exec := newExecutor()
	r, err := newReactor()
	require.NoError(t, err)
	defer r.Close()

	var counter atomic.Int64
	err = exec.BlockOn(r, FutureFunc(func(waker Waker) PollState {
		counter.Add(1)
		return Ready
	}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, counter.Load())
}

func TestExecutorBlockOnWithTimer(t *testing.T) {
	exec := newExecutor()
	r, err := newReactor()
	require.NoError(t, err)
	defer r.Close()

	var completed atomic.Bool
	var timerID uint64
	start := time.Now()
	err = exec.BlockOn(r, FutureFunc(func(waker Waker) PollState {
		if timerID == 0 {
			timerID = r.TimerCreate(time.Now().Add(20*time.Millisecond), waker)
		}
		expired, known := r.TimerPoll(timerID, time.Now())
		if !known || expired {
			completed.Store(true)
			return Ready
		}
		return Pending
	}))
	require.NoError(t, err)
	elapsed := time.Since(start)

	assert.True(t, completed.Load())
	assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond, "timer fired too early")
	assert.Less(t, elapsed, 2*time.Second, "timer test timed out")
}

func TestExecutorTimer50msCompletesInTolerance(t *testing.T) {
	exec := newExecutor()
	r, err := newReactor()
	require.NoError(t, err)
	defer r.Close()

	var completed atomic.Bool
	timerID := r.TimerCreate(time.Now().Add(50*time.Millisecond), nil)

	start := time.Now()
	for !completed.Load() {
		for {
			didWork, tickErr := exec.TryTick()
			require.NoError(t, tickErr)
			if !didWork {
				break
			}
		}
		expired, known := r.TimerPoll(timerID, time.Now())
		if !known || expired {
			completed.Store(true)
			break
		}
		require.NoError(t, r.React(5*time.Millisecond))
		require.Less(t, time.Since(start), 2*time.Second, "timer test timed out")
	}

	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond, "timer fired too early")
	assert.LessOrEqual(t, elapsed, 200*time.Millisecond, "timer fired too late")
}

func TestExecutorPanicRecoveredAsPanicError(t *testing.T) {
	exec := newExecutor()
	exec.Spawn(FutureFunc(func(waker Waker) PollState {
		panic("boom")
	}))

	_, err := exec.TryTick()
	require.Error(t, err)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "boom", pe.Value)
}
