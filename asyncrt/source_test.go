package asyncrt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceTableInsertGetRemove(t *testing.T) {
	st := newSourceTable()
	key := st.Insert(42)

	src, ok := st.Get(key)
	require.True(t, ok)
	assert.Equal(t, 42, src.fd)

	st.Remove(key)
	_, ok = st.Get(key)
	assert.False(t, ok)
}

func TestSourceTableReusesFreedSlots(t *testing.T) {
	st := newSourceTable()
	k1 := st.Insert(1)
	st.Remove(k1)
	k2 := st.Insert(2)
	assert.Equal(t, k1, k2, "freed slot should be reused rather than growing the table")
}

func TestSourceTablePollReadableLatchesAndArmsWaker(t *testing.T) {
	st := newSourceTable()
	key := st.Insert(7)

	ready, known := st.PollReadable(key, &countingWaker{})
	require.True(t, known)
	assert.False(t, ready, "no readiness latched yet")

	w := st.SetReadable(key)
	require.NotNil(t, w, "a waker was registered and must be returned")

	ready, known = st.PollReadable(key, nil)
	require.True(t, known)
	assert.True(t, ready, "readiness latch must be consumed on poll")

	ready, known = st.PollReadable(key, nil)
	require.True(t, known)
	assert.False(t, ready, "readiness must be cleared after being consumed once")
}

func TestSourceTableUnknownKey(t *testing.T) {
	st := newSourceTable()
	_, known := st.PollReadable(999, nil)
	assert.False(t, known)
	assert.Nil(t, st.SetReadable(999))
}
