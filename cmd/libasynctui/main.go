// Command libasynctui builds the C-ABI shared library a host process and
// its plugins link against to share one asyncrt runtime. Build with
// `go build -buildmode=c-shared`.
//
// Every exported function uses only FFI-safe types (C.int, C.uint64_t,
// C.uchar, C function pointers, and opaque void* pointers) — no Go
// interface, slice, or string value ever crosses the boundary directly.
// A future crossing from C is a poll function pointer plus an opaque
// state pointer. A Waker crossing to C is wrapped in a runtime/cgo.Handle
// and handed over as a C.uint64_t token; the Go side resolves it back via
// Handle.Value and never lets C dereference it.
//
// Grounded function-for-function on original_source's tau-rt ffi.rs
// (tau_rt_io_register, tau_rt_timer_create, tau_rt_spawn, etc.), renamed
// to this project's asynctui_ prefix.
package main

/*
#include <stdint.h>

// asynctui_poll_fn is supplied by the C side when spawning a future: it
// is called with the opaque state pointer given at spawn time and an
// opaque waker token, and must return 0 (pending) or 1 (ready).
typedef unsigned char (*asynctui_poll_fn)(void *state, uint64_t waker_token);

static unsigned char asynctui_call_poll_fn(asynctui_poll_fn fn, void *state, uint64_t waker_token) {
	return fn(state, waker_token);
}
*/
import "C"

import (
	"runtime/cgo"
	"time"
	"unsafe"

	"github.com/joeycumines/go-asynctui/asyncrt"
)

func main() {} // required by -buildmode=c-shared, never actually run

// newFFIWaker stores a fresh asyncrt.Waker behind a cgo.Handle and
// returns the token C should hold onto and eventually pass to
// asynctui_waker_wake exactly once.
func newFFIWaker(w asyncrt.Waker) C.uint64_t {
	return C.uint64_t(cgo.NewHandle(w))
}

//export asynctui_waker_wake
func asynctui_waker_wake(token C.uint64_t) {
	h := cgo.Handle(token)
	defer h.Delete()
	if w, ok := h.Value().(asyncrt.Waker); ok {
		w.Wake()
	}
}

// ── IO ──────────────────────────────────────────────────────────────

//export asynctui_io_register
func asynctui_io_register(fd C.int) (C.uint64_t, C.int) {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return 0, -1
	}
	key, err := r.IORegister(int(fd))
	if err != nil {
		return 0, -1
	}
	return C.uint64_t(key), 0
}

//export asynctui_io_deregister
func asynctui_io_deregister(handle C.uint64_t, fd C.int) {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return
	}
	_ = r.IODeregister(uint64(handle), int(fd))
}

// asynctui_io_poll_readable polls readability for handle/fd. Returns
// 0=Pending, 1=Ready, 2=error. Once the reactor is available, it writes
// a fresh waker token to *wakerToken whatever the result, for the caller
// to later feed to asynctui_waker_wake.
//
//export asynctui_io_poll_readable
func asynctui_io_poll_readable(handle C.uint64_t, fd C.int, wakerToken *C.uint64_t) C.uchar {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return 2
	}
	ready, err := r.IOPollReadable(uint64(handle), int(fd), handleWakerFor(wakerToken))
	if err != nil {
		return 2
	}
	if ready {
		return 1
	}
	return 0
}

//export asynctui_io_poll_writable
func asynctui_io_poll_writable(handle C.uint64_t, fd C.int, wakerToken *C.uint64_t) C.uchar {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return 2
	}
	ready, err := r.IOPollWritable(uint64(handle), int(fd), handleWakerFor(wakerToken))
	if err != nil {
		return 2
	}
	if ready {
		return 1
	}
	return 0
}

// handleWakerFor builds the Waker passed to a reactor poll call; the
// Waker itself mints its own cgo.Handle token and writes it to *out so
// the C caller can hang onto it for a later wake.
func handleWakerFor(out *C.uint64_t) asyncrt.Waker {
	var w asyncrt.Waker
	w = asyncrt.WakerFunc(func() {
		asynctui_waker_wake(*out)
	})
	token := newFFIWaker(w)
	*out = token
	return w
}

// ── Timers ──────────────────────────────────────────────────────────

//export asynctui_timer_create
func asynctui_timer_create(nanosFromNow C.uint64_t) C.uint64_t {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return 0
	}
	deadline := time.Now().Add(time.Duration(nanosFromNow))
	return C.uint64_t(r.TimerCreate(deadline, nil))
}

//export asynctui_timer_cancel
func asynctui_timer_cancel(handle C.uint64_t) {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return
	}
	r.TimerCancel(uint64(handle))
}

//export asynctui_timer_poll
func asynctui_timer_poll(handle C.uint64_t, wakerToken *C.uint64_t) C.uchar {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return 2
	}
	expired, known := r.TimerPollAndArm(uint64(handle), time.Now(), handleWakerFor(wakerToken))
	if !known || expired {
		// An unknown id has already fired or been cancelled.
		return 1
	}
	return 0
}

// ── Executor ────────────────────────────────────────────────────────

// ffiFuture adapts a C poll function + opaque state pointer into an
// asyncrt.Future.
type ffiFuture struct {
	pollFn C.asynctui_poll_fn
	state  unsafe.Pointer
}

func (f *ffiFuture) Poll(waker asyncrt.Waker) asyncrt.PollState {
	token := newFFIWaker(waker)
	result := C.asynctui_call_poll_fn(f.pollFn, f.state, C.uint64_t(token))
	if result != 0 {
		return asyncrt.Ready
	}
	return asyncrt.Pending
}

//export asynctui_spawn
func asynctui_spawn(pollFn C.asynctui_poll_fn, state unsafe.Pointer) {
	asyncrt.GetExecutor().Spawn(&ffiFuture{pollFn: pollFn, state: state})
}

//export asynctui_try_tick
func asynctui_try_tick() C.uchar {
	didWork, err := asyncrt.GetExecutor().TryTick()
	if err != nil || !didWork {
		return 0
	}
	return 1
}

//export asynctui_react
func asynctui_react(timeoutMs C.uint64_t) C.int {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return -1
	}
	if err := r.React(time.Duration(timeoutMs) * time.Millisecond); err != nil {
		return -1
	}
	return 0
}

//export asynctui_block_on
func asynctui_block_on(pollFn C.asynctui_poll_fn, state unsafe.Pointer) C.int {
	r, err := asyncrt.GetReactor()
	if err != nil {
		return -1
	}
	future := &ffiFuture{pollFn: pollFn, state: state}
	if err := asyncrt.GetExecutor().BlockOn(r, future); err != nil {
		return -1
	}
	return 0
}
