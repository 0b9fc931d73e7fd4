package asyncrt

import "time"

// Interest describes what a single registration with the OS poller wants
// to be notified about. Key is the caller-chosen token returned verbatim
// in the corresponding Event — the reactor uses its IO source slot index
// as the key, never the raw fd, so a reused fd number can never be
// confused with a stale registration.
type Interest struct {
	Key      uint64
	Readable bool
	Writable bool
}

// Event reports readiness observed by a Wait call.
type Event struct {
	Key      uint64
	Readable bool
	Writable bool
}

// poller is the thin per-OS wrapper over the readiness facility used by
// the reactor. Registrations are level-triggered: while the armed
// interest of an fd is satisfied, every Wait reports it again. An fd is
// not disarmed after an event fires; Modify only changes its interest.
type poller interface {
	// Add registers fd with the given interest. Must only be called once
	// per fd until a matching Remove.
	Add(fd int, interest Interest) error
	// Modify re-arms or changes the interest for an already-added fd.
	Modify(fd int, interest Interest) error
	// Remove drops interest in fd. Removing an already-closed fd is
	// tolerated as a no-op.
	Remove(fd int) error
	// Wait blocks until at least one event is ready, the timeout elapses,
	// or an error occurs, appending ready events to dst and returning the
	// extended slice. A negative timeout waits indefinitely.
	Wait(dst []Event, timeout time.Duration) ([]Event, error)
	// Close releases the poller's OS resources.
	Close() error
}
