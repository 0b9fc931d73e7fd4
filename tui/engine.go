package tui

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-asynctui/component"
	"github.com/joeycumines/go-asynctui/terminal"
)

// ErrEngineStopped is returned by Sender.Send once the engine's Run loop
// has exited and its event channels are no longer drained.
var ErrEngineStopped = errors.New("tui: engine stopped")

// Event is one item delivered to a Handler during Run: exactly one of
// Key or User is set, never both, per spec.md §4.8's "terminal events
// (keys, resizes)... application events" distinction.
type Event[E any] struct {
	Key  *component.KeyEvent
	User *E
}

// Handler processes one Event and reports whether the engine should
// keep running. Returning false is how application code requests a
// clean shutdown — equivalent to calling Engine.Quit from inside the
// handler.
type Handler[E any] func(e *Engine[E], ev Event[E]) (keepRunning bool)

// Sender lets external producers submit application events onto an
// Engine's queue without holding a reference to the Engine itself — the
// same shape as the teacher's executor.Submit, narrowed to a single
// user-event channel.
type Sender[E any] struct {
	ch chan E
}

// Send enqueues v, returning ErrEngineStopped if the engine has already
// shut down and stopped draining its event channel.
func (s Sender[E]) Send(v E) error {
	if s.ch == nil {
		return ErrEngineStopped
	}
	select {
	case s.ch <- v:
		return nil
	default:
	}
	// Block, but give up if the channel is closed out from under us.
	defer func() { recover() }()
	s.ch <- v
	return nil
}

// Engine drives a tree of component.Component values against a
// terminal.Terminal: differential rendering (render.go), overlay
// compositing (overlay.go), focus routing, and an event loop modeled on
// the teacher's prompt.Prompt.RunNoExit — a select loop with a
// short-sleep default branch rather than an unbounded blocking select,
// so Stop/Quit are always observed promptly.
type Engine[E any] struct {
	mu         sync.Mutex
	term       terminal.Terminal
	input      io.Reader
	root       component.Component
	focusables []component.Component
	focus      int

	overlays []*overlayEntry
	state    renderState

	opts *engineOptions[E]

	keyCh  chan component.KeyEvent
	userCh chan E
	quit   chan struct{}
	closed bool

	bridgeWG sync.WaitGroup
}

// NewEngine constructs an Engine over root, with focusables as the set
// of top-level components eligible to receive focus via SetFocus. input
// is the raw byte stream bridged into decoded key events (pass nil to
// disable key bridging entirely, e.g. when driving the engine purely
// with application events in a test).
func NewEngine[E any](term terminal.Terminal, input io.Reader, root component.Component, focusables []component.Component, opts ...Option[E]) (*Engine[E], error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Engine[E]{
		term:       term,
		input:      input,
		root:       root,
		focusables: focusables,
		focus:      -1,
		opts:       cfg,
		keyCh:      make(chan component.KeyEvent, cfg.eventBufferSize),
		userCh:     make(chan E, cfg.eventBufferSize),
		quit:       make(chan struct{}),
	}, nil
}

// Root returns the engine's root component.
func (e *Engine[E]) Root() component.Component {
	return e.root
}

// Focus returns the index into focusables currently receiving routed
// input, or -1 if none.
func (e *Engine[E]) Focus() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focus
}

// SetFocus selects which focusable receives routed input. Out-of-range
// values clear focus (-1).
func (e *Engine[E]) SetFocus(index int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.focusables) {
		e.focus = -1
		return
	}
	e.focus = index
}

// Sender returns a handle external goroutines can use to submit
// application events of type E.
func (e *Engine[E]) Sender() Sender[E] {
	return Sender[E]{ch: e.userCh}
}

// ShowOverlay pushes comp onto the overlay stack, saving the current
// focus so HideOverlay restores it, per spec.md §4.9.
func (e *Engine[E]) ShowOverlay(comp component.Component, opts OverlayOptions) OverlayHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	var stack []*overlayEntry
	var handle OverlayHandle
	stack, handle = pushOverlay(e.overlays, comp, opts, e.focus, e.focus >= 0)
	e.overlays = stack
	return handle
}

// HideOverlay pops the topmost overlay and restores the focus saved at
// the time it was shown. It is a no-op if the stack is empty, unless
// WithStrictOverlayAssertions was enabled, in which case it panics.
func (e *Engine[E]) HideOverlay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	rest, restoreFocus, hasFocus, ok := popOverlay(e.overlays)
	if !ok {
		if e.opts.strictOverlayAssertions {
			panic("tui: HideOverlay called with an empty overlay stack")
		}
		return
	}
	e.overlays = rest
	if hasFocus {
		e.focus = restoreFocus
	} else {
		e.focus = -1
	}
}

// HasOverlay reports whether any overlay is currently visible.
func (e *Engine[E]) HasOverlay() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return hasVisibleOverlay(e.overlays)
}

// Render computes the current frame (root plus composited overlays)
// against the terminal's current size and writes only the changed
// escape sequences, per spec.md §4.8's differential-render algorithm.
func (e *Engine[E]) Render() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderLocked()
}

func (e *Engine[E]) renderLocked() error {
	width, _ := e.term.Size()
	if width <= 0 {
		width = terminal.DefaultColumns
	}
	lines := e.root.Render(width)
	lines = composeOverlays(lines, e.overlays, width)

	frame := renderFrame(&e.state, lines, width)
	if frame == nil {
		return nil
	}
	if _, err := e.term.Write(frame); err != nil {
		return err
	}
	return e.term.Flush()
}

// Start puts the terminal into its interactive mode and, if an input
// reader was supplied, launches the bridging goroutine that turns raw
// bytes into key events.
func (e *Engine[E]) Start() error {
	if err := e.term.Start(); err != nil {
		return err
	}
	if e.input != nil {
		e.bridgeWG.Add(1)
		go e.bridge()
	}
	return nil
}

// bridge reads the terminal's native byte stream and forwards decoded
// key events onto keyCh, exactly the "bridging task" spec.md §4.8
// requires of the event loop's terminal-events source. Grounded on the
// teacher's prompt.go input-reading goroutine, simplified to a single
// blocking Read per iteration since terminal.OS's input file is already
// opened in raw, non-canonical mode.
func (e *Engine[E]) bridge() {
	defer e.bridgeWG.Done()
	buf := make([]byte, 64)
	for {
		select {
		case <-e.quit:
			return
		default:
		}
		n, err := e.input.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		key := decodeKey(buf[:n])
		select {
		case e.keyCh <- key:
		case <-e.quit:
			return
		}
	}
}

// Quit requests the Run loop to exit at its next iteration. Safe to
// call multiple times and from any goroutine, including from within a
// Handler.
func (e *Engine[E]) Quit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	close(e.quit)
}

// Stop signals the bridging goroutine (if any) to exit, moves the
// hardware cursor below the last rendered row, and restores the
// terminal to its original mode. Safe to call after Quit, or instead of
// it.
//
// Stop does not join the bridging goroutine: it is typically blocked in
// a single Read call on the terminal's input file, which has no
// portable way to be interrupted from another goroutine, exactly the
// problem the teacher's prompt.PosixReader sidesteps by putting the fd
// in non-blocking mode and polling it. The goroutine exits on its own
// once that Read next returns (more input arrives, or the fd is
// closed).
func (e *Engine[E]) Stop() error {
	e.Quit()

	e.mu.Lock()
	adjust := stopCursorAdjust(&e.state)
	e.mu.Unlock()
	if len(adjust) > 0 {
		e.term.Write(adjust)
		e.term.Flush()
	}
	return e.term.Stop()
}

// Run is the engine's event loop: each iteration takes at most one
// pending key or application event, forwards a key event to the focused
// component (or, if an overlay is visible, to the overlay's component),
// invokes handler with the event, re-renders, and checks for Quit.
// Application events reach only handler. It is modeled on the teacher's
// prompt.Prompt.RunNoExit select loop, including its short-sleep
// default branch so the loop never blocks indefinitely with nothing to
// do.
func (e *Engine[E]) Run(handler Handler[E]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			_ = e.Stop()
			pe := &PanicError{Value: r}
			if e.opts.logger != nil {
				e.opts.logger.LogPanic(pe)
			}
			err = pe
		}
	}()

	for {
		select {
		case <-e.quit:
			return nil

		case key := <-e.keyCh:
			e.routeKey(key)
			if handler != nil && !handler(e, Event[E]{Key: &key}) {
				return nil
			}
			if err := e.Render(); err != nil {
				return err
			}

		case v := <-e.userCh:
			if handler != nil && !handler(e, Event[E]{User: &v}) {
				return nil
			}
			if err := e.Render(); err != nil {
				return err
			}

		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

// routeKey delivers a key event to whichever component currently owns
// input: the topmost visible overlay if one exists, else the focused
// top-level component.
func (e *Engine[E]) routeKey(key component.KeyEvent) {
	e.mu.Lock()
	target := e.inputTargetLocked()
	e.mu.Unlock()
	if target != nil {
		target.HandleInput(key)
	}
}

func (e *Engine[E]) inputTargetLocked() component.Component {
	if entry, ok := topmostVisible(e.overlays); ok {
		return entry.component
	}
	if e.focus >= 0 && e.focus < len(e.focusables) {
		return e.focusables[e.focus]
	}
	return nil
}
