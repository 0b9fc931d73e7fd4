package asyncrt

import "time"

// runtimeOptions holds configuration shared by the reactor and executor
// of a single BlockOn run.
type runtimeOptions struct {
	idleReactTimeout time.Duration
	logger           runtimeLogger
}

// Option configures a BlockOn call. Grounded on the eventloop package's
// LoopOption pattern (an interface wrapping an apply closure, resolved
// against a defaulted options struct).
type Option interface {
	applyRuntime(*runtimeOptions) error
}

type optionFunc struct {
	f func(*runtimeOptions) error
}

func (o *optionFunc) applyRuntime(opts *runtimeOptions) error { return o.f(opts) }

// WithIdleReactTimeout overrides how long BlockOn lets React block when
// the executor has no ready work, before checking again. Shorter values
// trade CPU for wakeup latency on timers/IO that complete without a
// waker being invoked (there are none in this runtime's design, but the
// knob exists for tuning against OS scheduling jitter).
func WithIdleReactTimeout(d time.Duration) Option {
	return &optionFunc{func(opts *runtimeOptions) error {
		opts.idleReactTimeout = d
		return nil
	}}
}

// WithLogger attaches a structured logger to BlockOn, used to record
// panics recovered from tasks; nothing else is logged. A nil logger (the
// default) disables logging entirely.
func WithLogger(l runtimeLogger) Option {
	return &optionFunc{func(opts *runtimeOptions) error {
		opts.logger = l
		return nil
	}}
}

func resolveOptions(opts []Option) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		idleReactTimeout: 10 * time.Millisecond,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
