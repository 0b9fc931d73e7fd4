package tui

// engineOptions holds an Engine's configuration, resolved once at
// construction. Grounded on the same functional-options shape as
// asyncrt.Option / the teacher's eventloop.LoopOption.
type engineOptions[E any] struct {
	logger                 runtimeLogger
	strictOverlayAssertions bool
	eventBufferSize        int
}

// Option configures an Engine[E] at construction.
type Option[E any] interface {
	apply(*engineOptions[E]) error
}

type optionFunc[E any] struct {
	f func(*engineOptions[E]) error
}

func (o *optionFunc[E]) apply(opts *engineOptions[E]) error { return o.f(opts) }

// WithLogger attaches a structured logger used to record a recovered
// handler panic. A nil logger (the default) disables logging entirely —
// the library never forces a logger on its caller.
func WithLogger[E any](l runtimeLogger) Option[E] {
	return &optionFunc[E]{func(opts *engineOptions[E]) error {
		opts.logger = l
		return nil
	}}
}

// WithStrictOverlayAssertions enables extra invariant checks around
// overlay push/pop (e.g. popping an empty stack) that panic instead of
// silently no-opping — intended for debug builds and tests, not
// production use where a no-op is preferable to a crash.
func WithStrictOverlayAssertions[E any](strict bool) Option[E] {
	return &optionFunc[E]{func(opts *engineOptions[E]) error {
		opts.strictOverlayAssertions = strict
		return nil
	}}
}

// WithEventBufferSize overrides the buffer depth of the engine's internal
// user-event and key-event channels. Mainly useful in tests that want
// sends to never block.
func WithEventBufferSize[E any](n int) Option[E] {
	return &optionFunc[E]{func(opts *engineOptions[E]) error {
		opts.eventBufferSize = n
		return nil
	}}
}

func resolveOptions[E any](opts []Option[E]) (*engineOptions[E], error) {
	cfg := &engineOptions[E]{eventBufferSize: 128}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// runtimeLogger is the minimal logging capability the engine needs —
// satisfied by this package's NewLogifaceLogger adapter. It mirrors
// asyncrt's interface of the same name but takes tui's own PanicError,
// so tui stays independent of asyncrt.
type runtimeLogger interface {
	LogPanic(err *PanicError)
}
