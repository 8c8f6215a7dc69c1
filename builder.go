package junction

import "time"

// ControllerBuilder provides a fluent interface for assembling a controller
type ControllerBuilder struct {
	cfg       Config
	clock     Clock
	observers []Observer
	sinks     []LogSink
}

// NewBuilder creates a builder seeded with the default configuration and
// the system clock
func NewBuilder() *ControllerBuilder {
	return &ControllerBuilder{
		cfg:   DefaultConfig(),
		clock: SystemClock{},
	}
}

// WithConfig replaces the whole configuration
func (b *ControllerBuilder) WithConfig(cfg Config) *ControllerBuilder {
	b.cfg = cfg
	return b
}

// Mode sets the scheduling policy
func (b *ControllerBuilder) Mode(mode Mode) *ControllerBuilder {
	b.cfg.Mode = mode
	return b
}

// GreenTime sets the fixed-cycle green duration
func (b *ControllerBuilder) GreenTime(d time.Duration) *ControllerBuilder {
	b.cfg.GreenTime = d
	return b
}

// YellowTime sets the clearing duration
func (b *ControllerBuilder) YellowTime(d time.Duration) *ControllerBuilder {
	b.cfg.YellowTime = d
	return b
}

// ReleaseInterval sets the minimum spacing between vehicle releases
func (b *ControllerBuilder) ReleaseInterval(d time.Duration) *ControllerBuilder {
	b.cfg.ReleaseInterval = d
	return b
}

// WithClock injects a time source; tests pass a ManualClock here
func (b *ControllerBuilder) WithClock(clock Clock) *ControllerBuilder {
	b.clock = clock
	return b
}

// WithObserver registers an observer on the built controller
func (b *ControllerBuilder) WithObserver(observer Observer) *ControllerBuilder {
	b.observers = append(b.observers, observer)
	return b
}

// WithLogSink registers a transition notice sink on the built controller
func (b *ControllerBuilder) WithLogSink(sink LogSink) *ControllerBuilder {
	b.sinks = append(b.sinks, sink)
	return b
}

// Build validates the configuration and creates the controller
func (b *ControllerBuilder) Build() (*Controller, error) {
	controller, err := NewController(b.cfg)
	if err != nil {
		return nil, err
	}
	if b.clock != nil {
		controller.clock = b.clock
	}
	for _, o := range b.observers {
		controller.observers.Add(o)
	}
	controller.sinks = append(controller.sinks, b.sinks...)
	return controller, nil
}
