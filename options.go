package kaisou

import "log/slog"

// Option configures a Hierarchy.
type Option func(*options)

type options struct {
	logger *slog.Logger
	bus    *EventBus
}

func defaultOptions() options {
	return options{logger: slog.New(slog.DiscardHandler)}
}

// WithLogger sets the logger used for attach/detach tracing (Debug) and
// dangling-link faults (Warn). A nil logger keeps the default, which discards
// everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventBus makes the hierarchy publish Attached and Detached events on
// bus.
func WithEventBus(bus *EventBus) Option {
	return func(o *options) {
		o.bus = bus
	}
}
