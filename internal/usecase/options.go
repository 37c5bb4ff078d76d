package usecase

import (
	"io"
	"log/slog"
)

// Option configures a use case.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sets the logger; without it use cases log nowhere.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return o
}
