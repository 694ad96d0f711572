package save

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options is the configuration for a Writer.
type Options struct {
	fs     afero.Fs
	logger *zerolog.Logger
}

// Apply applies the given options to the save options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures save options.
type Option func(*Options)

// WithFS writes through fs instead of the OS filesystem.
func WithFS(fs afero.Fs) Option {
	return func(o *Options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithLogger logs commits and failures to logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}
