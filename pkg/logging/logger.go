// Package logging provides structured logging for regdiff using zerolog.
// Terminals get human-readable console output; pipes and files get JSON.
//
// Example usage:
//
//	logger := logging.NewLoggerFromConfig(logging.FromEnv())
//	logger.Info().Str("path", "registry.txt").Int("added", 3).Msg("Registry updated")
//
//	ctx := logging.WithOperation(logging.WithLogger(ctx, &logger), "apply")
//	logging.FromContext(ctx).Debug().Msg("Computing summary")
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when no logger was configured explicitly.
var defaultLogger = NewLoggerFromConfig(FromEnv())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// OrNop returns logger, or a discarding logger when logger is nil.
// Library types use it so a zero-value option set stays silent.
func OrNop(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
