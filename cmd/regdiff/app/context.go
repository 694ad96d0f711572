package app

import (
	"context"
	"os/signal"
	"syscall"
)

// ContextWithSignals creates a context that is cancelled when the application
// receives an interrupt or termination signal. An apply that has not started
// writing yet is abandoned; one that has finishes its atomic rename.
func ContextWithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
