// Package main provides the entry point for the regdiff CLI tool.
package main

import (
	"context"
	"os"

	"github.com/agentstation/regdiff/cmd/regdiff/app"
)

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	application, err := app.New(version, commit, date, builtBy)
	if err != nil {
		app.ExitOnError(err)
	}

	// Cancelled on SIGINT/SIGTERM
	ctx, cancel := app.ContextWithSignals(context.Background())
	defer cancel()

	if err := application.Execute(ctx, os.Args[1:]); err != nil {
		cancel()
		app.ExitOnError(err)
	}
}
