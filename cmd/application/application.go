// Package application provides the application interface for regdiff commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            rd, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            // ... load files and preview
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    SettingsFunc: func() regdiff.Config {
//	        cfg := regdiff.DefaultConfig()
//	        cfg.DedupInput = true
//	        return cfg
//	    },
//	}
//	cmd := preview.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/regdiff"
)

// Application provides the application interface that commands need.
// The App struct from cmd/regdiff/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Settings returns the session settings resolved from config files,
	// environment and .env files. Command flags are applied on top.
	Settings() regdiff.Config

	// Client returns a new session using Settings, followed by opts.
	// Every call creates a fresh session.
	Client(opts ...regdiff.Option) (regdiff.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, markdown).
	OutputFormat() string

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
