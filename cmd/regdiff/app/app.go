// Package app provides the application context and dependency management
// for the regdiff CLI. It centralizes configuration, logging and the
// construction of reconciliation sessions for the commands.
package app

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/cmd/application"
	"github.com/agentstation/regdiff/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the regdiff application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config
	flags  *RootFlags

	// Logger
	logger *zerolog.Logger

	// Filesystem for name files; nil means the OS filesystem
	fs afero.Fs
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and default config file
// locations and can be replaced with functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		flags:   &RootFlags{},
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// NoColor reports whether colored output is disabled.
func (a *App) NoColor() bool {
	return a.config.NoColor
}

// Settings returns the session settings from the configuration.
func (a *App) Settings() regdiff.Config {
	return a.config.Settings()
}

// Client creates a new session from the configuration followed by opts.
func (a *App) Client(opts ...regdiff.Option) (regdiff.Client, error) {
	base := []regdiff.Option{
		regdiff.WithConfig(a.Settings()),
		regdiff.WithLogger(a.logger),
	}
	if a.fs != nil {
		base = append(base, regdiff.WithFS(a.fs))
	}

	rd, err := regdiff.New(append(base, opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("session", "cannot create session", err)
	}
	return rd, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "config is required")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithFS sets the filesystem sessions read and write name files on.
func WithFS(fs afero.Fs) Option {
	return func(a *App) error {
		a.fs = fs
		return nil
	}
}
