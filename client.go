// Package regdiff reconciles a registry of known names against a list of
// candidate names.
//
// A Client holds the registry and candidate lists for one session. It
// classifies every candidate as a new name, an exact duplicate or a
// near-duplicate of a registry entry, previews the change as a unified diff
// and writes the updated registry atomically, optionally keeping a backup of
// the previous version.
//
// Example usage:
//
//	rd, err := regdiff.New(regdiff.WithSimilarityThreshold(0.85))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := rd.LoadRegistry("registry.txt"); err != nil {
//	    log.Fatal(err)
//	}
//	rd.SetCandidates("alpha\nbeta\n")
//
//	preview, err := rd.Preview()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(preview.Diff)
//
//	result, err := rd.Apply(ctx, regdiff.WithBackup(true))
//	if errors.IsNoOp(err) {
//	    return
//	}
package regdiff

import (
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/logging"
	"github.com/agentstation/regdiff/pkg/reconcile"
	"github.com/agentstation/regdiff/pkg/save"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Client manages one reconciliation session.
type Client interface {

	// Session loads and exposes the registry and candidate lists
	Session

	// Previewer computes the reconciliation and its diff
	Previewer

	// Persistence applies changes and exports diffs
	Persistence

	// Hooks provides access to event callback registration
	Hooks

	// Config returns the settings the client was created with
	Config() Config
}

// client is the internal implementation of the Client interface.
type client struct {
	config     Config
	logger     *zerolog.Logger
	writer     *save.Writer
	fs         afero.Fs
	reconciler reconcile.Reconciler

	// session state
	mu           sync.RWMutex
	registry     []string
	candidates   []string
	registryPath string

	hooks *hooks
}

// New creates a new Client instance with the given options.
func New(opts ...Option) (Client, error) {
	o := defaults()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	logger := logging.OrNop(o.logger)
	r, err := reconcile.New(
		reconcile.WithDedupInput(o.config.DedupInput),
		reconcile.WithThreshold(o.config.SimilarityThreshold),
		reconcile.WithMetric(o.config.SimilarityMetric),
		reconcile.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.NewConfigError("reconciler", "invalid client configuration", err)
	}

	return &client{
		config:     o.config,
		logger:     logger,
		writer:     save.NewWriter(save.WithFS(o.fs), save.WithLogger(logger)),
		fs:         o.fs,
		reconciler: r,
		registry:   []string{},
		candidates: []string{},
		hooks:      newHooks(),
	}, nil
}

// Config returns the settings the client was created with.
func (c *client) Config() Config {
	return c.config
}

// fromLabel returns the diff label for the current registry.
// Callers must hold c.mu.
func (c *client) fromLabel() string {
	if c.registryPath == "" {
		return constants.DefaultRegistryLabel
	}
	return filepath.Base(c.registryPath)
}
