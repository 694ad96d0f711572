package regdiff

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/names"
	"github.com/agentstation/regdiff/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence writes the results of a session to disk.
type Persistence interface {
	// Apply merges the new names into the registry and writes it.
	Apply(ctx context.Context, opts ...ApplyOption) (*ApplyResult, error)

	// ExportDiff writes the current preview diff to path.
	ExportDiff(path string) error
}

// ApplyResult reports what an apply wrote.
type ApplyResult struct {
	Path              string `json:"path" yaml:"path"`
	BackupPath        string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
	Original          int    `json:"original" yaml:"original"`
	Added             int    `json:"added" yaml:"added"`
	DuplicatesIgnored int    `json:"duplicates_ignored" yaml:"duplicates_ignored"`
	UpdatedTotal      int    `json:"updated_total" yaml:"updated_total"`
	Sorted            bool   `json:"sorted" yaml:"sorted"`
	Warning           string `json:"warning,omitempty" yaml:"warning,omitempty"`

	// BackupWarning is the backup failure, if any. The registry was still written.
	BackupWarning error `json:"-" yaml:"-"`
}

// Lines renders the result as label/value lines.
func (r *ApplyResult) Lines() []string {
	return []string{
		fmt.Sprintf("Original: %d", r.Original),
		fmt.Sprintf("Added: %d", r.Added),
		fmt.Sprintf("Duplicates ignored: %d", r.DuplicatesIgnored),
		fmt.Sprintf("Updated total: %d", r.UpdatedTotal),
	}
}

// applyOptions holds per-call overrides of the session settings.
type applyOptions struct {
	target string
	sort   bool
	backup bool
}

// ApplyOption configures a single Apply call
type ApplyOption func(*applyOptions)

// WithTarget writes the registry to path instead of the loaded registry path
func WithTarget(path string) ApplyOption {
	return func(o *applyOptions) {
		o.target = path
	}
}

// WithSort overrides the SortOnSave setting for one apply
func WithSort(enabled bool) ApplyOption {
	return func(o *applyOptions) {
		o.sort = enabled
	}
}

// WithBackup overrides the CreateBackup setting for one apply
func WithBackup(enabled bool) ApplyOption {
	return func(o *applyOptions) {
		o.backup = enabled
	}
}

// Apply merges the new names into the registry and writes the result.
//
// Both lists empty yields an errors.NoOpError. Without a loaded registry
// path or WithTarget there is nowhere to write and a ValidationError is
// returned. A failed backup does not stop the write; it is reported in
// ApplyResult.BackupWarning. A failed write leaves both the file and the
// session unchanged.
func (c *client) Apply(ctx context.Context, opts ...ApplyOption) (*ApplyResult, error) {
	o := &applyOptions{
		sort:   c.config.SortOnSave,
		backup: c.config.CreateBackup,
	}
	for _, opt := range opts {
		opt(o)
	}

	result, added, err := c.apply(ctx, o)
	if err != nil {
		return nil, err
	}

	c.hooks.triggerApplied(added, result)
	return result, nil
}

// apply performs Apply under the session lock and returns the names it added.
func (c *client) apply(ctx context.Context, o *applyOptions) (*ApplyResult, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.registry) == 0 && len(c.candidates) == 0 {
		return nil, nil, errors.NewNoOpError("apply", "nothing to apply")
	}

	target := o.target
	if target == "" {
		target = c.registryPath
	}
	if target == "" {
		return nil, nil, errors.NewValidationError("target", nil, "no registry path to write to")
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}

	summary := c.reconciler.Summarize(c.registry, c.candidates)
	updated := reconcile.Merge(c.registry, summary.ToAdd, o.sort)

	result := &ApplyResult{
		Path:              target,
		Original:          len(c.registry),
		Added:             len(summary.ToAdd),
		DuplicatesIgnored: len(summary.Duplicates),
		UpdatedTotal:      len(updated),
		Sorted:            o.sort,
	}

	if o.backup {
		backupPath, err := c.backup(target, o.sort)
		if err != nil {
			result.BackupWarning = err
			result.Warning = err.Error()
		}
		result.BackupPath = backupPath
	}

	if err := c.writer.WriteAtomic(target, updated, false); err != nil {
		return nil, nil, err
	}

	c.registry = updated
	c.registryPath = target

	c.logger.Info().
		Str("path", target).
		Int("original", result.Original).
		Int("added", result.Added).
		Int("duplicates_ignored", result.DuplicatesIgnored).
		Int("updated_total", result.UpdatedTotal).
		Msg("Registry updated")

	return result, summary.ToAdd, nil
}

// backup saves what target holds before it is replaced. The loaded
// registry is the previous content of its own path; any other target is
// read back from disk so its own names are kept. Callers must hold c.mu.
func (c *client) backup(target string, sortOutput bool) (string, error) {
	if target == c.registryPath {
		return c.writer.Backup(target, c.registry, sortOutput)
	}

	previous, err := names.ReadFS(c.fs, target)
	switch {
	case errors.IsNotFound(err):
		return "", nil
	case err != nil:
		return "", errors.NewWarning("backup", err)
	}
	return c.writer.Backup(target, previous, false)
}

// ExportDiff writes the current preview diff to path. An empty diff
// yields an errors.NoOpError.
func (c *client) ExportDiff(path string) error {
	preview, err := c.Preview()
	if err != nil {
		return err
	}
	if strings.TrimSpace(preview.Diff) == "" {
		return errors.NewNoOpError("export", "nothing to export")
	}

	if err := c.writer.WriteFile(path, []byte(preview.Diff)); err != nil {
		return err
	}

	c.logger.Info().Str("path", path).Msg("Diff exported")
	return nil
}
