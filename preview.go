package regdiff

import (
	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/differ"
	"github.com/agentstation/regdiff/pkg/reconcile"
)

// Compile-time interface check to ensure proper implementation.
var _ Previewer = (*client)(nil)

// Previewer computes what an apply would do without writing anything.
type Previewer interface {
	Preview() (*Preview, error)
}

// Preview is the reconciliation of the current session.
type Preview struct {
	Summary   *reconcile.Summary `json:"summary" yaml:"summary"`
	Stats     reconcile.Stats    `json:"stats" yaml:"stats"`
	Diff      string             `json:"diff" yaml:"diff"`
	FromLabel string             `json:"from_label" yaml:"from_label"`
	ToLabel   string             `json:"to_label" yaml:"to_label"`
}

// Preview classifies the candidates and diffs the registry against its
// sorted, repeat-free union with the new names.
func (c *client) Preview() (*Preview, error) {
	c.mu.RLock()
	registry := c.registry
	candidates := c.candidates
	from := c.fromLabel()
	c.mu.RUnlock()

	return c.preview(registry, candidates, from)
}

// preview does the work of Preview on a snapshot of the session.
func (c *client) preview(registry, candidates []string, from string) (*Preview, error) {
	summary := c.reconciler.Summarize(registry, candidates)
	target := reconcile.PreviewTarget(registry, summary.ToAdd)

	d := differ.New(
		differ.WithLabels(from, constants.UpdatedRegistryLabel),
		differ.WithContext(c.config.ContextLines),
	)
	diff, err := d.Diff(registry, target)
	if err != nil {
		return nil, err
	}

	return &Preview{
		Summary:   summary,
		Stats:     reconcile.NewStats(registry, candidates, summary),
		Diff:      diff,
		FromLabel: from,
		ToLabel:   constants.UpdatedRegistryLabel,
	}, nil
}
