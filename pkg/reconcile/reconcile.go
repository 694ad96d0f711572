// Package reconcile classifies candidate names against a registry.
//
// Every candidate ends up in exactly one of two buckets: ToAdd (absent from
// the registry) or Duplicates (an exact registry member). New names are
// additionally checked for near-duplicates in the registry so a caller can
// warn before adding "alpha1" next to "alpha".
//
// Reconciliation is pure: inputs are never modified and a Summary is
// recomputed from scratch on every call.
package reconcile

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/logging"
	"github.com/agentstation/regdiff/pkg/names"
	"github.com/agentstation/regdiff/pkg/similarity"
)

// Reconciler computes summaries for a fixed configuration.
type Reconciler interface {
	// Summarize classifies candidates against registry. Both inputs must
	// already be normalized names.
	Summarize(registry, candidates []string) *Summary
}

// reconciler is the default implementation of Reconciler
type reconciler struct {
	dedupInput bool
	threshold  float64
	metric     similarity.Metric
	maxMatches int
	logger     *zerolog.Logger
}

// Option configures a Reconciler
type Option func(*reconciler) error

// WithDedupInput collapses repeated candidates before classification and
// reports their counts in Summary.InputDups.
func WithDedupInput(enabled bool) Option {
	return func(r *reconciler) error {
		r.dedupInput = enabled
		return nil
	}
}

// WithThreshold sets the similarity threshold for near-duplicate suggestions.
func WithThreshold(threshold float64) Option {
	return func(r *reconciler) error {
		r.threshold = threshold
		return nil
	}
}

// WithMetric selects the similarity metric.
func WithMetric(metric similarity.Metric) Option {
	return func(r *reconciler) error {
		if err := metric.Validate(); err != nil {
			return err
		}
		r.metric = metric
		return nil
	}
}

// WithMaxMatches bounds the number of suggestions per new name.
func WithMaxMatches(n int) Option {
	return func(r *reconciler) error {
		if n > 0 {
			r.maxMatches = n
		}
		return nil
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *reconciler) error {
		r.logger = logger
		return nil
	}
}

// New creates a new Reconciler with options
func New(opts ...Option) (Reconciler, error) {
	r := &reconciler{
		threshold:  constants.DefaultSimilarityThreshold,
		metric:     similarity.MetricRatio,
		maxMatches: constants.MaxSimilarMatches,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = logging.OrNop(r.logger)

	return r, nil
}

// ComputeSummary classifies candidates against registry with the default
// metric and suggestion limit.
func ComputeSummary(registry, candidates []string, dedupInput bool, threshold float64) *Summary {
	r := &reconciler{
		dedupInput: dedupInput,
		threshold:  threshold,
		metric:     similarity.MetricRatio,
		maxMatches: constants.MaxSimilarMatches,
		logger:     logging.OrNop(nil),
	}
	return r.Summarize(registry, candidates)
}

// Summarize implements Reconciler.
func (r *reconciler) Summarize(registry, candidates []string) *Summary {
	summary := &Summary{
		ToAdd:      []string{},
		Duplicates: []string{},
		Similar:    map[string][]string{},
	}

	incoming := candidates
	if r.dedupInput {
		incoming, summary.InputDups = names.Deduplicate(candidates)
	}

	matcher := similarity.New(
		similarity.WithThreshold(r.threshold),
		similarity.WithLimit(r.maxMatches),
		similarity.WithMetric(r.metric),
	)
	known := names.Set(registry)

	for _, name := range incoming {
		if _, ok := known[name]; ok {
			summary.Duplicates = append(summary.Duplicates, name)
			continue
		}
		summary.ToAdd = append(summary.ToAdd, name)
		if matches := matcher.Names(name, registry); len(matches) > 0 {
			summary.Similar[name] = matches
		}
	}

	sort.Strings(summary.ToAdd)
	sort.Strings(summary.Duplicates)

	r.logger.Debug().
		Int("registry", len(registry)).
		Int("candidates", len(candidates)).
		Int("to_add", len(summary.ToAdd)).
		Int("duplicates", len(summary.Duplicates)).
		Int("similar", len(summary.Similar)).
		Float64("threshold", r.threshold).
		Str("metric", r.metric.String()).
		Msg("Computed reconciliation summary")

	return summary
}
