package regdiff

import (
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/similarity"
)

// Config holds the settings of a session.
type Config struct {
	// SortOnSave sorts the updated registry before writing it.
	SortOnSave bool `json:"sort_on_save" yaml:"sort_on_save"`

	// DedupInput collapses repeated candidates before classification.
	DedupInput bool `json:"dedup_input" yaml:"dedup_input"`

	// CreateBackup writes the previous registry to <path>.bak before applying.
	CreateBackup bool `json:"create_backup" yaml:"create_backup"`

	// SimilarityThreshold is the minimum score for a near-duplicate hint.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`

	// SimilarityMetric selects the scoring function for near-duplicates.
	SimilarityMetric similarity.Metric `json:"similarity_metric" yaml:"similarity_metric"`

	// ContextLines is the number of unchanged lines around each diff hunk.
	ContextLines int `json:"context_lines" yaml:"context_lines"`
}

// DefaultConfig returns the settings a new session starts with.
func DefaultConfig() Config {
	return Config{
		SortOnSave:          true,
		DedupInput:          false,
		CreateBackup:        false,
		SimilarityThreshold: constants.DefaultSimilarityThreshold,
		SimilarityMetric:    similarity.MetricRatio,
		ContextLines:        constants.DefaultContextLines,
	}
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errors.NewValidationError("similarity_threshold", c.SimilarityThreshold, "must be between 0 and 1")
	}
	if c.ContextLines < 0 {
		return errors.NewValidationError("context_lines", c.ContextLines, "must not be negative")
	}
	return c.SimilarityMetric.Validate()
}

// options carries everything New needs beyond Config.
type options struct {
	config Config
	fs     afero.Fs
	logger *zerolog.Logger
}

func defaults() *options {
	return &options{
		config: DefaultConfig(),
		fs:     afero.NewOsFs(),
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// Option is a function that configures a Client
type Option func(*options) error

// WithConfig replaces all session settings at once
func WithConfig(cfg Config) Option {
	return func(o *options) error {
		o.config = cfg
		return nil
	}
}

// WithSortOnSave configures whether the updated registry is sorted
func WithSortOnSave(enabled bool) Option {
	return func(o *options) error {
		o.config.SortOnSave = enabled
		return nil
	}
}

// WithDedupInput configures whether repeated candidates are collapsed
func WithDedupInput(enabled bool) Option {
	return func(o *options) error {
		o.config.DedupInput = enabled
		return nil
	}
}

// WithCreateBackup configures whether a .bak copy is written before applying
func WithCreateBackup(enabled bool) Option {
	return func(o *options) error {
		o.config.CreateBackup = enabled
		return nil
	}
}

// WithSimilarityThreshold configures the near-duplicate threshold
func WithSimilarityThreshold(threshold float64) Option {
	return func(o *options) error {
		o.config.SimilarityThreshold = threshold
		return nil
	}
}

// WithSimilarityMetric configures the near-duplicate scoring function
func WithSimilarityMetric(metric similarity.Metric) Option {
	return func(o *options) error {
		if err := metric.Validate(); err != nil {
			return err
		}
		o.config.SimilarityMetric = metric
		return nil
	}
}

// WithContextLines configures the diff context
func WithContextLines(lines int) Option {
	return func(o *options) error {
		o.config.ContextLines = lines
		return nil
	}
}

// WithFS configures the filesystem used for reading and writing name files
func WithFS(fs afero.Fs) Option {
	return func(o *options) error {
		if fs == nil {
			return errors.NewValidationError("fs", nil, "filesystem is required")
		}
		o.fs = fs
		return nil
	}
}

// WithLogger configures the logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
