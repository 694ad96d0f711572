// Package cmdutil provides shared flags and session helpers for regdiff commands.
package cmdutil

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/logging"
	"github.com/agentstation/regdiff/pkg/similarity"
)

// StdinName selects standard input as the candidate source.
const StdinName = "-"

// SessionFlags holds the flags every reconciling command takes.
type SessionFlags struct {
	Registry   string
	Candidates string
	Threshold  float64
	Metric     string
	Dedup      bool
	Context    int
}

// AddSessionFlags adds input and matching flags to a command.
// Defaults come from the resolved settings so help output shows them.
func AddSessionFlags(cmd *cobra.Command, defaults regdiff.Config) *SessionFlags {
	flags := &SessionFlags{}

	cmd.Flags().StringVarP(&flags.Registry, "registry", "r", "",
		"Registry file (one name per line)")
	cmd.Flags().StringVarP(&flags.Candidates, "candidates", "c", "",
		"Candidate names file, or - for standard input")
	cmd.Flags().Float64VarP(&flags.Threshold, "threshold", "t", defaults.SimilarityThreshold,
		"Similarity threshold for near-duplicate hints (0.60-0.95)")
	cmd.Flags().StringVar(&flags.Metric, "metric", string(defaults.SimilarityMetric),
		"Similarity metric: ratio, levenshtein")
	cmd.Flags().BoolVar(&flags.Dedup, "dedup", defaults.DedupInput,
		"Collapse repeated candidate names before classifying")
	cmd.Flags().IntVar(&flags.Context, "context", defaults.ContextLines,
		"Unchanged lines shown around each diff hunk")

	return flags
}

// Apply overlays the flags the user set on base.
func (f *SessionFlags) Apply(cmd *cobra.Command, base regdiff.Config) (regdiff.Config, error) {
	cfg := base
	changed := cmd.Flags().Changed

	if changed("threshold") {
		cfg.SimilarityThreshold = f.Threshold
	}
	if changed("metric") {
		metric, err := similarity.ParseMetric(f.Metric)
		if err != nil {
			return cfg, err
		}
		cfg.SimilarityMetric = metric
	}
	if changed("dedup") {
		cfg.DedupInput = f.Dedup
	}
	if changed("context") {
		cfg.ContextLines = f.Context
	}

	if err := ValidateThreshold(cfg.SimilarityThreshold); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ValidateThreshold checks a threshold against the range users may pick.
func ValidateThreshold(threshold float64) error {
	if threshold < constants.MinSimilarityThreshold || threshold > constants.MaxSimilarityThreshold {
		return errors.NewValidationError("threshold", threshold, "must be between 0.60 and 0.95")
	}
	return nil
}

// Load reads the registry and candidates named by the flags into rd.
// A registry is required unless requireRegistry is false.
func (f *SessionFlags) Load(cmd *cobra.Command, rd regdiff.Client, requireRegistry bool) error {
	if f.Registry == "" {
		if requireRegistry {
			return errors.NewValidationError("registry", nil, "--registry is required")
		}
	} else if err := rd.LoadRegistry(f.Registry); err != nil {
		return err
	}

	switch f.Candidates {
	case "":
		return nil
	case StdinName:
		return rd.ReadCandidates(cmd.InOrStdin())
	default:
		return rd.LoadCandidates(f.Candidates)
	}
}

// Logger returns the command's logger tagged with the registry path.
func (f *SessionFlags) Logger(cmd *cobra.Command) *zerolog.Logger {
	ctx := cmd.Context()
	if f.Registry != "" {
		ctx = logging.WithPath(ctx, f.Registry)
	}
	return logging.FromContext(ctx)
}
