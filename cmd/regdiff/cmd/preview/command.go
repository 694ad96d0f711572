// Package preview implements the preview command.
package preview

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/cmd/application"
	"github.com/agentstation/regdiff/internal/cmd/cmdutil"
	"github.com/agentstation/regdiff/internal/cmd/output"
)

// NewCommand creates the preview command.
func NewCommand(app application.Application) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:     "preview",
		GroupID: "core",
		Short:   "Classify candidate names against a registry",
		Long: `Preview classifies every candidate name as new, an exact duplicate of a
registry entry, or a near-duplicate worth checking, without writing anything.`,
		Example: `  regdiff preview -r registry.txt -c new.txt
  regdiff preview -r registry.txt -c new.txt --threshold 0.9 -o json
  cat new.txt | regdiff preview -r registry.txt -c - --show-diff`,
		Args: cobra.NoArgs,
	}

	flags := cmdutil.AddSessionFlags(cmd, app.Settings())
	cmd.Flags().BoolVar(&showDiff, "show-diff", false, "Include the unified diff in the report")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Apply(cmd, app.Settings())
		if err != nil {
			return err
		}

		rd, err := app.Client(regdiff.WithConfig(cfg), regdiff.WithLogger(flags.Logger(cmd)))
		if err != nil {
			return err
		}
		if err := flags.Load(cmd, rd, false); err != nil {
			return err
		}

		p, err := rd.Preview()
		if err != nil {
			return err
		}

		flags.Logger(cmd).Debug().
			Int("to_add", len(p.Summary.ToAdd)).
			Int("duplicates", len(p.Summary.Duplicates)).
			Int("similar", len(p.Summary.Similar)).
			Msg("Preview computed")

		format := output.DetectFormat(app.OutputFormat())
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.PreviewReport(p, showDiff))
	}

	return cmd
}
