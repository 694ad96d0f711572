// Package diff implements the diff command.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/cmd/application"
	"github.com/agentstation/regdiff/internal/cmd/alerts"
	"github.com/agentstation/regdiff/internal/cmd/cmdutil"
	"github.com/agentstation/regdiff/internal/cmd/output"
	"github.com/agentstation/regdiff/pkg/differ"
	"github.com/agentstation/regdiff/pkg/errors"
)

// NewCommand creates the diff command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		export   string
		colorize bool
	)

	cmd := &cobra.Command{
		Use:     "diff",
		GroupID: "core",
		Short:   "Show or export the unified diff of a pending apply",
		Long: `Diff prints the unified diff between the registry and its sorted union with
the new candidate names. With --export the diff is written to a patch file.`,
		Example: `  regdiff diff -r registry.txt -c new.txt
  regdiff diff -r registry.txt -c new.txt --context 0 --color
  regdiff diff -r registry.txt -c new.txt --export changes.patch`,
		Args: cobra.NoArgs,
	}

	flags := cmdutil.AddSessionFlags(cmd, app.Settings())
	cmd.Flags().StringVar(&export, "export", "", "Write the diff to this file instead of standard output")
	cmd.Flags().BoolVar(&colorize, "color", false, "Color the diff even when output is not a terminal")

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

		notices := alerts.NewFormatWriter(cmd.ErrOrStderr(), output.DetectFormat(app.OutputFormat())).
			NoColor(app.NoColor())

		if export != "" {
			err := rd.ExportDiff(export)
			if errors.IsNoOp(err) {
				return notices.WriteError(err)
			}
			if err != nil {
				return err
			}
			return notices.WriteAlert(alerts.NewSuccess("Diff exported: " + export))
		}

		p, err := rd.Preview()
		if err != nil {
			return err
		}
		if p.Diff == "" {
			return notices.WriteAlert(alerts.NewInfo("No changes"))
		}

		enabled := !app.NoColor() && (colorize || output.IsTerminal(cmd.OutOrStdout()))
		return differ.Colorize(cmd.OutOrStdout(), p.Diff, enabled)
	}

	return cmd
}
