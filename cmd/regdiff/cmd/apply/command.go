// Package apply implements the apply command.
package apply

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/cmd/application"
	"github.com/agentstation/regdiff/internal/cmd/alerts"
	"github.com/agentstation/regdiff/internal/cmd/cmdutil"
	"github.com/agentstation/regdiff/internal/cmd/output"
	"github.com/agentstation/regdiff/pkg/errors"
)

// NewCommand creates the apply command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		sortOutput bool
		noSort     bool
		backup     bool
		outputPath string
	)

	settings := app.Settings()
	cmd := &cobra.Command{
		Use:     "apply",
		GroupID: "core",
		Short:   "Add new candidate names to the registry file",
		Long: `Apply merges the new candidate names into the registry and writes it
atomically. Exact duplicates are ignored. With --backup the previous registry
is kept next to it as <registry>.bak.`,
		Example: `  regdiff apply -r registry.txt -c new.txt
  regdiff apply -r registry.txt -c new.txt --backup --no-sort
  regdiff apply -r registry.txt -c new.txt --output-path merged.txt`,
		Args: cobra.NoArgs,
	}

	flags := cmdutil.AddSessionFlags(cmd, settings)
	cmd.Flags().BoolVar(&sortOutput, "sort", settings.SortOnSave, "Sort the updated registry")
	cmd.Flags().BoolVar(&noSort, "no-sort", false, "Keep registry order and append new names")
	cmd.Flags().BoolVar(&backup, "backup", settings.CreateBackup, "Write the previous registry to <registry>.bak")
	cmd.Flags().StringVar(&outputPath, "output-path", "", "Write the updated registry here instead of over --registry")
	cmd.MarkFlagsMutuallyExclusive("sort", "no-sort")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := flags.Apply(cmd, app.Settings())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("sort") {
			cfg.SortOnSave = sortOutput
		}
		if noSort {
			cfg.SortOnSave = false
		}
		if cmd.Flags().Changed("backup") {
			cfg.CreateBackup = backup
		}

		rd, err := app.Client(regdiff.WithConfig(cfg), regdiff.WithLogger(flags.Logger(cmd)))
		if err != nil {
			return err
		}
		if err := flags.Load(cmd, rd, outputPath == ""); err != nil {
			return err
		}

		var opts []regdiff.ApplyOption
		if outputPath != "" {
			opts = append(opts, regdiff.WithTarget(outputPath))
		}

		format := output.DetectFormat(app.OutputFormat())
		notices := alerts.NewFormatWriter(cmd.ErrOrStderr(), format).NoColor(app.NoColor())

		result, err := rd.Apply(cmd.Context(), opts...)
		if errors.IsNoOp(err) {
			return notices.WriteError(err)
		}
		if err != nil {
			return err
		}

		if result.BackupWarning != nil {
			if err := notices.WriteError(result.BackupWarning); err != nil {
				return err
			}
		}

		return output.NewFormatter(format).Format(cmd.OutOrStdout(), output.ApplyReport(result))
	}

	return cmd
}
