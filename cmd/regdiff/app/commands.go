package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/regdiff/cmd/regdiff/cmd/apply"
	"github.com/agentstation/regdiff/cmd/regdiff/cmd/diff"
	"github.com/agentstation/regdiff/cmd/regdiff/cmd/preview"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(preview.NewCommand(a))
	rootCmd.AddCommand(apply.NewCommand(a))
	rootCmd.AddCommand(diff.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.newVersionCommand())
	rootCmd.AddCommand(a.newManCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "regdiff %s\n", a.version)
			if a.config.Verbose {
				_, _ = fmt.Fprintf(out, "  commit:   %s\n", a.commit)
				_, _ = fmt.Fprintf(out, "  built:    %s\n", a.date)
				_, _ = fmt.Fprintf(out, "  built by: %s\n", a.builtBy)
				_, _ = fmt.Fprintf(out, "  go:       %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}

// newManCommand creates the man command.
func (a *App) newManCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:    "man",
		Short:  "Generate man pages",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "REGDIFF",
				Section: "1",
				Source:  "regdiff " + a.version,
				Manual:  "regdiff Manual",
			}

			root := cmd.Root()
			if dir == "" {
				return doc.GenMan(root, header, cmd.OutOrStdout())
			}
			if err := doc.GenManTree(root, header, dir); err != nil {
				return fmt.Errorf("generating man pages in %s: %w", dir, err)
			}
			a.logger.Info().Str("dir", dir).Msg("Man pages written")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "write one page per command to this directory instead of stdout")

	return cmd
}
