package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/regdiff/pkg/logging"
)

// RootFlags holds the persistent flags of the root command.
type RootFlags struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	Output     string
	LogLevel   string
}

// Execute runs the regdiff CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "regdiff",
		Short:   "Reconcile candidate names against a registry",
		Version: a.version,
		Long: `regdiff reconciles a registry of known names against a list of candidate
names. Each candidate is classified as new, an exact duplicate or a
near-duplicate of an existing entry; the change is previewed as a unified
diff and written to the registry file atomically, with an optional backup.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.flags.ConfigFile, "config", "", "config file (default is $HOME/.regdiff.yaml)")
	flags.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	flags.StringVarP(&a.flags.Output, "output", "o", "", "output format: table, json, yaml, markdown")
	flags.StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("regdiff {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the
// configuration when --config names a file, applies the global flags and
// rebuilds the logger.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if a.flags.ConfigFile != "" {
		config, err := LoadConfig(a.flags.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(a.flags, cmd.Flags().Changed)
	if err := a.config.Validate(); err != nil {
		return err
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithOperation(logging.WithLogger(cmd.Context(), a.logger), cmd.Name()))

	a.logger.Debug().
		Str("command", cmd.Name()).
		Str("config_file", a.config.ConfigFile).
		Msg("Configuration loaded")
	return nil
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
