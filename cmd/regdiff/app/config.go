package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/regdiff"
	"github.com/agentstation/regdiff/internal/cmd/cmdutil"
	"github.com/agentstation/regdiff/internal/cmd/output"
	"github.com/agentstation/regdiff/pkg/constants"
	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/similarity"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Session settings
	SortOnSave          bool
	DedupInput          bool
	CreateBackup        bool
	SimilarityThreshold float64
	SimilarityMetric    string
	ContextLines        int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (REGDIFF_*)
// 3. .env files
// 4. Config file (configFile, or .regdiff.yaml in $HOME or the working directory)
// 5. Defaults
//
// An explicit configFile that cannot be read is an error; a missing
// default config file is not.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if configFile == "" {
		configFile = os.Getenv(constants.EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", "cannot read "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigFileName)

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config file", "cannot parse "+v.ConfigFileUsed(), err)
			}
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Output:  v.GetString("output"),

		ConfigFile: v.ConfigFileUsed(),

		SortOnSave:          v.GetBool("sort_on_save"),
		DedupInput:          v.GetBool("dedup_input"),
		CreateBackup:        v.GetBool("create_backup"),
		SimilarityThreshold: v.GetFloat64("similarity_threshold"),
		SimilarityMetric:    v.GetString("similarity_metric"),
		ContextLines:        v.GetInt("context_lines"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}, nil
}

// setDefaults registers the initial state of every setting.
func setDefaults(v *viper.Viper) {
	defaults := regdiff.DefaultConfig()
	v.SetDefault("sort_on_save", defaults.SortOnSave)
	v.SetDefault("dedup_input", defaults.DedupInput)
	v.SetDefault("create_backup", defaults.CreateBackup)
	v.SetDefault("similarity_threshold", defaults.SimilarityThreshold)
	v.SetDefault("similarity_metric", string(defaults.SimilarityMetric))
	v.SetDefault("context_lines", defaults.ContextLines)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// bindEnv lets the conventional unprefixed variables configure logging and color.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("log_level", constants.EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL")
	_ = v.BindEnv("log_format", constants.EnvPrefix+"_LOG_FORMAT", "LOG_FORMAT")
	_ = v.BindEnv("log_output", constants.EnvPrefix+"_LOG_OUTPUT", "LOG_OUTPUT")
	_ = v.BindEnv("no_color", constants.EnvPrefix+"_NO_COLOR", "NO_COLOR")
}

// Validate checks the settings a user can get wrong.
func (c *Config) Validate() error {
	if err := cmdutil.ValidateThreshold(c.SimilarityThreshold); err != nil {
		return err
	}
	if c.ContextLines < 0 {
		return errors.NewValidationError("context_lines", c.ContextLines, "must not be negative")
	}
	if _, err := similarity.ParseMetric(c.SimilarityMetric); err != nil {
		return err
	}
	if _, err := output.ParseFormat(c.Output); err != nil {
		return errors.WrapValidation("output", err)
	}
	return nil
}

// Settings converts the configuration into session settings.
func (c *Config) Settings() regdiff.Config {
	return regdiff.Config{
		SortOnSave:          c.SortOnSave,
		DedupInput:          c.DedupInput,
		CreateBackup:        c.CreateBackup,
		SimilarityThreshold: c.SimilarityThreshold,
		SimilarityMetric:    similarity.Metric(c.SimilarityMetric),
		ContextLines:        c.ContextLines,
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// Only flags the user set override file and environment values.
func (c *Config) UpdateFromFlags(flags *RootFlags, changed func(string) bool) {
	if changed("verbose") {
		c.Verbose = flags.Verbose
	}
	if changed("quiet") {
		c.Quiet = flags.Quiet
	}
	if changed("no-color") {
		c.NoColor = flags.NoColor
	}
	if changed("output") {
		c.Output = flags.Output
	}
	if changed("log-level") {
		c.LogLevel = flags.LogLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; variables already set win over both.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}
