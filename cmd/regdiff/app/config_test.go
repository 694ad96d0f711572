package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/regdiff/pkg/errors"
	"github.com/agentstation/regdiff/pkg/similarity"
)

// isolate runs the test in an empty directory with no inherited settings.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"REGDIFF_CONFIG", "REGDIFF_SORT_ON_SAVE", "REGDIFF_DEDUP_INPUT", "REGDIFF_CREATE_BACKUP",
		"REGDIFF_SIMILARITY_THRESHOLD", "REGDIFF_SIMILARITY_METRIC", "REGDIFF_CONTEXT_LINES",
		"REGDIFF_OUTPUT", "LOG_LEVEL", "REGDIFF_LOG_LEVEL", "NO_COLOR", "REGDIFF_NO_COLOR",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, config.SortOnSave)
	assert.False(t, config.DedupInput)
	assert.False(t, config.CreateBackup)
	assert.InDelta(t, 0.80, config.SimilarityThreshold, 1e-9)
	assert.Equal(t, "ratio", config.SimilarityMetric)
	assert.Equal(t, 3, config.ContextLines)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
	assert.Empty(t, config.LogLevel)
	assert.Empty(t, config.ConfigFile)
	assert.NoError(t, config.Validate())
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("REGDIFF_SORT_ON_SAVE", "false")
	t.Setenv("REGDIFF_DEDUP_INPUT", "true")
	t.Setenv("REGDIFF_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("REGDIFF_SIMILARITY_METRIC", "levenshtein")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NO_COLOR", "1")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.False(t, config.SortOnSave)
	assert.True(t, config.DedupInput)
	assert.InDelta(t, 0.9, config.SimilarityThreshold, 1e-9)
	assert.Equal(t, "levenshtein", config.SimilarityMetric)
	assert.Equal(t, "debug", config.LogLevel)
	assert.True(t, config.NoColor)

	settings := config.Settings()
	assert.Equal(t, similarity.MetricLevenshtein, settings.SimilarityMetric)
	assert.True(t, settings.DedupInput)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REGDIFF_CREATE_BACKUP=true\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("REGDIFF_CREATE_BACKUP") })

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.True(t, config.CreateBackup)
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, ".regdiff.yaml")
		require.NoError(t, os.WriteFile(path, []byte("create_backup: true\ncontext_lines: 1\n"), 0o644))

		config, err := LoadConfig("")
		require.NoError(t, err)
		assert.True(t, config.CreateBackup)
		assert.Equal(t, 1, config.ContextLines)
		assert.NotEmpty(t, config.ConfigFile)
	})

	t.Run("explicit file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("similarity_threshold: 0.7\n"), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.7, config.SimilarityThreshold, 1e-9)
		assert.Equal(t, path, config.ConfigFile)
	})

	t.Run("environment beats file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.yaml")
		require.NoError(t, os.WriteFile(path, []byte("similarity_threshold: 0.7\n"), 0o644))
		t.Setenv("REGDIFF_SIMILARITY_THRESHOLD", "0.85")

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.InDelta(t, 0.85, config.SimilarityThreshold, 1e-9)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		dir := isolate(t)
		_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
		require.Error(t, err)

		var configErr *errors.ConfigError
		assert.True(t, errors.As(err, &configErr))
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{SimilarityThreshold: 0.8, SimilarityMetric: "ratio", ContextLines: 3}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"threshold below range", func(c *Config) { c.SimilarityThreshold = 0.5 }},
		{"threshold above range", func(c *Config) { c.SimilarityThreshold = 0.96 }},
		{"negative context", func(c *Config) { c.ContextLines = -1 }},
		{"unknown metric", func(c *Config) { c.SimilarityMetric = "cosine" }},
		{"unknown output", func(c *Config) { c.Output = "xml" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Output: "yaml", LogLevel: "warn"}
	flags := &RootFlags{Verbose: true, Output: "json"}

	changed := map[string]bool{"verbose": true}
	config.UpdateFromFlags(flags, func(name string) bool { return changed[name] })

	assert.True(t, config.Verbose)
	assert.Equal(t, "yaml", config.Output, "unchanged flags keep configured values")
	assert.Equal(t, "warn", config.LogLevel)

	changed["output"] = true
	config.UpdateFromFlags(flags, func(name string) bool { return changed[name] })
	assert.Equal(t, "json", config.Output)
}
