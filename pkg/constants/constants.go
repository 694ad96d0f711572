// Package constants provides shared constants used throughout regdiff.
// This includes the reconciliation defaults, file permissions and the
// labels used when rendering diffs.
package constants

// Reconciliation defaults
const (
	// DefaultSimilarityThreshold is the ratio a registry name must reach to be
	// suggested as a near-duplicate of a new candidate
	DefaultSimilarityThreshold = 0.80

	// MinSimilarityThreshold is the lowest threshold accepted from configuration
	MinSimilarityThreshold = 0.60

	// MaxSimilarityThreshold is the highest threshold accepted from configuration
	MaxSimilarityThreshold = 0.95

	// MaxSimilarMatches bounds the number of suggestions per candidate
	MaxSimilarMatches = 3

	// DefaultContextLines is the unified diff context size
	DefaultContextLines = 3
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for written registry files (rw-r--r--)
	FilePermissions = 0644
)

// File naming
const (
	// BackupSuffix is appended to a registry path to form its backup path
	BackupSuffix = ".bak"

	// DefaultRegistryLabel labels the "before" side of a diff when the
	// registry was not loaded from a file
	DefaultRegistryLabel = "registry.txt"

	// UpdatedRegistryLabel labels the "after" side of a preview diff
	UpdatedRegistryLabel = "registry(updated).txt"

	// DefaultPatchName is the suggested file name for exported diffs
	DefaultPatchName = "changes.patch"

	// ConfigFileName is the base name of the optional config file
	ConfigFileName = ".regdiff"

	// EnvPrefix is the prefix for environment variable configuration
	EnvPrefix = "REGDIFF"
)
