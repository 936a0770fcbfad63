package stamp

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess        = 0  // Run completed (recoverable per-file failures included)
	ExitGeneralError   = 1  // Unknown or unclassified error
	ExitUsageError     = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic          = 3  // Internal panic (unexpected crash)
	ExitConfigError    = 10 // Configuration missing, malformed or incomplete
	ExitPartialFailure = 15 // Some files could not be updated (--strict only)
)

// Placeholder tokens recognized in file contents and file names.
const (
	TokenProjectName  = "__PROJECT_NAME__"
	TokenProjectLabel = "__PROJECT_LABEL__"
)

const (
	// DefaultConfigFileName is the configuration file read from the project root.
	DefaultConfigFileName = "cumulusci.yml"

	// ConfigKeyName is the key path of the value substituted for TokenProjectName.
	ConfigKeyName = "project.package.name"

	// ConfigKeyLabel is the key path of the value substituted for TokenProjectLabel.
	ConfigKeyLabel = "project.package.name_managed"
)

// DefaultSearchDirs returns the project subdirectories that may hold placeholders.
// A fresh slice is returned on every call so callers may modify it.
func DefaultSearchDirs() []string {
	return []string{"force-app", "unpackaged"}
}
