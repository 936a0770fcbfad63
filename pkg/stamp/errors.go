package stamp

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	summary, err := svc.Run(opts)
//	if errors.Is(err, stamp.ErrConfigNotFound) {
//	    // Handle missing cumulusci.yml
//	}
var (
	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrConfigParse indicates the configuration file is not valid YAML
	// or does not have the expected shape.
	ErrConfigParse = errors.New("config parse error")

	// ErrConfigMissingField indicates a required configuration key is absent.
	ErrConfigMissingField = errors.New("missing required configuration")

	// ErrNotUTF8 indicates a file could not be decoded as UTF-8 text.
	ErrNotUTF8 = errors.New("content is not valid UTF-8")

	// ErrDestinationExists indicates a rename target is already present.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrPartialFailure indicates the run finished but some files could not be processed.
	ErrPartialFailure = errors.New("placeholder replacement incomplete")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrConfigNotFound),
		errors.Is(err, ErrConfigParse),
		errors.Is(err, ErrConfigMissingField):
		return ExitConfigError
	case errors.Is(err, ErrPartialFailure):
		return ExitPartialFailure
	}

	if isUsageError(err) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognizes the argument and flag errors produced by cobra,
// which are plain strings rather than typed errors.
func isUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"accepts ",
		"requires at least",
		"requires at most",
		"required flag",
		"invalid argument",
		"flag needs an argument",
	} {
		if strings.HasPrefix(msg, prefix) {
			return true
		}
	}
	return false
}
