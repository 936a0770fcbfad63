package stamp

import "strings"

// Replacements holds the values substituted for the placeholder tokens.
// A Replacements value is immutable for the duration of a run.
type Replacements struct {
	// Name replaces TokenProjectName (project.package.name).
	Name string

	// Label replaces TokenProjectLabel (project.package.name_managed).
	Label string
}

// Apply replaces every occurrence of TokenProjectName and then every
// occurrence of TokenProjectLabel in s.
func (r Replacements) Apply(s string) string {
	s = strings.ReplaceAll(s, TokenProjectName, r.Name)
	s = strings.ReplaceAll(s, TokenProjectLabel, r.Label)
	return s
}

// ContainsToken reports whether s holds either placeholder token.
func ContainsToken(s string) bool {
	return strings.Contains(s, TokenProjectName) || strings.Contains(s, TokenProjectLabel)
}

// Candidate is a file selected by the scanner.
type Candidate struct {
	// Path is the location used for filesystem operations.
	Path string

	// RelativePath is Path relative to the project root, slash-separated.
	RelativePath string

	// Name is the base name of the file.
	Name string
}

// ScanResult contains the files that need content rewriting or renaming.
// A file may appear in both lists.
type ScanResult struct {
	ContentCandidates []Candidate
	NameCandidates    []Candidate

	// Skipped counts files whose content could not be read or decoded.
	Skipped int
}

// RunOptions configures a single placeholder replacement run.
type RunOptions struct {
	// Root is the project directory. Defaults to the current directory.
	Root string

	// ConfigPath points at the configuration file. Relative paths are
	// resolved against Root. Defaults to DefaultConfigFileName.
	ConfigPath string

	// SearchDirs lists the subdirectories of Root to scan.
	// Defaults to DefaultSearchDirs().
	SearchDirs []string

	// Exclude holds doublestar glob patterns matched against the
	// slash-separated path relative to Root.
	Exclude []string

	// Strict turns recoverable per-file failures into ErrPartialFailure.
	Strict bool
}

// Summary reports what a run did.
type Summary struct {
	Replacements Replacements

	ContentCandidates int
	NameCandidates    int
	ScanSkipped       int

	ContentUpdated int
	ContentFailed  int

	Renamed      int
	RenameFailed int
}

// Failures returns the number of files a run could not fully process.
func (s Summary) Failures() int {
	return s.ContentFailed + s.RenameFailed
}
