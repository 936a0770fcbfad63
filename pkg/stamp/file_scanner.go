package stamp

// FileScanner discovers files that carry placeholder tokens.
type FileScanner interface {
	// Scan walks each of searchDirs below root and collects content and
	// name candidates. Files whose root-relative path matches one of the
	// exclude globs are ignored. Missing search directories are not an error.
	Scan(root string, searchDirs []string, exclude []string) (ScanResult, error)
}
