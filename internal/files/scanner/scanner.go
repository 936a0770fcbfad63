package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/pkg/stamp"
)

// Scanner discovers files carrying placeholder tokens in their content or name.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider and logger are also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	logger     stamp.Logger
}

// NewScanner creates a new file scanner backed by the OS filesystem.
// Panics if logger is nil.
func NewScanner(logger stamp.Logger) *Scanner {
	return NewScannerWithFS(logger, filesystem.NewOSFileSystem())
}

// NewScannerWithFS creates a new file scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if logger or fsProvider is nil.
func NewScannerWithFS(logger stamp.Logger, fsProvider filesystem.FileSystemProvider) *Scanner {
	if logger == nil {
		panic("logger cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
		logger:     logger,
	}
}

// Scan walks every search directory below root and returns the content and
// name candidates it finds.
//
// Search directories that do not exist are skipped. Files that cannot be read
// or are not valid UTF-8 are left out of the content candidates and counted in
// ScanResult.Skipped; their names are still checked. Subtrees that cannot be
// walked are reported as warnings. Only an invalid exclude pattern or a
// panicking walk makes Scan fail.
func (s *Scanner) Scan(root string, searchDirs []string, exclude []string) (stamp.ScanResult, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return stamp.ScanResult{}, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	var result stamp.ScanResult
	for _, searchDir := range searchDirs {
		if err := s.scanDir(root, searchDir, exclude, &result); err != nil {
			return stamp.ScanResult{}, err
		}
	}
	return result, nil
}

func (s *Scanner) scanDir(root, searchDir string, exclude []string, result *stamp.ScanResult) error {
	dirPath := filepath.Join(root, searchDir)

	info, err := s.fsProvider.Stat(dirPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Verbose("Search directory %s does not exist, skipping", searchDir)
		} else {
			s.logger.Warn("Could not access %s: %v", dirPath, err)
		}
		return nil
	}
	if !info.IsDir() {
		s.logger.Verbose("Search path %s is not a directory, skipping", searchDir)
		return nil
	}

	dir, err := s.fsProvider.Open(dirPath)
	if err != nil {
		s.logger.Warn("Could not open %s: %v", dirPath, err)
		return nil
	}

	err = dir.Walk(func(file filesystem.File, walkErr error) error {
		if walkErr != nil {
			return s.walkFailed(dirPath, file, walkErr)
		}

		info := file.Info()
		if !info.Mode().IsRegular() {
			return nil
		}

		relPath := filepath.ToSlash(filepath.Join(searchDir, file.RelativePath()))
		if isExcluded(relPath, exclude) {
			s.logger.Verbose("Excluded %s", relPath)
			return nil
		}

		candidate := stamp.Candidate{
			Path:         file.Path(),
			RelativePath: relPath,
			Name:         info.Name(),
		}

		if stamp.ContainsToken(candidate.Name) {
			result.NameCandidates = append(result.NameCandidates, candidate)
		}

		content, err := file.ReadContent()
		if err != nil {
			s.logger.Verbose("Skipping unreadable file %s: %v", relPath, err)
			result.Skipped++
			return nil
		}
		if !utf8.Valid(content) {
			s.logger.Verbose("Skipping non-text file %s", relPath)
			result.Skipped++
			return nil
		}
		if stamp.ContainsToken(string(content)) {
			result.ContentCandidates = append(result.ContentCandidates, candidate)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", dirPath, err)
	}
	return nil
}

// walkFailed reports an entry the walk could not visit and skips it.
// Directories are skipped as a whole; a single file only drops itself.
func (s *Scanner) walkFailed(dirPath string, file filesystem.File, err error) error {
	location := dirPath
	if file != nil {
		location = file.Path()
	}
	s.logger.Warn("Could not scan %s: %v", location, err)

	if file != nil && file.Info() != nil && file.Info().IsDir() {
		return filesystem.SkipDir
	}
	return nil
}

func isExcluded(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if ok, err := doublestar.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

// Verify Scanner implements the interface at compile time
var _ stamp.FileScanner = (*Scanner)(nil)
