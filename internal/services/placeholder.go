package services

import (
	"fmt"
	"path/filepath"

	"github.com/vvka-141/stamp/internal/config"
	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/pkg/stamp"
)

// PlaceholderService runs the full replacement pipeline: load configuration,
// scan, rewrite contents, then rename files.
// Thread-Safety: NOT safe for concurrent Run() calls against the same tree.
type PlaceholderService struct {
	fsProvider  filesystem.FileSystemProvider
	fileScanner stamp.FileScanner
	logger      stamp.Logger
}

// NewPlaceholderService creates a new PlaceholderService with all dependencies injected.
// Panics on nil dependencies; these are programmer errors caught at startup.
func NewPlaceholderService(
	fsProvider filesystem.FileSystemProvider,
	fileScanner stamp.FileScanner,
	logger stamp.Logger,
) *PlaceholderService {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if fileScanner == nil {
		panic("fileScanner cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &PlaceholderService{
		fsProvider:  fsProvider,
		fileScanner: fileScanner,
		logger:      logger,
	}
}

// Run executes one replacement pass over opts.Root.
//
// Configuration problems are returned before any file is touched. Per-file
// failures are logged and counted in the summary; they only produce an error
// (stamp.ErrPartialFailure) when opts.Strict is set. Renames always happen
// after every content rewrite so that scanned paths stay valid.
func (s *PlaceholderService) Run(opts stamp.RunOptions) (stamp.Summary, error) {
	opts = withDefaults(opts)

	s.logger.Info("Starting project placeholder replacement...")

	replacements, err := config.LoadReplacementsWith(s.fsProvider.ReadFile, opts.ConfigPath)
	if err != nil {
		return stamp.Summary{}, fmt.Errorf("error loading configuration: %w", err)
	}
	s.logger.Info("Project Name: %s", replacements.Name)
	s.logger.Info("Project Label: %s", replacements.Label)

	s.logger.Info("\nSearching for files with placeholders...")
	s.logger.Verbose("Search directories: %v", opts.SearchDirs)
	scan, err := s.fileScanner.Scan(opts.Root, opts.SearchDirs, opts.Exclude)
	if err != nil {
		return stamp.Summary{}, fmt.Errorf("scan failed: %w", err)
	}
	s.logger.Info("Found %d files with placeholder content", len(scan.ContentCandidates))
	s.logger.Info("Found %d files with placeholder names", len(scan.NameCandidates))

	s.logger.Info("\nUpdating file contents...")
	rewritten := NewContentRewriter(s.fsProvider, s.logger, replacements).Rewrite(scan.ContentCandidates)

	s.logger.Info("\nRenaming files...")
	renamed := NewRenamer(s.fsProvider, s.logger, replacements).Rename(scan.NameCandidates)

	summary := stamp.Summary{
		Replacements:      replacements,
		ContentCandidates: len(scan.ContentCandidates),
		NameCandidates:    len(scan.NameCandidates),
		ScanSkipped:       scan.Skipped,
		ContentUpdated:    rewritten.Updated,
		ContentFailed:     rewritten.Failed,
		Renamed:           renamed.Renamed,
		RenameFailed:      renamed.Failed,
	}

	if opts.Strict && summary.Failures() > 0 {
		return summary, fmt.Errorf("%w: %d file(s) could not be processed", stamp.ErrPartialFailure, summary.Failures())
	}
	return summary, nil
}

func withDefaults(opts stamp.RunOptions) stamp.RunOptions {
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = stamp.DefaultConfigFileName
	}
	if !filepath.IsAbs(opts.ConfigPath) {
		opts.ConfigPath = filepath.Join(opts.Root, opts.ConfigPath)
	}
	if len(opts.SearchDirs) == 0 {
		opts.SearchDirs = stamp.DefaultSearchDirs()
	}
	return opts
}
