package services

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/pkg/stamp"
)

// RenameResult counts the outcome of a rename pass.
type RenameResult struct {
	Renamed int
	Failed  int
}

// Renamer substitutes placeholder tokens inside file names.
type Renamer struct {
	fsProvider   filesystem.FileSystemProvider
	logger       stamp.Logger
	replacements stamp.Replacements
}

// NewRenamer creates a Renamer.
// Panics if fsProvider or logger is nil.
func NewRenamer(fsProvider filesystem.FileSystemProvider, logger stamp.Logger, replacements stamp.Replacements) *Renamer {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Renamer{
		fsProvider:   fsProvider,
		logger:       logger,
		replacements: replacements,
	}
}

// Rename gives every candidate its substituted base name inside the same
// parent directory. Candidates whose name does not change are left alone.
// A rename that fails leaves the original file in place and is counted as
// failed; the remaining candidates are still processed.
func (r *Renamer) Rename(candidates []stamp.Candidate) RenameResult {
	var result RenameResult
	for _, c := range candidates {
		newName := r.replacements.Apply(c.Name)
		if newName == c.Name {
			continue
		}

		newPath, err := r.renameFile(c, newName)
		if err != nil {
			r.logger.Warn("Could not rename %s to %s: %v", c.RelativePath, newName, err)
			result.Failed++
			continue
		}

		r.logger.Info("  Renamed: %s -> %s", c.Name, filepath.Base(newPath))
		result.Renamed++
	}
	return result
}

func (r *Renamer) renameFile(c stamp.Candidate, newName string) (string, error) {
	if err := validateBaseName(newName); err != nil {
		return "", err
	}

	newPath := filepath.Join(filepath.Dir(c.Path), newName)

	// os.Rename silently replaces an existing file on Unix
	_, err := r.fsProvider.Stat(newPath)
	switch {
	case err == nil:
		return "", stamp.ErrDestinationExists
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to check destination: %w", err)
	}

	if err := r.fsProvider.Rename(c.Path, newPath); err != nil {
		return "", err
	}
	return newPath, nil
}

func validateBaseName(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid file name %q", name)
	}
	if filepath.Base(name) != name {
		return fmt.Errorf("file name %q would leave its directory", name)
	}
	return nil
}
