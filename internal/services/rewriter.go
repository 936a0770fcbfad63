package services

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/pkg/stamp"
)

// RewriteResult counts the outcome of a content rewrite pass.
type RewriteResult struct {
	Updated int
	Failed  int
}

// ContentRewriter substitutes placeholder tokens inside file contents.
// Thread-Safety: NOT safe for concurrent Rewrite() calls on the same files.
type ContentRewriter struct {
	fsProvider   filesystem.FileSystemProvider
	logger       stamp.Logger
	replacements stamp.Replacements
}

// NewContentRewriter creates a ContentRewriter.
// Panics if fsProvider or logger is nil.
func NewContentRewriter(fsProvider filesystem.FileSystemProvider, logger stamp.Logger, replacements stamp.Replacements) *ContentRewriter {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ContentRewriter{
		fsProvider:   fsProvider,
		logger:       logger,
		replacements: replacements,
	}
}

// Rewrite re-reads every candidate, replaces both tokens and writes the file
// back when its content changed. A file that cannot be read, decoded or
// written is reported as a warning and counted as failed; the remaining
// candidates are still processed.
func (w *ContentRewriter) Rewrite(candidates []stamp.Candidate) RewriteResult {
	var result RewriteResult
	for _, c := range candidates {
		changed, err := w.rewriteFile(c)
		if err != nil {
			w.logger.Warn("Could not update %s: %v", c.RelativePath, err)
			result.Failed++
			continue
		}
		if changed {
			w.logger.Info("  Updated content: %s", c.RelativePath)
			result.Updated++
		}
	}
	return result
}

func (w *ContentRewriter) rewriteFile(c stamp.Candidate) (bool, error) {
	original, err := w.fsProvider.ReadFile(c.Path)
	if err != nil {
		return false, fmt.Errorf("read failed: %w", err)
	}
	if !utf8.Valid(original) {
		return false, stamp.ErrNotUTF8
	}

	updated := []byte(w.replacements.Apply(string(original)))
	if bytes.Equal(updated, original) {
		w.logger.Verbose("No placeholders left in %s", c.RelativePath)
		return false, nil
	}

	if err := w.fsProvider.WriteFile(c.Path, updated); err != nil {
		return false, fmt.Errorf("write failed: %w", err)
	}
	return true, nil
}
