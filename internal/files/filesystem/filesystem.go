package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// SkipDir can be returned from a Walk callback to skip the current directory.
var SkipDir = fs.SkipDir

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walked directory
	RelativePath() string

	// Info returns file metadata. It may be nil when the entry is
	// reported together with a walk error.
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk traverses the directory tree, calling the provided function for each file and directory.
	// When an entry cannot be visited the function receives the error and, if the
	// location is known, a File whose Path identifies it.
	// Returning SkipDir skips the current directory; any other error stops walking.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider gives access to a directory tree that can be read and modified
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path, keeping its permissions
	// when the file already exists
	WriteFile(path string, data []byte) error

	// Rename moves oldPath to newPath
	Rename(oldPath, newPath string) error

	// Stat returns file information for the given path.
	// Errors for absent paths satisfy errors.Is(err, fs.ErrNotExist).
	Stat(path string) (FileInfo, error)
}
