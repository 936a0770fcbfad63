package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Op identifies a MemoryFileSystem operation for error injection.
type Op string

const (
	OpRead   Op = "read"
	OpWrite  Op = "write"
	OpRename Op = "rename"
	OpWalk   Op = "walk"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    *memoryFileInfo
	fs      *MemoryFileSystem
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.fs.ReadFile(f.absPath)
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	var skipped []string
	for _, entry := range entries {
		if underAny(entry.absPath, skipped) {
			continue
		}

		// The file handed to the callback carries a path relative to the walked directory
		view := *entry
		view.relPath = relativeTo(d.absPath, entry.absPath)

		// Recover from panics in callback to prevent crashing the entire walk
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			if err := d.fs.injected(OpWalk, entry.absPath); err != nil {
				callbackErr = fn(&view, err)
				return
			}
			callbackErr = fn(&view, nil)
		}()

		if callbackErr == SkipDir {
			if entry.info.isDir {
				skipped = append(skipped, entry.absPath)
				continue
			}
			skipped = append(skipped, path.Dir(entry.absPath))
			continue
		}
		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

func underAny(p string, dirs []string) bool {
	for _, dir := range dirs {
		if p == dir || strings.HasPrefix(p, dir+"/") {
			return true
		}
	}
	return false
}

func relativeTo(base, target string) string {
	if base == target {
		return "."
	}
	if base == "/" {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(target, base+"/")
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// It is not safe for concurrent use.
type MemoryFileSystem struct {
	files  map[string]*memoryFile // map of absolute path -> file
	root   string                 // root directory path
	errors map[Op]map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:  make(map[string]*memoryFile),
		root:   root,
		errors: make(map[Op]map[string]error),
	}
	mfs.addDir(root)

	return mfs
}

// Root returns the root directory of the virtual filesystem.
func (mfs *MemoryFileSystem) Root() string {
	return mfs.root
}

// AddFile adds a file to the in-memory filesystem.
// The content may hold arbitrary bytes.
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	absPath := mfs.resolve(filePath)
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: relativeTo(mfs.root, absPath),
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
		fs: mfs,
	}

	mfs.ensureDirectoriesExist(absPath)
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	absPath := mfs.resolve(dirPath)
	mfs.addDir(absPath)
	mfs.ensureDirectoriesExist(absPath)
}

// InjectError makes op fail with err for the given path.
// A nil err removes a previously injected error.
func (mfs *MemoryFileSystem) InjectError(op Op, filePath string, err error) {
	absPath := mfs.resolve(filePath)
	if err == nil {
		delete(mfs.errors[op], absPath)
		return
	}
	if mfs.errors[op] == nil {
		mfs.errors[op] = make(map[string]error)
	}
	mfs.errors[op][absPath] = err
}

// Exists reports whether a file or directory is present at path.
func (mfs *MemoryFileSystem) Exists(filePath string) bool {
	_, ok := mfs.files[mfs.resolve(filePath)]
	return ok
}

// Content returns the stored bytes of a file, bypassing injected errors.
func (mfs *MemoryFileSystem) Content(filePath string) (string, bool) {
	file, ok := mfs.files[mfs.resolve(filePath)]
	if !ok || file.info.isDir {
		return "", false
	}
	return string(file.content), true
}

func (mfs *MemoryFileSystem) injected(op Op, absPath string) error {
	return mfs.errors[op][absPath]
}

// resolve converts a path to an absolute slash-separated path within the virtual filesystem
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	switch {
	case p == "" || p == ".":
		return mfs.root
	case path.IsAbs(p):
		return path.Clean(p)
	default:
		return path.Join(mfs.root, p)
	}
}

func (mfs *MemoryFileSystem) addDir(absPath string) {
	if _, exists := mfs.files[absPath]; exists {
		return
	}
	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: relativeTo(mfs.root, absPath),
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
		fs: mfs,
	}
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == filePath || dir == "." {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.addDir(dir)
	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	var entries []*memoryFile
	for p, file := range mfs.files {
		if p == basePath || underAny(p, []string{strings.TrimSuffix(basePath, "/")}) {
			entries = append(entries, file)
		}
	}
	return entries
}

func notExist(op, p string) error {
	return &fs.PathError{Op: op, Path: p, Err: fs.ErrNotExist}
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %w", notExist("open", openPath))
	}
	if !file.info.isDir {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{
		absPath: absPath,
		fs:      mfs,
	}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	if err := mfs.injected(OpRead, absPath); err != nil {
		return nil, err
	}

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, notExist("read", filePath)
	}
	if file.info.isDir {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	data := make([]byte, len(file.content))
	copy(data, file.content)
	return data, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	absPath := mfs.resolve(filePath)

	if err := mfs.injected(OpWrite, absPath); err != nil {
		return err
	}

	file, exists := mfs.files[absPath]
	if !exists {
		mfs.AddFile(absPath, string(data))
		return nil
	}
	if file.info.isDir {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	file.content = append([]byte(nil), data...)
	file.info.size = int64(len(data))
	file.info.modTime = time.Now()
	return nil
}

// Rename implements FileSystemProvider.Rename. Like os.Rename on Unix,
// an existing destination file is replaced.
func (mfs *MemoryFileSystem) Rename(oldPath, newPath string) error {
	oldAbs := mfs.resolve(oldPath)
	newAbs := mfs.resolve(newPath)

	if err := mfs.injected(OpRename, oldAbs); err != nil {
		return err
	}

	file, exists := mfs.files[oldAbs]
	if !exists {
		return notExist("rename", oldPath)
	}
	if file.info.isDir {
		return fmt.Errorf("renaming directories is not supported: %s", oldPath)
	}
	if dst, ok := mfs.files[newAbs]; ok && dst.info.isDir {
		return fmt.Errorf("destination is a directory: %s", newPath)
	}

	delete(mfs.files, oldAbs)
	file.absPath = newAbs
	file.relPath = relativeTo(mfs.root, newAbs)
	file.info.name = path.Base(newAbs)
	mfs.files[newAbs] = file
	mfs.ensureDirectoriesExist(newAbs)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(statPath)]
	if !exists {
		return nil, notExist("stat", statPath)
	}

	return file.info, nil
}

// Verify MemoryFileSystem implements the interface at compile time
var _ FileSystemProvider = (*MemoryFileSystem)(nil)
