// Package scanner discovers files that carry project placeholder tokens.
//
// The scanner walks a fixed set of search directories below a project root and
// produces two candidate lists:
//   - content candidates: readable UTF-8 files whose text contains a token
//   - name candidates: files whose base name contains a token
//
// Binary and unreadable files never fail a scan; they are counted and left
// alone. The scanner is filesystem-agnostic through the
// filesystem.FileSystemProvider interface, enabling both production use with
// the OS filesystem and testing with in-memory filesystems.
package scanner
