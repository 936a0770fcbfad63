// Package files groups the file discovery building blocks used by stamp.
//
// Subpackages:
//   - filesystem: OS and in-memory filesystem providers with read, write and rename
//   - scanner: finds files whose content or name carries a placeholder token
package files
