// Package logging provides concrete implementations of the stamp.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any io.Writer) with thread-safe output
//   - NullLogger: Discards all messages (useful for testing)
//
// Warnings are prefixed with [WARN] and report per-file problems that do not
// stop a run. All logger implementations are safe for concurrent use by
// multiple goroutines.
package logging
