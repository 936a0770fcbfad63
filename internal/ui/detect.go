package ui

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether output to f may use colors and styling.
//
// Returns false if:
//   - NO_COLOR is set (accessibility/automation indicator)
//   - STAMP_NO_COLOR=1 is set
//   - CI is set (common CI/CD convention)
//   - f is not a terminal (redirected or piped output)
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("STAMP_NO_COLOR") == "1" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
