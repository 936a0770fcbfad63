package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/stamp/pkg/stamp"
)

// RenderSummary formats the end-of-run report. With styled set the report is
// colored and boxed; otherwise it is plain text suitable for logs.
func RenderSummary(s stamp.Summary, styled bool) string {
	rows := [][2]string{
		{"Files with content updated", fmt.Sprint(s.ContentUpdated)},
		{"Files renamed", fmt.Sprint(s.Renamed)},
	}
	if s.ScanSkipped > 0 {
		rows = append(rows, [2]string{"Non-text files skipped", fmt.Sprint(s.ScanSkipped)})
	}
	if s.ContentFailed > 0 {
		rows = append(rows, [2]string{"Files not updated", fmt.Sprint(s.ContentFailed)})
	}
	if s.RenameFailed > 0 {
		rows = append(rows, [2]string{"Files not renamed", fmt.Sprint(s.RenameFailed)})
	}

	status := SymbolCheck + " Placeholder replacement completed successfully!"
	if s.Failures() > 0 {
		status = fmt.Sprintf("%s Placeholder replacement completed with %d warning(s)", SymbolWarn, s.Failures())
	}

	if !styled {
		var b strings.Builder
		b.WriteString("Summary:\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "  %s: %s\n", row[0], row[1])
		}
		b.WriteString(status)
		b.WriteString("\n")
		return b.String()
	}

	lines := []string{TitleStyle.Render("Summary")}
	for _, row := range rows {
		lines = append(lines, LabelStyle.Render(row[0]+":")+" "+row[1])
	}
	if s.Failures() > 0 {
		lines = append(lines, WarningStyle.Render(status))
	} else {
		lines = append(lines, SuccessStyle.Render(status))
	}
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}
