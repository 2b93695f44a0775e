package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const separator = "----------------------------------------"

var (
	cleanColor    = color.New(color.FgGreen, color.Bold)
	warningsColor = color.New(color.FgYellow, color.Bold)
	failuresColor = color.New(color.FgRed, color.Bold)
)

// Render prints the colorized outcome banner for a summary. An empty summary
// renders nothing: without report lines there is no outcome to announce.
func Render(w io.Writer, s Summary) {
	if s.Empty() {
		return
	}

	fmt.Fprintln(w, separator)
	switch s.Status() {
	case StatusClean:
		cleanColor.Fprintln(w, "✓ Style check passed: no violations found")
	case StatusWarnings:
		warningsColor.Fprintf(w, "⚠ Style check passed with %s in %s\n",
			plural(s.Warnings, "warning"), plural(s.Files, "file"))
	case StatusFailures:
		failuresColor.Fprintf(w, "✗ Style check failed: %s, %s in %s\n",
			plural(s.Errors, "error"), plural(s.Warnings, "warning"), plural(s.Files, "file"))
	}
	fmt.Fprintln(w, separator)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
