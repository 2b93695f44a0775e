// Package report extracts error and warning totals from the plain-text
// reports produced by the style checker and classifies the outcome.
package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Status classifies a style report.
type Status string

const (
	StatusClean    Status = "clean"
	StatusWarnings Status = "warnings"
	StatusFailures Status = "failures"
)

// Summary holds the totals extracted from a style report.
type Summary struct {
	Errors   int
	Warnings int
	Files    int // number of per-file report lines seen
}

var (
	errorsPattern   = regexp.MustCompile(`(?i)(\d+)\s+errors?\b`)
	warningsPattern = regexp.MustCompile(`(?i)(\d+)\s+warnings?\b`)
)

// Parse scans the combined tool output for per-file report lines of the form
// "FOUND 3 ERRORS AND 1 WARNING AFFECTING 3 LINES" and sums the error and
// warning counts across all of them. Output without any report line yields a
// zero Summary; Parse never fails.
func Parse(output string) Summary {
	var summary Summary

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "FOUND") {
			continue
		}
		summary.Files++
		summary.Errors += sumMatches(errorsPattern, line)
		summary.Warnings += sumMatches(warningsPattern, line)
	}

	return summary
}

func sumMatches(pattern *regexp.Regexp, line string) int {
	total := 0
	for _, match := range pattern.FindAllStringSubmatch(line, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// Empty reports whether the tool output contained no report lines at all.
// An empty summary carries no information and should not be rendered.
func (s Summary) Empty() bool {
	return s.Files == 0
}

// Status classifies the summary: any error fails the check, warnings alone
// degrade it, and zero counts of both mean a clean pass.
func (s Summary) Status() Status {
	switch {
	case s.Errors > 0:
		return StatusFailures
	case s.Warnings > 0:
		return StatusWarnings
	default:
		return StatusClean
	}
}
