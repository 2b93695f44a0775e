package report

import (
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		output       string
		wantErrors   int
		wantWarnings int
		wantFiles    int
		wantStatus   Status
	}{
		{
			name:       "empty output",
			output:     "",
			wantStatus: StatusClean,
		},
		{
			name: "output without report lines",
			output: `Processing src/Foo.php
Processing src/Bar.php
Time: 120ms; Memory: 8MB`,
			wantStatus: StatusClean,
		},
		{
			name:         "errors across multiple files",
			output:       "a.php FOUND 2 ERRORS\nb.php FOUND 3 ERRORS AND 1 WARNING",
			wantErrors:   5,
			wantWarnings: 1,
			wantFiles:    2,
			wantStatus:   StatusFailures,
		},
		{
			name:         "warnings only",
			output:       "a.php FOUND 0 ERRORS AND 4 WARNINGS",
			wantErrors:   0,
			wantWarnings: 4,
			wantFiles:    1,
			wantStatus:   StatusWarnings,
		},
		{
			name:       "explicit zero counts",
			output:     "a.php FOUND 0 ERRORS AND 0 WARNINGS",
			wantFiles:  1,
			wantStatus: StatusClean,
		},
		{
			name:         "singular tokens",
			output:       "FOUND 1 ERROR AND 1 WARNING AFFECTING 1 LINE",
			wantErrors:   1,
			wantWarnings: 1,
			wantFiles:    1,
			wantStatus:   StatusFailures,
		},
		{
			name: "full checker report block",
			output: `FILE: /project/src/Order.php
----------------------------------------------------------------------
FOUND 3 ERRORS AND 1 WARNING AFFECTING 3 LINES
----------------------------------------------------------------------
 12 | ERROR   | Missing doc comment
 40 | WARNING | Line exceeds 120 characters
----------------------------------------------------------------------

FILE: /project/src/Invoice.php
----------------------------------------------------------------------
FOUND 1 ERROR AFFECTING 1 LINE
----------------------------------------------------------------------`,
			wantErrors:   4,
			wantWarnings: 1,
			wantFiles:    2,
			wantStatus:   StatusFailures,
		},
		{
			name:         "multi-digit counts",
			output:       "huge.php FOUND 12 ERRORS AND 345 WARNINGS AFFECTING 99 LINES",
			wantErrors:   12,
			wantWarnings: 345,
			wantFiles:    1,
			wantStatus:   StatusFailures,
		},
		{
			name:       "report line without counts",
			output:     "FOUND ISSUES IN PROJECT",
			wantFiles:  1,
			wantStatus: StatusClean,
		},
		{
			name:       "lowercase marker is not a report line",
			output:     "we found 2 errors somewhere",
			wantStatus: StatusClean,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.output)

			if got.Errors != tt.wantErrors {
				t.Errorf("errors = %d, want %d", got.Errors, tt.wantErrors)
			}
			if got.Warnings != tt.wantWarnings {
				t.Errorf("warnings = %d, want %d", got.Warnings, tt.wantWarnings)
			}
			if got.Files != tt.wantFiles {
				t.Errorf("files = %d, want %d", got.Files, tt.wantFiles)
			}
			if got.Status() != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status(), tt.wantStatus)
			}
			if got.Empty() != (tt.wantFiles == 0) {
				t.Errorf("empty = %v, want %v", got.Empty(), tt.wantFiles == 0)
			}
		})
	}
}

func TestStatusPrecedence(t *testing.T) {
	// Errors always dominate warnings
	s := Summary{Errors: 1, Warnings: 10, Files: 1}
	if s.Status() != StatusFailures {
		t.Errorf("status = %s, want %s", s.Status(), StatusFailures)
	}
}
