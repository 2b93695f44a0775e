// Package coverage reads the Clover XML report written by the test runner
// and derives the project statement coverage.
package coverage

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Metrics holds the project-level counters from a Clover report.
type Metrics struct {
	Statements        int
	CoveredStatements int
}

type cloverReport struct {
	XMLName xml.Name `xml:"coverage"`
	Project struct {
		Metrics struct {
			Statements        int `xml:"statements,attr"`
			CoveredStatements int `xml:"coveredstatements,attr"`
		} `xml:"metrics"`
	} `xml:"project"`
}

// ParseClover reads a Clover coverage report and extracts the project-level
// statement metrics. Per-file metrics nested below the project element are
// ignored; only the aggregate counters matter here.
func ParseClover(path string) (*Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read coverage report: %w", err)
	}

	var report cloverReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("invalid clover report %s: %w", path, err)
	}

	return &Metrics{
		Statements:        report.Project.Metrics.Statements,
		CoveredStatements: report.Project.Metrics.CoveredStatements,
	}, nil
}

// Percent returns the statement coverage as a percentage rounded to two
// decimal places. A report with no statements counts as zero coverage.
func (m *Metrics) Percent() decimal.Decimal {
	if m.Statements <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(m.CoveredStatements)).
		Div(decimal.NewFromInt(int64(m.Statements))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

// Meets reports whether the coverage percentage reaches the given minimum.
func (m *Metrics) Meets(minimum decimal.Decimal) bool {
	return m.Percent().GreaterThanOrEqual(minimum)
}
