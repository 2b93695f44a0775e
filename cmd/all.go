package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var headingColor = color.New(color.FgCyan, color.Bold)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run style check, static analysis, and tests with coverage",
	Long: `Run the full QA pass: style check, static analysis, and the test suite with
coverage reports, strictly in that order and always all three. A failing
step never stops the later ones; the process exit code is the last step's.

Each step uses its configured default paths.`,
	Example: `  husk all
  husk all --json
  husk all --min-coverage 80`,
	Args: usageArgs(cobra.NoArgs),
	RunE: allCommand,
}

func allCommand(cmd *cobra.Command, args []string) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"sniff", func() error { return runSniff(nil) }},
		{"analyze", func() error { return runAnalyze(nil, "") }},
		{"testCoverage", func() error { return runTestCoverage(nil) }},
	}

	var last error
	for _, step := range steps {
		headingColor.Fprintf(passthroughWriter(), "==> %s\n", step.name)

		err := step.run()
		if err != nil {
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				// Internal failures are reported here so the later steps
				// still run; only the last step decides the exit code
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				err = &ExitError{Code: ExitInternal}
			} else if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
				err = &ExitError{Code: exitErr.Code}
			}
		}
		last = err
	}

	return last
}

func init() {
	setupQAFlags(allCmd)
	allCmd.Flags().StringVar(&minCoverage, "min-coverage", "", "Minimum coverage percentage enforced after a passing run")
	allCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for coverage and JUnit reports (defaults to the configured one)")
	SetupUploadFlags(allCmd, &uploadFlags)
	allCmd.PreRunE = setupRun
}
