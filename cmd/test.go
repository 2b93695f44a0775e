package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/hollow-labs/husk/internal/config"
	"github.com/hollow-labs/husk/internal/coverage"
	"github.com/hollow-labs/husk/internal/meta"
	"github.com/hollow-labs/husk/internal/upload"
)

// uploadEnvPrefix is the environment namespace for upload provider
// configuration, mirroring the HUSK_META namespace for run metadata.
const uploadEnvPrefix = "HUSK_UPLOAD_CONFIG"

var (
	minCoverage string
	reportDir   string
)

var (
	coveragePassColor = color.New(color.FgGreen, color.Bold)
	coverageFailColor = color.New(color.FgRed, color.Bold)
)

var testCmd = &cobra.Command{
	Use:   "test [paths...]",
	Short: "Run the test suite with the configured test runner",
	Long: `Run the test suite by dispatching to the configured test runner. Without
path arguments the configured test paths are run (tests by default). The
test runner's exit code becomes the process exit code.`,
	Example: `  husk test
  husk test tests/Unit`,
	Args: cobra.ArbitraryArgs,
	RunE: testCommand,
}

var testCoverageCmd = &cobra.Command{
	Use:     "testCoverage [paths...]",
	Aliases: []string{"test-coverage"},
	Short:   "Run the test suite with coverage and JUnit reports",
	Long: `Run the test suite with Clover coverage and JUnit result reports written to
the report directory (build/qa by default). The test runner's exit code
becomes the process exit code.

After a passing run the Clover report is read back and the project coverage
is printed. With --min-coverage (or coverage.min in the config file) a
coverage below the minimum fails the command. Reports can be shipped to
object storage with the upload flags.`,
	Example: `  husk testCoverage
  husk testCoverage --min-coverage 80
  husk testCoverage --upload-provider minio --upload-config-kv bucket=qa-reports`,
	Args: cobra.ArbitraryArgs,
	RunE: testCoverageCommand,
}

func testCommand(cmd *cobra.Command, args []string) error {
	return runTest(args)
}

func testCoverageCommand(cmd *cobra.Command, args []string) error {
	return runTestCoverage(args)
}

func runTest(args []string) error {
	paths := targetPaths(args, conf.Paths.Test)

	result, err := execTool(conf.Tester(), paths)
	if err != nil {
		return err
	}

	if err := emitResult(createResult("test", paths, result, nil)); err != nil {
		return err
	}

	return propagateExit.apply(result.ExitCode)
}

func runTestCoverage(args []string) error {
	cov := conf.Coverage
	if reportDir != "" {
		cov.Dir = reportDir
	}
	if minCoverage != "" {
		cov.Min = config.Percent(minCoverage)
	}

	minimum, err := cov.Min.Decimal()
	if err != nil {
		return fmt.Errorf("invalid minimum coverage: %w", err)
	}

	if !commonFlags.DryRun {
		if err := os.MkdirAll(cov.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory %s: %w", cov.Dir, err)
		}
	}

	paths := targetPaths(args, conf.Paths.Test)

	result, err := execTool(conf.TesterWithCoverage(cov), paths)
	if err != nil {
		return err
	}

	res := createResult("testCoverage", paths, result, nil)

	// Read back the Clover report when the run produced one
	var metrics *coverage.Metrics
	if !result.Skipped {
		if _, statErr := os.Stat(cov.CloverPath()); statErr == nil {
			m, parseErr := coverage.ParseClover(cov.CloverPath())
			if parseErr != nil {
				if result.ExitCode == 0 {
					return parseErr
				}
				// A failed run may leave a truncated report behind
				fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			} else {
				metrics = m
				pct := metrics.Percent().StringFixed(2)
				res.Coverage = &pct
				printCoverage(passthroughWriter(), metrics, minimum)
			}
		}
		res.Reports = reportFiles(cov)
	}

	if err := emitResult(res); err != nil {
		return err
	}

	uploadErr := uploadReports(res.Reports)
	if uploadErr != nil && result.ExitCode != 0 {
		// Report it but keep the test runner's exit status
		fmt.Fprintf(os.Stderr, "Error: %v\n", uploadErr)
	}

	if result.ExitCode != 0 {
		return propagateExit.apply(result.ExitCode)
	}
	if uploadErr != nil {
		return uploadErr
	}

	if minimum.IsPositive() && !result.Skipped {
		if metrics == nil {
			return &ExitError{
				Code:    ExitInternal,
				Message: fmt.Sprintf("coverage report %s was not produced", cov.CloverPath()),
			}
		}
		if !metrics.Meets(minimum) {
			return &ExitError{
				Code: ExitInternal,
				Message: fmt.Sprintf("coverage %s%% is below the minimum %s%%",
					metrics.Percent().StringFixed(2), minimum.StringFixed(2)),
			}
		}
	}

	return nil
}

func printCoverage(w io.Writer, metrics *coverage.Metrics, minimum decimal.Decimal) {
	c := coveragePassColor
	if minimum.IsPositive() && !metrics.Meets(minimum) {
		c = coverageFailColor
	}
	c.Fprintf(w, "Coverage: %s%%\n", metrics.Percent().StringFixed(2))
}

// reportFiles lists the report files the run actually produced.
func reportFiles(cov config.CoverageConfig) []string {
	var files []string
	for _, path := range []string{cov.CloverPath(), cov.JUnitPath()} {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files
}

// uploadReports ships the report files to the configured upload provider.
// Without a provider it is a no-op.
func uploadReports(files []string) error {
	if uploadFlags.Provider == "" || len(files) == 0 {
		return nil
	}

	providerConf, err := buildUploadConfig()
	if err != nil {
		return fmt.Errorf("failed to build upload config: %w", err)
	}

	provider, err := upload.NewProvider(uploadFlags.Provider)
	if err != nil {
		return fmt.Errorf("failed to create upload provider: %w", err)
	}

	if err := provider.Configure(providerConf); err != nil {
		return fmt.Errorf("failed to configure upload provider: %w", err)
	}

	ctx := context.Background()
	for _, file := range files {
		if commonFlags.Verbose {
			fmt.Fprintf(os.Stderr, "[UPLOAD] Sending %s via %s\n", file, provider.Name())
		}
		if err := upload.UploadFile(ctx, provider, file, filepath.Base(file)); err != nil {
			return err
		}
		if commonFlags.Verbose {
			fmt.Fprintf(os.Stderr, "✓ Uploaded %s\n", filepath.Base(file))
		}
	}

	return nil
}

// buildUploadConfig builds the provider configuration from flags and the
// HUSK_UPLOAD_CONFIG environment namespace.
func buildUploadConfig() (map[string]any, error) {
	return meta.BuildMap(uploadEnvPrefix, uploadFlags.Config, uploadFlags.ConfigKV, uploadFlags.ConfigFile)
}

func init() {
	setupQAFlags(testCmd)
	testCmd.PreRunE = setupRun

	setupQAFlags(testCoverageCmd)
	testCoverageCmd.Flags().StringVar(&minCoverage, "min-coverage", "", "Minimum coverage percentage enforced after a passing run")
	testCoverageCmd.Flags().StringVar(&reportDir, "report-dir", "", "Directory for coverage and JUnit reports (defaults to the configured one)")
	SetupUploadFlags(testCoverageCmd, &uploadFlags)
	testCoverageCmd.PreRunE = setupRun
}
