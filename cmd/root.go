package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "husk",
	Short: "A QA command wrapper for PHP projects",
	Long: `Husk wraps the QA tools of a PHP project behind short, memorable commands.
It dispatches to the configured sniffer, fixer, static analyzer and test
runner, summarizes their reports, and can publish results as JSON, to a
webhook, or to object storage.

Perfect for local development loops and CI pipelines.`,
	Version:       version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocations and unknown commands both land here
		if len(args) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown command %q for %q\n", args[0], cmd.CommandPath())
		}
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return &ExitError{Code: ExitUsage}
	},
}

// Execute runs the CLI and exits the process with the resolved code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintf(os.Stderr, "Error: %s\n", exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitInternal)
	}
}

// usageArgs wraps a positional argument validator so violations print usage
// and exit with the usage code instead of a plain failure.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return &ExitError{Code: ExitUsage}
		}
		return nil
	}
}

func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return &ExitError{Code: ExitUsage}
	})

	rootCmd.AddCommand(sniffCmd)
	rootCmd.AddCommand(sniffFixCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(testCoverageCmd)
	rootCmd.AddCommand(allCmd)
}
