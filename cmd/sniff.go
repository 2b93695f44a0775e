package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hollow-labs/husk/internal/report"
)

var sniffCmd = &cobra.Command{
	Use:   "sniff [paths...]",
	Short: "Check coding style with the configured sniffer",
	Long: `Check coding style by dispatching to the configured sniffer. Without path
arguments the configured sniff paths are checked (src and tests by default).

The sniffer's own exit code is deliberately discarded: the rendered summary
of errors and warnings is the outcome. Use sniff-fix to auto-fix violations.`,
	Example: `  husk sniff
  husk sniff src/Service
  husk sniff --json src tests`,
	Args: cobra.ArbitraryArgs,
	RunE: sniffCommand,
}

var sniffFixCmd = &cobra.Command{
	Use:   "sniff-fix [paths...]",
	Short: "Auto-fix coding style violations with the configured fixer",
	Long: `Auto-fix coding style violations by dispatching to the configured fixer.
Without path arguments the configured sniff paths are fixed. The fixer's
exit code becomes the process exit code.`,
	Example: `  husk sniff-fix
  husk sniff-fix src/Service`,
	Args: cobra.ArbitraryArgs,
	RunE: sniffFixCommand,
}

func sniffCommand(cmd *cobra.Command, args []string) error {
	return runSniff(args)
}

func sniffFixCommand(cmd *cobra.Command, args []string) error {
	return runSniffFix(args)
}

func runSniff(args []string) error {
	paths := targetPaths(args, conf.Paths.Sniff)

	result, err := execTool(conf.Sniffer(), paths)
	if err != nil {
		return err
	}

	summary := report.Parse(result.Output)
	if !result.Skipped {
		report.Render(passthroughWriter(), summary)
	}

	if err := emitResult(createResult("sniff", paths, result, &summary)); err != nil {
		return err
	}

	// The sniffer's exit status is advisory, the summary tells the story
	return suppressExit.apply(result.ExitCode)
}

func runSniffFix(args []string) error {
	paths := targetPaths(args, conf.Paths.Sniff)

	result, err := execTool(conf.Fixer(), paths)
	if err != nil {
		return err
	}

	if err := emitResult(createResult("sniff-fix", paths, result, nil)); err != nil {
		return err
	}

	return propagateExit.apply(result.ExitCode)
}

func init() {
	setupQAFlags(sniffCmd)
	sniffCmd.PreRunE = setupRun

	setupQAFlags(sniffFixCmd)
	sniffFixCmd.PreRunE = setupRun
}
