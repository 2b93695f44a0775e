package cmd

import (
	"github.com/spf13/cobra"
)

var analyzeLevel string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Run static analysis with the configured analyzer",
	Long: `Run static analysis by dispatching to the configured analyzer. Without path
arguments the configured analyze paths are checked (src by default).

The rule level defaults to the configured one (max unless overridden) and
can be lowered per run with --level. The analyzer's exit code becomes the
process exit code.`,
	Example: `  husk analyze
  husk analyze --level 5 src
  husk analyze --json`,
	Args: cobra.ArbitraryArgs,
	RunE: analyzeCommand,
}

func analyzeCommand(cmd *cobra.Command, args []string) error {
	return runAnalyze(args, analyzeLevel)
}

func runAnalyze(args []string, level string) error {
	paths := targetPaths(args, conf.Paths.Analyze)

	result, err := execTool(conf.Analyzer(level), paths)
	if err != nil {
		return err
	}

	if err := emitResult(createResult("analyze", paths, result, nil)); err != nil {
		return err
	}

	return propagateExit.apply(result.ExitCode)
}

func init() {
	setupQAFlags(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeLevel, "level", "", "Analysis rule level (defaults to the configured level)")
	analyzeCmd.PreRunE = setupRun
}
