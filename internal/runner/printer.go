package runner

import (
	"fmt"
	"os"
)

// printPreExecution prints tool invocation details before execution
func printPreExecution(fullCommand string, config *Config) {
	header := "Husk Tool Execution"
	if config.DryRun {
		header = "Husk Tool Execution (DRY RUN)"
	}

	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintln(os.Stderr, header)
	fmt.Fprintln(os.Stderr, "========================================")
	fmt.Fprintf(os.Stderr, "Command: %s\n", fullCommand)
	if config.Dir != "" {
		fmt.Fprintf(os.Stderr, "Workdir: %s\n", config.Dir)
	}
	fmt.Fprintln(os.Stderr, "----------------------------------------")

	if config.DryRun {
		fmt.Fprintln(os.Stderr, "[DRY RUN] Command would be executed here")
		fmt.Fprintln(os.Stderr, "========================================")
	}
}

// printPostExecution prints execution results after the tool completes
func printPostExecution(exitCode int, executionTime int64) {
	fmt.Fprintln(os.Stderr, "----------------------------------------")
	fmt.Fprintln(os.Stderr, "Execution Results:")
	fmt.Fprintf(os.Stderr, "Exit Code:      %d\n", exitCode)
	fmt.Fprintf(os.Stderr, "Execution Time: %d ms\n", executionTime)
	fmt.Fprintln(os.Stderr, "========================================")
}

// printDryRunNotice prints the single-line dry run form used outside verbose mode
func printDryRunNotice(fullCommand string) {
	fmt.Fprintf(os.Stderr, "[DRY RUN] Would execute: %s\n", fullCommand)
}
