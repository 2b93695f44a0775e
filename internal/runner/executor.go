package runner

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

type Config struct {
	Command     string
	Args        []string
	Dir         string    // working directory, empty means inherit
	Passthrough io.Writer // receives tool output live in addition to capture
	Verbose     bool
	DryRun      bool
}

type Result struct {
	Command       string // rendered command line
	Output        string // combined stdout and stderr
	ExitCode      int
	ExecutionTime int64 // milliseconds
	Skipped       bool  // true when the run was a dry run
}

// Execute runs a single external tool to completion and captures its combined
// output. A non-zero exit is data in the Result, not an error; errors are
// reserved for failing to start the process at all.
func Execute(config *Config) (*Result, error) {
	fullCommand := renderCommand(config)

	if config.Verbose {
		printPreExecution(fullCommand, config)
	}

	if config.DryRun {
		if !config.Verbose {
			printDryRunNotice(fullCommand)
		}
		return &Result{Command: fullCommand, Skipped: true}, nil
	}

	cmd := exec.Command(config.Command, config.Args...)
	cmd.Dir = config.Dir

	var captured bytes.Buffer
	var sink io.Writer = &captured
	if config.Passthrough != nil {
		sink = io.MultiWriter(&captured, config.Passthrough)
	}
	// Stdout and Stderr share the same writer so os/exec serializes both
	// streams onto a single pipe, preserving interleave order.
	cmd.Stdout = sink
	cmd.Stderr = sink

	startTime := time.Now()
	err := cmd.Run()
	executionTime := time.Since(startTime).Milliseconds()

	exitCode := 0
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				exitCode = status.ExitStatus()
			} else {
				exitCode = 1
			}
		} else {
			return nil, fmt.Errorf("failed to start command %s: %w", config.Command, err)
		}
	}

	if config.Verbose {
		printPostExecution(exitCode, executionTime)
	}

	return &Result{
		Command:       fullCommand,
		Output:        captured.String(),
		ExitCode:      exitCode,
		ExecutionTime: executionTime,
	}, nil
}

func renderCommand(config *Config) string {
	if len(config.Args) == 0 {
		return config.Command
	}
	return config.Command + " " + strings.Join(config.Args, " ")
}
