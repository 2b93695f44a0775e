package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hollow-labs/husk/internal/config"
	"github.com/hollow-labs/husk/internal/meta"
	"github.com/hollow-labs/husk/internal/output"
	"github.com/hollow-labs/husk/internal/report"
	"github.com/hollow-labs/husk/internal/runner"
	"github.com/hollow-labs/husk/internal/webhook"
)

// Shared flag values. Every QA command binds the same set, only one command
// runs per invocation.
var (
	commonFlags  CommonFlags
	contextFlags ContextConfig
	webhookFlags WebhookConfig
	uploadFlags  UploadConfig
)

// State resolved by setupRun before a QA command executes.
var (
	conf                *config.Config
	metaData            any
	webhookConfigParsed *webhook.Config
	retryConfigParsed   *webhook.RetryConfig
)

// setupRun is the shared PreRunE for every QA command. It resolves the
// project config, run metadata, and webhook settings from the parsed flags.
func setupRun(cmd *cobra.Command, args []string) error {
	if commonFlags.NoColor {
		color.NoColor = true
	}

	cfg, err := config.Load(commonFlags.ConfigFile)
	if err != nil {
		return err
	}
	conf = cfg

	metaData, err = meta.Build(contextFlags.JSON, contextFlags.KV, contextFlags.File)
	if err != nil {
		return fmt.Errorf("failed to build context: %w", err)
	}

	mergeWebhookEnv(&webhookFlags)
	return parseWebhookConfig(&webhookFlags)
}

// webhookEnvPrefix is the environment namespace for webhook delivery
// settings, so CI can configure them once instead of per invocation.
const webhookEnvPrefix = "HUSK_WEBHOOK"

// mergeWebhookEnv fills webhook flags left at their defaults from the
// HUSK_WEBHOOK environment namespace. Explicit flags win.
func mergeWebhookEnv(flags *WebhookConfig) {
	env := meta.ParseEnv(webhookEnvPrefix)
	if env == nil {
		return
	}

	if flags.URL == "" {
		if url, ok := env["url"].(string); ok {
			flags.URL = url
		}
	}
	if flags.AuthType == "" || flags.AuthType == "none" {
		if authType, ok := env["auth_type"].(string); ok {
			flags.AuthType = authType
		}
	}
	if flags.AuthToken == "" {
		if authToken, ok := env["auth_token"].(string); ok {
			flags.AuthToken = authToken
		}
	}
	if flags.Timeout == "" || flags.Timeout == "30s" {
		if timeout, ok := env["timeout"].(string); ok {
			flags.Timeout = timeout
		}
	}
	if flags.Retries == 3 {
		if retries, ok := env["retries"].(int); ok {
			flags.Retries = retries
		}
	}
	if flags.RetryDelay == "" || flags.RetryDelay == "1s" {
		if retryDelay, ok := env["retry_delay"].(string); ok {
			flags.RetryDelay = retryDelay
		}
	}
}

// parseWebhookConfig resolves the webhook flag values into client settings
func parseWebhookConfig(flags *WebhookConfig) error {
	settings := webhook.Settings{
		URL:        flags.URL,
		AuthType:   flags.AuthType,
		AuthToken:  flags.AuthToken,
		Retries:    flags.Retries,
		RetryDelay: flags.RetryDelay,
		Timeout:    flags.Timeout,
	}

	config, retryConfig, err := settings.Build()
	if err != nil {
		return err
	}

	webhookConfigParsed = config
	retryConfigParsed = retryConfig
	return nil
}

// targetPaths returns the positional path arguments, or the configured
// defaults when the command was invoked without any.
func targetPaths(args, defaults []string) []string {
	if len(args) > 0 {
		return args
	}
	return defaults
}

// passthroughWriter picks where live tool output goes. JSON mode keeps
// stdout clean for the result line, so the tool stream moves to stderr.
func passthroughWriter() io.Writer {
	if commonFlags.JSONOutput {
		return os.Stderr
	}
	return os.Stdout
}

// execTool runs one QA tool against the target paths.
func execTool(tool config.Tool, paths []string) (*runner.Result, error) {
	args := make([]string, 0, len(tool.Args)+len(paths))
	args = append(args, tool.Args...)
	args = append(args, paths...)

	result, err := runner.Execute(&runner.Config{
		Command:     tool.Bin,
		Args:        args,
		Passthrough: passthroughWriter(),
		Verbose:     commonFlags.Verbose,
		DryRun:      commonFlags.DryRun,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", tool.Name, err)
	}

	return result, nil
}

// createResult builds the JSON payload for a completed QA step. The summary
// is optional; when present and non-empty it supplies the status and counts.
func createResult(op string, paths []string, run *runner.Result, summary *report.Summary) *output.Result {
	result := &output.Result{
		Command:       op,
		Tool:          run.Command,
		Status:        statusFor(run, summary),
		Paths:         paths,
		ExitCode:      run.ExitCode,
		ExecutionTime: run.ExecutionTime,
		Context:       metaData,
	}

	if summary != nil && !summary.Empty() {
		errors, warnings := summary.Errors, summary.Warnings
		result.Errors = &errors
		result.Warnings = &warnings
	}

	return result
}

func statusFor(run *runner.Result, summary *report.Summary) string {
	if run.Skipped {
		return "skipped"
	}
	if summary != nil && !summary.Empty() {
		return string(summary.Status())
	}
	if run.ExitCode == 0 {
		return "passed"
	}
	return "failed"
}

// emitResult sends the result to the webhook when one is configured and
// prints it as a JSON line when --json is set.
func emitResult(result *output.Result) error {
	if webhookConfigParsed != nil && webhookConfigParsed.URL != "" {
		client := webhook.NewClient(webhookConfigParsed, retryConfigParsed, commonFlags.Verbose)

		if commonFlags.Verbose {
			fmt.Fprintf(os.Stderr, "[WEBHOOK] Sending to %s\n", webhookConfigParsed.URL)
		}

		// Send a copy without the webhook status fields
		payload := *result
		payload.WebhookSent = false
		payload.WebhookError = ""

		ctx := context.Background()
		if err := client.Send(ctx, &payload); err != nil {
			// Delivery is best effort, the QA result stands on its own
			fmt.Fprintf(os.Stderr, "[WEBHOOK] Error: %v\n", err)

			result.WebhookSent = false
			result.WebhookError = err.Error()
		} else {
			result.WebhookSent = true
		}
	}

	if !commonFlags.JSONOutput {
		return nil
	}
	return outputJSON(result)
}

// outputJSON marshals and prints the result as JSON
func outputJSON(result *output.Result) error {
	jsonOutput, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}

	fmt.Println(string(jsonOutput))
	return nil
}
