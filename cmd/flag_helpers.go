package cmd

import (
	"github.com/spf13/cobra"
)

// SetupCommonFlags adds the flags shared by every QA command
func SetupCommonFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVarP(&flags.ConfigFile, "config", "c", "", "Path to the config file (default .husk.yml)")
	cmd.Flags().BoolVar(&flags.JSONOutput, "json", false, "Print the result as a JSON line on stdout")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Show tool invocation details on stderr")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colorized output")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Print the tool command without executing it")
}

// SetupContextFlags adds context-related flags to a command
func SetupContextFlags(cmd *cobra.Command, config *ContextConfig) {
	cmd.Flags().StringVar(&config.JSON, "context", "", "Context data as JSON string")
	cmd.Flags().StringArrayVar(&config.KV, "context-kv", nil, "Context key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&config.File, "context-file", "", "Path to JSON file containing context data")
}

// SetupUploadFlags adds upload-related flags to a command
func SetupUploadFlags(cmd *cobra.Command, config *UploadConfig) {
	cmd.Flags().StringVar(&config.Provider, "upload-provider", "", "Upload provider type (e.g., minio)")
	cmd.Flags().StringVar(&config.Config, "upload-config", "", "Upload configuration as JSON string")
	cmd.Flags().StringArrayVar(&config.ConfigKV, "upload-config-kv", nil, "Upload config key=value pairs (can be used multiple times)")
	cmd.Flags().StringVar(&config.ConfigFile, "upload-config-file", "", "Path to JSON file containing upload configuration")
}

// SetupWebhookFlags adds webhook-related flags to a command
func SetupWebhookFlags(cmd *cobra.Command, config *WebhookConfig) {
	cmd.Flags().StringVar(&config.URL, "webhook-url", "", "Webhook URL to send results to")
	cmd.Flags().StringVar(&config.AuthType, "webhook-auth-type", "none", "Authentication type: none, bearer, api-key")
	cmd.Flags().StringVar(&config.AuthToken, "webhook-auth-token", "", "Authentication token (use with --webhook-auth-type)")
	cmd.Flags().IntVar(&config.Retries, "webhook-retries", 3, "Maximum webhook retry attempts (0 = no retries)")
	cmd.Flags().StringVar(&config.RetryDelay, "webhook-retry-delay", "1s", "Initial delay between webhook retries")
	cmd.Flags().StringVar(&config.Timeout, "webhook-timeout", "30s", "Total timeout for webhook including retries")
}

// setupQAFlags attaches the full shared flag set to a QA command
func setupQAFlags(cmd *cobra.Command) {
	SetupCommonFlags(cmd, &commonFlags)
	SetupContextFlags(cmd, &contextFlags)
	SetupWebhookFlags(cmd, &webhookFlags)
}
