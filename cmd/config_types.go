package cmd

// CommonFlags holds the flags shared by every QA command
type CommonFlags struct {
	ConfigFile string
	JSONOutput bool
	Verbose    bool
	NoColor    bool
	DryRun     bool
}

// ContextConfig holds context-related flags
type ContextConfig struct {
	JSON string
	KV   []string
	File string
}

// UploadConfig holds upload-related flags
type UploadConfig struct {
	Provider   string
	Config     string
	ConfigKV   []string
	ConfigFile string
}

// WebhookConfig holds webhook-related flags
type WebhookConfig struct {
	URL        string
	AuthType   string
	AuthToken  string
	Timeout    string
	Retries    int
	RetryDelay string
}
