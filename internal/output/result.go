package output

// Result is the structured record of one QA operation, printed as JSON in
// --json mode and posted to the webhook when one is configured.
type Result struct {
	Command       string   `json:"command"`
	Tool          string   `json:"tool,omitempty"`
	Status        string   `json:"status"`
	Paths         []string `json:"paths,omitempty"`
	ExitCode      int      `json:"exit_code"`
	ExecutionTime int64    `json:"execution_time"` // in milliseconds
	Errors        *int     `json:"errors,omitempty"`
	Warnings      *int     `json:"warnings,omitempty"`
	Coverage      *string  `json:"coverage,omitempty"` // percentage, two decimal places
	Reports       []string `json:"reports,omitempty"`
	Context       any      `json:"context,omitempty"`

	// Webhook status (only in local output, not sent to webhook)
	WebhookSent  bool   `json:"webhook_sent,omitempty"`
	WebhookError string `json:"webhook_error,omitempty"`
}
