package webhook

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Config holds webhook endpoint configuration
type Config struct {
	URL       string            // Webhook endpoint URL
	Method    string            // HTTP method (default: POST)
	Headers   map[string]string // Custom headers
	Timeout   time.Duration     // Overall timeout for all retries
	AuthType  string            // Authentication type: none, bearer, api-key
	AuthToken string            // Authentication token
}

// RetryConfig holds retry configuration
type RetryConfig struct {
	MaxRetries   int           // Maximum retry attempts (default: 3)
	InitialDelay time.Duration // Initial delay between retries (default: 1s)
	MaxDelay     time.Duration // Maximum delay (default: 30s)
	Multiplier   float64       // Backoff multiplier (default: 2.0)
}

// DefaultRetryConfig returns default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Settings is the raw webhook configuration as collected from flags and
// environment variables, before durations are parsed.
type Settings struct {
	URL        string
	AuthType   string
	AuthToken  string
	Retries    int
	RetryDelay string
	Timeout    string
}

// Build parses the settings into a client Config and RetryConfig. Settings
// without a URL build to nils: no webhook is configured.
func (s *Settings) Build() (*Config, *RetryConfig, error) {
	if s.URL == "" {
		return nil, nil, nil
	}

	switch s.AuthType {
	case "", "none", "bearer", "api-key":
	default:
		return nil, nil, fmt.Errorf("invalid webhook auth type %q (expected none, bearer or api-key)", s.AuthType)
	}

	timeout := 30 * time.Second
	if s.Timeout != "" {
		d, err := time.ParseDuration(s.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook timeout duration: %w", err)
		}
		timeout = d
	}

	retryDelay := 1 * time.Second
	if s.RetryDelay != "" {
		d, err := time.ParseDuration(s.RetryDelay)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid webhook retry delay: %w", err)
		}
		retryDelay = d
	}

	config := &Config{
		URL:       s.URL,
		Method:    "POST",
		Timeout:   timeout,
		AuthType:  s.AuthType,
		AuthToken: s.AuthToken,
	}
	retryConfig := &RetryConfig{
		MaxRetries:   s.Retries,
		InitialDelay: retryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	return config, retryConfig, nil
}

// backoff calculates the delay before the given retry attempt: exponential
// growth capped at MaxDelay, with ±10% jitter to prevent thundering herd.
func (rc *RetryConfig) backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	delay := float64(rc.InitialDelay) * math.Pow(rc.Multiplier, float64(attempt-1))

	if delay > float64(rc.MaxDelay) {
		delay = float64(rc.MaxDelay)
	}

	jitter := delay * 0.1
	delay = delay + (rand.Float64()*2-1)*jitter

	return time.Duration(delay)
}

// isRetryableStatus checks if an HTTP status code should trigger a retry
func isRetryableStatus(code int) bool {
	switch code {
	case 408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504: // Gateway Timeout
		return true
	default:
		return false
	}
}
