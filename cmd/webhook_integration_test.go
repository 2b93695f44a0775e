package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/hollow-labs/husk/internal/output"
)

func TestSniffWithWebhook(t *testing.T) {
	dir := t.TempDir()
	cfg := stubTools(t, dir, map[string]string{"sniffer": sniffReportScript})

	var received output.Result
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("Failed to read body: %v", err)
		}
		if err := json.Unmarshal(body, &received); err != nil {
			t.Errorf("Failed to unmarshal payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	stdout, _, err := runHusk(t, "sniff", "-c", cfg, "--json",
		"--webhook-url", server.URL,
		"--webhook-retries", "0")

	// Close waits for in-flight handlers, so received is settled
	server.Close()

	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	results := parseResults(t, stdout)
	if len(results) != 1 {
		t.Fatalf("Expected 1 JSON result, got %d", len(results))
	}
	if !results[0].WebhookSent {
		t.Error("Expected webhook_sent to be true in local output")
	}

	if received.Command != "sniff" {
		t.Errorf("Expected payload command sniff, got %s", received.Command)
	}
	if received.Status != "failures" {
		t.Errorf("Expected payload status failures, got %s", received.Status)
	}
	if received.Errors == nil || *received.Errors != 3 {
		t.Errorf("Expected 3 errors in payload, got %v", received.Errors)
	}
	// Webhook status fields stay out of the delivered payload
	if received.WebhookSent {
		t.Error("Payload should not carry webhook_sent")
	}
}

func TestWebhookAuthHeaders(t *testing.T) {
	tests := []struct {
		name           string
		authType       string
		authToken      string
		expectedHeader string
		expectedValue  string
	}{
		{
			name:           "bearer auth",
			authType:       "bearer",
			authToken:      "secret-token",
			expectedHeader: "Authorization",
			expectedValue:  "Bearer secret-token",
		},
		{
			name:           "api-key auth",
			authType:       "api-key",
			authToken:      "key-value",
			expectedHeader: "X-API-Key",
			expectedValue:  "key-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := stubTools(t, dir, nil)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				value := r.Header.Get(tt.expectedHeader)
				if value != tt.expectedValue {
					t.Errorf("Expected %s header to be '%s', got '%s'",
						tt.expectedHeader, tt.expectedValue, value)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			_, _, err := runHusk(t, "sniff", "-c", cfg,
				"--webhook-url", server.URL,
				"--webhook-auth-type", tt.authType,
				"--webhook-auth-token", tt.authToken,
				"--webhook-retries", "0")

			if err != nil {
				t.Fatalf("Expected success, got error: %v", err)
			}
		})
	}
}

func TestWebhookFailureDoesNotFailCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := stubTools(t, dir, nil)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	stdout, stderr, err := runHusk(t, "sniff", "-c", cfg, "--json",
		"--webhook-url", server.URL,
		"--webhook-retries", "0")

	if err != nil {
		t.Fatalf("Command should not fail on webhook error: %v", err)
	}

	results := parseResults(t, stdout)
	if len(results) != 1 {
		t.Fatalf("Expected 1 JSON result, got %d", len(results))
	}
	if results[0].WebhookSent {
		t.Error("Expected webhook_sent to be false")
	}
	if results[0].WebhookError == "" {
		t.Error("Expected webhook_error to be set")
	}
	if !strings.Contains(stderr, "[WEBHOOK] Error:") {
		t.Errorf("Expected webhook error on stderr, got: %s", stderr)
	}
}

func TestWebhookInvalidAuthType(t *testing.T) {
	dir := t.TempDir()
	cfg := stubTools(t, dir, nil)

	_, _, err := runHusk(t, "sniff", "-c", cfg,
		"--webhook-url", "http://localhost:1",
		"--webhook-auth-type", "kerberos")

	if err == nil {
		t.Fatal("Expected error for invalid auth type")
	}
	if !strings.Contains(err.Error(), "invalid webhook auth type") {
		t.Errorf("Expected auth type error, got: %v", err)
	}
}

func TestWebhookFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	cfg := stubTools(t, dir, nil)

	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Setenv("HUSK_WEBHOOK_URL", server.URL)
	t.Setenv("HUSK_WEBHOOK_RETRIES", "0")

	_, _, err := runHusk(t, "sniff", "-c", cfg)

	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}
	if atomic.LoadInt32(&requests) != 1 {
		t.Errorf("Expected 1 webhook delivery from env config, got %d", requests)
	}
}

func TestAllSendsWebhookPerStep(t *testing.T) {
	dir := t.TempDir()
	cfg, _ := stubAllTools(t, dir, nil)

	var mu sync.Mutex
	var commands []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload output.Result
		_ = json.Unmarshal(body, &payload)

		mu.Lock()
		commands = append(commands, payload.Command)
		mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	_, _, err := runHusk(t, "all", "-c", cfg,
		"--webhook-url", server.URL,
		"--webhook-retries", "0")

	if err != nil {
		t.Fatalf("Expected success, got error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"sniff", "analyze", "testCoverage"}
	if len(commands) != len(want) {
		t.Fatalf("Expected %d webhook deliveries, got %v", len(want), commands)
	}
	for i, cmd := range want {
		if commands[i] != cmd {
			t.Errorf("Expected delivery %d to be %s, got %s", i, cmd, commands[i])
		}
	}
}
