package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/hollow-labs/husk/internal/output"
)

// resetState restores the shared flag values and resolved state between
// command executions, including the flag defaults pflag only applies once.
func resetState() {
	commonFlags = CommonFlags{}
	contextFlags = ContextConfig{}
	webhookFlags = WebhookConfig{AuthType: "none", Timeout: "30s", Retries: 3, RetryDelay: "1s"}
	uploadFlags = UploadConfig{}
	analyzeLevel = ""
	minCoverage = ""
	reportDir = ""

	conf = nil
	metaData = nil
	webhookConfigParsed = nil
	retryConfigParsed = nil

	color.NoColor = true
}

// captureOutput runs fn with stdout and stderr redirected into buffers.
func captureOutput(t *testing.T, fn func() error) (stdout, stderr string, err error) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	err = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var bufOut, bufErr bytes.Buffer
	_, _ = io.Copy(&bufOut, rOut)
	_, _ = io.Copy(&bufErr, rErr)

	return bufOut.String(), bufErr.String(), err
}

// runHusk executes the CLI with the given arguments and captured output.
func runHusk(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetState()
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)

	return captureOutput(t, rootCmd.Execute)
}

// exitCode extracts the process exit code a command error resolves to.
func exitCode(t *testing.T, err error) int {
	t.Helper()

	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T: %v", err, err)
	}
	return exitErr.Code
}

// writeStub creates an executable shell script standing in for a QA tool.
func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

// stubTools writes stub binaries for all four QA tools plus a config file
// pointing at them, with the report directory kept inside dir. Tools without
// a script succeed silently.
func stubTools(t *testing.T, dir string, scripts map[string]string) string {
	t.Helper()

	for _, name := range []string{"sniffer", "fixer", "analyzer", "tester"} {
		script, ok := scripts[name]
		if !ok {
			script = "exit 0"
		}
		writeStub(t, dir, name, script)
	}

	content := fmt.Sprintf(`tools:
  sniffer: %s
  fixer: %s
  analyzer: %s
  tester: %s
coverage:
  dir: %s
`,
		filepath.Join(dir, "sniffer"),
		filepath.Join(dir, "fixer"),
		filepath.Join(dir, "analyzer"),
		filepath.Join(dir, "tester"),
		filepath.Join(dir, "qa"))

	path := filepath.Join(dir, "husk.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// parseResults parses the JSON lines a --json run printed to stdout.
func parseResults(t *testing.T, stdout string) []output.Result {
	t.Helper()

	var results []output.Result
	for _, line := range strings.Split(strings.TrimSpace(stdout), "\n") {
		if !strings.HasPrefix(line, "{") {
			continue
		}
		var res output.Result
		if err := json.Unmarshal([]byte(line), &res); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		results = append(results, res)
	}
	return results
}

func TestRootNoArgs(t *testing.T) {
	_, stderr, err := runHusk(t)

	if code := exitCode(t, err); code != ExitUsage {
		t.Errorf("Expected exit code %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("Expected usage on stderr, got: %s", stderr)
	}
	if !strings.Contains(stderr, "Available Commands:") {
		t.Errorf("Expected command list on stderr, got: %s", stderr)
	}
}

func TestRootUnknownCommand(t *testing.T) {
	_, stderr, err := runHusk(t, "lint")

	if code := exitCode(t, err); code != ExitUsage {
		t.Errorf("Expected exit code %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr, `unknown command "lint"`) {
		t.Errorf("Expected unknown command error, got: %s", stderr)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("Expected usage on stderr, got: %s", stderr)
	}
}

func TestRootUnknownFlag(t *testing.T) {
	_, stderr, err := runHusk(t, "sniff", "--bogus")

	if code := exitCode(t, err); code != ExitUsage {
		t.Errorf("Expected exit code %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr, "unknown flag") {
		t.Errorf("Expected unknown flag error, got: %s", stderr)
	}
}

func TestRootHelp(t *testing.T) {
	stdout, _, err := runHusk(t, "--help")

	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}
	for _, name := range []string{"sniff", "sniff-fix", "analyze", "test", "testCoverage", "all"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("Expected help to list %q, got: %s", name, stdout)
		}
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := runHusk(t, "sniff", "-c", filepath.Join(t.TempDir(), "nope.yml"))

	if err == nil {
		t.Fatal("Expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Expected config read error, got: %v", err)
	}
}
