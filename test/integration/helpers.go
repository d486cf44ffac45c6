//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	AccessToken string
	Email       string
	NATSURL     string
	PWPath      string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		AccessToken: os.Getenv("PW_ACCESS_TOKEN"),
		Email:       os.Getenv("PW_EMAIL"),
		NATSURL:     os.Getenv("PW_NATS_URL"),
		PWPath:      getPWPath(),
		Verbose:     os.Getenv("PW_VERBOSE") == "true",
	}
}

// getPWPath determines the path to the pw binary
func getPWPath() string {
	if path := os.Getenv("PW_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../pw", "./pw", "../pw"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "pw"
}

// SkipIfMissingCredentials skips the test when no live account is configured
func (config *TestConfig) SkipIfMissingCredentials(t *testing.T) {
	t.Helper()

	if config.AccessToken == "" || config.Email == "" {
		t.Skip("PW_ACCESS_TOKEN or PW_EMAIL not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the pw binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.PWPath); err != nil {
		t.Skipf("pw binary not found at %s, skipping integration test", config.PWPath)
	}
}

// CommandRunner runs pw commands against the live API
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes a pw command and returns its output. Credentials are passed
// through the environment and the config file points at a scratch directory.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", filepath.Join(runner.t.TempDir(), "config.yml")}, args...)

	cmd := exec.Command(runner.config.PWPath, args...)
	cmd.Env = append(os.Environ(),
		"PW_ACCESS_TOKEN="+runner.config.AccessToken,
		"PW_EMAIL="+runner.config.Email,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.PWPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a pw command with JSON output and decodes the result
func (runner *CommandRunner) RunJSON(out any, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		return fmt.Errorf("pw %s: %w: %s", strings.Join(args, " "), err, stderr)
	}

	return json.Unmarshal([]byte(stdout), out)
}

// CleanupResource attempts to delete a test resource
func (runner *CommandRunner) CleanupResource(resource, id string) {
	stdout, stderr, err := runner.Run(resource, "delete", id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resource, id, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// AssertYAMLOutput verifies command output decodes as YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var v any
	if err := yaml.Unmarshal([]byte(output), &v); err != nil {
		t.Errorf("Output does not appear to be YAML: %v\n%s", err, output)
	}
}
