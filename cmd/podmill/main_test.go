package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	configPath := filepath.Join(root, "podmill.toml")
	contents := `[paths]
pending_dir = "` + filepath.Join(root, "pending") + `"
done_dir = "` + filepath.Join(root, "done") + `"
episodes_dir = "` + filepath.Join(root, "episodes") + `"
jingles_dir = "` + filepath.Join(root, "jingles") + `"
log_dir = "` + filepath.Join(root, "logs") + `"

[gemini]
api_key = "test-key"
`
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootListsSubcommands(t *testing.T) {
	output, err := runCommand(t, "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"run", "queue", "config", "voices"} {
		if !strings.Contains(output, want) {
			t.Errorf("help should mention %q:\n%s", want, output)
		}
	}
}

func TestVoicesCommand(t *testing.T) {
	output, err := runCommand(t, "voices")
	if err != nil {
		t.Fatalf("voices: %v", err)
	}
	for _, want := range []string{"am_adam", "bf_emma", "British Female"} {
		if !strings.Contains(output, want) {
			t.Errorf("voices output should contain %q:\n%s", want, output)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	output, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(output, target) {
		t.Errorf("output should name the target: %s", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample config: %v", err)
	}

	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("second init without --overwrite should fail")
	}
	if _, err := runCommand(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("init with --overwrite: %v", err)
	}
}

func TestQueueListEmptyLedger(t *testing.T) {
	configPath := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	if !strings.Contains(output, "Ledger is empty") {
		t.Errorf("unexpected output: %s", output)
	}
}

func TestQueueHealth(t *testing.T) {
	configPath := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "queue", "health")
	if err != nil {
		t.Fatalf("queue health: %v", err)
	}
	if !strings.Contains(output, "Schema version: 1") {
		t.Errorf("unexpected output: %s", output)
	}
	if !strings.Contains(output, "TTS server:") {
		t.Errorf("health should report TTS server status: %s", output)
	}
}

func TestConfigShowRedactsAPIKey(t *testing.T) {
	configPath := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(output, "test-key") {
		t.Errorf("api key should be redacted:\n%s", output)
	}
	if !strings.Contains(output, "<redacted>") {
		t.Errorf("expected redaction marker:\n%s", output)
	}
	if !strings.Contains(output, "pending_dir") {
		t.Errorf("expected resolved paths in output:\n%s", output)
	}
}

func TestConfigPath(t *testing.T) {
	configPath := writeTestConfig(t)
	output, err := runCommand(t, "--config", configPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.Contains(output, configPath) {
		t.Errorf("expected %s in output, got: %s", configPath, output)
	}
}

func TestRunRejectsFlagsWithoutPrompt(t *testing.T) {
	configPath := writeTestConfig(t)
	_, err := runCommand(t, "--config", configPath, "run", "--name", "x")
	if err == nil {
		t.Fatal("expected error for --name without a prompt file")
	}
}
