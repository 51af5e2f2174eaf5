package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podmill/internal/logging"
	"podmill/internal/services"
)

func TestConsoleHandlerRendersComponentAndAttrs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logging.NewComponentLogger(logger, "synthesizer").Info("segment generated",
		logging.Int("ordinal", 3),
		logging.String("speaker", "Emma"),
	)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO synthesizer: segment generated") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "ordinal=3") || !strings.Contains(line, "speaker=Emma") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestJSONHandlerUsesCanonicalKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("queue scan", logging.Int("pending", 2))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("decode json line: %v", err)
	}
	if payload["msg"] != "queue scan" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextStampsIdentifiers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithEpisode(context.Background(), "ep-demo")
	ctx = services.WithStage(ctx, "synthesizing")
	logging.WithContext(ctx, logger).Info("working")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "episode=ep-demo") || !strings.Contains(line, "stage=synthesizing") {
		t.Fatalf("missing context attrs: %q", line)
	}
}
