// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"podmill/internal/config"
)

// NewConfig returns a validated configuration rooted in a temp
// directory, with every pipeline directory created.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.Paths.PendingDir = filepath.Join(root, "pending")
	cfg.Paths.DoneDir = filepath.Join(root, "done")
	cfg.Paths.EpisodesDir = filepath.Join(root, "episodes")
	cfg.Paths.JinglesDir = filepath.Join(root, "jingles")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Gemini.APIKey = "test-key"

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WriteFile creates a file with the given contents, creating parent
// directories as needed.
func WriteFile(t *testing.T, path string, contents []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
