package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"podmill/internal/fileutil"
)

func TestCopyFilePreservesContents(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.wav")
	dst := filepath.Join(dir, "nested", "dst.wav")
	if err := os.WriteFile(src, []byte("audio-bytes"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := fileutil.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestMoveFileRemovesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prompt.mp3")
	dst := filepath.Join(dir, "done", "prompt.mp3")
	if err := os.WriteFile(src, []byte("prompt"), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	if err := fileutil.MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected source removed, err=%v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("expected destination present: %v", err)
	}
}
