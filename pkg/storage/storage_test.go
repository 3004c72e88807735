package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFileCreatesDirectories(t *testing.T) {
	s := &Storage{}
	path := filepath.Join(t.TempDir(), "clips", "example_com.yaml")

	if err := s.SaveFile(path, []byte("text: Hello World\n")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "text: Hello World\n" {
		t.Errorf("file content = %q", data)
	}

	stats, err := s.GetFileStats(path)
	if err != nil {
		t.Fatalf("GetFileStats() error = %v", err)
	}
	if stats.SizeBytes != int64(len(data)) {
		t.Errorf("SizeBytes = %d, want %d", stats.SizeBytes, len(data))
	}
}

func TestGetFileStatsMissing(t *testing.T) {
	if _, err := (&Storage{}).GetFileStats(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
