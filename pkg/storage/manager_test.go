package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager(t *testing.T) {
	tempDir := t.TempDir()
	outputDir := filepath.Join(tempDir, "nested", "run")

	manager, err := NewManager(outputDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	if manager.GetOutputDir() != outputDir {
		t.Errorf("Expected output dir %s, got %s", outputDir, manager.GetOutputDir())
	}

	// Directory should exist even when nested
	if _, err := os.Stat(outputDir); err != nil {
		t.Fatalf("Expected output directory to be created: %v", err)
	}

	testData := []byte("png bytes")
	if err := manager.SaveImage(testData, "1-2-1.png"); err != nil {
		t.Fatalf("Failed to save image: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outputDir, "1-2-1.png"))
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}

	// No temporary file should be left behind
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected exactly 1 file, got %d", len(entries))
	}
}
