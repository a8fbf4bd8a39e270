package storage

import (
	"fmt"
	"os"
	"path/filepath"

	errs "wbharvest/pkg/errors"
)

// Manager handles screenshot persistence inside a run's output directory
type Manager struct {
	outputDir string
}

// NewManager creates the output directory if needed and returns a manager
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errs.Wrap(errs.ErrorTypePersist,
			fmt.Sprintf("failed to create output directory %s", outputDir), err)
	}

	return &Manager{outputDir: outputDir}, nil
}

// SaveImage writes image bytes under the given filename. The write goes
// through a temporary file and an atomic rename so a crash never leaves
// a truncated screenshot behind.
func (m *Manager) SaveImage(data []byte, filename string) error {
	path := filepath.Join(m.outputDir, filename)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return errs.Wrap(errs.ErrorTypePersist,
			fmt.Sprintf("failed to write %s", filename), err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errs.Wrap(errs.ErrorTypePersist,
			fmt.Sprintf("failed to rename temporary file for %s", filename), err)
	}

	return nil
}

// GetOutputDir returns the output directory path
func (m *Manager) GetOutputDir() string {
	return m.outputDir
}
