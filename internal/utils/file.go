package utils

import (
	"fmt"
	"os"
)

// EnsureExists errors when path does not name an existing file.
func EnsureExists(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file does not exist: %s", path)
	}
	return nil
}

// LoadFile reads a file that is required to exist.
func LoadFile(path string) ([]byte, error) {
	if err := EnsureExists(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return data, nil
}
