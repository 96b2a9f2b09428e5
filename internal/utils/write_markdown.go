package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteMarkdown writes one agent report under the results directory.
func WriteMarkdown(dir, fileName, content string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %v", path, err)
	}
	return nil
}
