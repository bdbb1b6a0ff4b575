package util

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Example output for "ex.txt": "1712345678901234567-ex.txt"
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix := fmt.Sprintf("%d", time.Now().UnixNano())
	return fmt.Sprintf("%s-%s", uniquePrefix, filepath.Base(fileName))
}

// SaveUploadPath returns a fresh path inside dir for an uploaded file, creating dir.
func SaveUploadPath(dir, fileName string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	return filepath.Join(dir, AddUniquePrefixToFileName(fileName)), nil
}
