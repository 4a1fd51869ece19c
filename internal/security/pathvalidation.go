// Package security validates externally supplied file paths before the
// rest of the pipeline touches them.
package security

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateConfigFile checks that path names a readable config file with the
// expected extension and a size under maxBytes, and returns the cleaned
// path. Extension and size are checked before any content is read, so an
// accidental path to a video file or a device node fails fast.
func ValidateConfigFile(path, wantExt string, maxBytes int64) (string, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != wantExt {
		return "", fmt.Errorf("config file must have %s extension, got %q", wantExt, ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("config path %s is a directory", cleanPath)
	}
	if info.Size() > maxBytes {
		return "", fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxBytes)
	}
	return cleanPath, nil
}
