// Package filex provides small filesystem helpers for loading media files.
package filex

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// ReadMedia reads a file and sniffs its media type from the content.
// The fallback for unrecognized content is application/octet-stream,
// which mimetype returns on its own.
func ReadMedia(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, mimetype.Detect(data).String(), nil
}

// EnsureSubDir creates (if needed) and returns a subdirectory of the
// current working directory.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
