// Package fsutil provides file system helpers for luafmt: reading a
// file together with its mode, and atomic in-place replacement.
package fsutil

import (
	"errors"
	"fmt"
	"os"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// ReadFile reads a file and returns its content along with its mode.
// The mode lets callers rewrite the file without clobbering its
// permissions.
func ReadFile(path string) ([]byte, os.FileMode, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, 0, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, 0, fmt.Errorf("read %s: %w", path, err)
	}

	return content, stat.Mode(), nil
}
