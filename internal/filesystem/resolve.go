package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidPath is returned when a requested path escapes the
	// configured root directory.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNotFound is returned when a requested path does not exist
	// under the root, or refers to a directory.
	ErrNotFound = errors.New("file not found")
)

// Resolve resolves a root-relative path to an absolute path, rejecting any
// path that escapes the root directory. The returned path is absolute and
// guaranteed to be at or below root.
func Resolve(root, relPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", ErrInvalidPath
	}

	abs, err := filepath.Abs(filepath.Join(absRoot, filepath.FromSlash(relPath)))
	if err != nil {
		return "", ErrInvalidPath
	}

	if !isSubPath(absRoot, abs) {
		return "", ErrInvalidPath
	}

	return abs, nil
}

// ResolveFile resolves a root-relative path to an existing regular file.
// Paths outside the root return ErrInvalidPath; missing paths and
// directories return ErrNotFound.
func ResolveFile(root, relPath string) (string, error) {
	abs, err := Resolve(root, relPath)
	if err != nil {
		return "", err
	}

	info, err := StatWithRetry(abs, DefaultRetryConfig())
	if err != nil {
		return "", ErrNotFound
	}
	if info.IsDir() {
		return "", ErrNotFound
	}

	return abs, nil
}

// OpenFile opens a file under root by its root-relative path, applying the
// same traversal guard as ResolveFile.
func OpenFile(root, relPath string) (*os.File, error) {
	abs, err := ResolveFile(root, relPath)
	if err != nil {
		return nil, err
	}
	return OpenWithRetry(abs, DefaultRetryConfig())
}

// isSubPath reports whether child is parent itself or lies below it.
// Both paths must already be absolute and cleaned.
func isSubPath(parent, child string) bool {
	if child == parent {
		return true
	}
	return strings.HasPrefix(child, parent+string(filepath.Separator))
}
