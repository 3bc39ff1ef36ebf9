package files

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves paths that include a tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, path[2:]), nil
	}
	return path, nil
}

// ValidatePath checks that path names an existing regular file that can be linted.
func ValidatePath(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q is a directory, not a file", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %q is not a regular file", path)
	}
	return nil
}

// CreateFolderIfNotExists checks if a folder exists, and if not, creates it.
func CreateFolderIfNotExists(folder string) error {
	if _, err := os.Stat(folder); os.IsNotExist(err) {
		if err := os.MkdirAll(folder, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %q: %w", folder, err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to check folder %q: %w", folder, err)
	}
	return nil
}

// AbsPath returns the cleaned absolute form of path relative to the current working directory.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// ProperPath canonicalizes path for comparison and sorting: absolute paths stay absolute,
// relative paths are made relative to the current working directory.
func ProperPath(path string) string {
	abs := AbsPath(path)
	if filepath.IsAbs(path) {
		return abs
	}
	wd, err := os.Getwd()
	if err != nil {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil {
		return filepath.Clean(path)
	}
	return rel
}

// SamePath reports whether a and b name the same file once both are made absolute.
func SamePath(a, b string) bool {
	return AbsPath(a) == AbsPath(b)
}

// OpenOutput returns a writer for path, creating parent folders as needed.
// An empty path or "-" selects stdout; the returned close function is always safe to call.
func OpenOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}

	path, err := ExpandPath(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unwrap path %q: %w", path, err)
	}
	if err := CreateFolderIfNotExists(filepath.Dir(path)); err != nil {
		return nil, nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed creating file: %w", err)
	}
	return file, file.Close, nil
}
