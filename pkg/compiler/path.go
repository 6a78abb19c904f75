package compiler

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvePath turns an import path into the absolute, canonical form used for
// reading, cycle detection and as the base of nested imports. Absolute paths
// are only cleaned. Relative paths are joined with basePath, the directory of
// the importing file; an empty basePath means the working directory.
func ResolvePath(path, basePath string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	abs, err := filepath.Abs(filepath.Join(basePath, path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q against %q: %w", path, basePath, err)
	}
	return abs, nil
}

// readSource reads a regular file in full. Directories are rejected so that
// they surface as FileNotFound rather than a confusing read error.
func readSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return os.ReadFile(path)
}
