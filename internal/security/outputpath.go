// Package security guards the locations the tools write report files to.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateWithin returns an error unless path resolves inside dir. Symlinks
// in the longest existing prefix of path are resolved first, so a link
// inside dir that points elsewhere is rejected.
func ValidateWithin(path, dir string) error {
	canonicalPath, err := canonical(path)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory: %w", err)
	}
	canonicalDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return fmt.Errorf("failed to resolve directory symlinks: %w", err)
	}

	rel, err := filepath.Rel(canonicalDir, canonicalPath)
	if err != nil {
		return fmt.Errorf("path is outside %s: %w", dir, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return fmt.Errorf("path %s escapes %s", path, dir)
	}
	return nil
}

// canonical resolves path to an absolute, symlink-free form. For paths that
// do not exist yet, the nearest existing ancestor is resolved and the rest
// is joined back on.
func canonical(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	for dir := abs; ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			rest, _ := filepath.Rel(dir, abs)
			return filepath.Join(resolved, rest), nil
		}
		if filepath.Dir(dir) == dir {
			return abs, nil
		}
	}
}

// ValidateOutputPath accepts report paths inside the working directory or
// the system temp directory.
func ValidateOutputPath(path string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	for _, dir := range []string{cwd, os.TempDir()} {
		if ValidateWithin(path, dir) == nil {
			return nil
		}
	}
	return fmt.Errorf("output path %s must be within %s or %s", path, cwd, os.TempDir())
}
