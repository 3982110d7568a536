package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Standard default permissions
// File: u=rw, g=rw, o=r
const PermFile os.FileMode = 0664

// Dir:  u=rwx, g=rwx, o=rx (Requires +x to traverse)
const PermDir os.FileMode = 0775

// Exec: u=rwx, g=rx, o=rx (generated job scripts)
const PermExec os.FileMode = 0755

// IsYaml checks if the path has a YAML extension (.yaml, .yml).
// Used to recognise catalog description files.
func IsYaml(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// --- Filesystem Checks (OS-based) ---

// FileExists checks if a file exists and is not a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// DirExists checks if a path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && info.IsDir()
}

// EnsureDir checks if a directory exists, and creates it if it doesn't.
func EnsureDir(path string) error {
	if DirExists(path) {
		return nil
	}
	return os.MkdirAll(path, PermDir)
}

// WriteExecutable writes content to path and sets the executable bit.
// The chmod is explicit so an existing file with a stricter mode is fixed too.
func WriteExecutable(path string, content []byte) error {
	if err := os.WriteFile(path, content, PermExec); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	PrintDebug("Fixing permissions for file: %s [%v]", StylePath(path), PermExec)
	if err := os.Chmod(path, PermExec); err != nil {
		return fmt.Errorf("failed to chmod file %s: %w", path, err)
	}
	return nil
}
