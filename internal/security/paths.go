// Package security restricts which files may be injected into a prompt.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathChecker validates file paths against a list of allowed roots.
// An empty list means no restrictions.
type PathChecker struct {
	roots []string // resolved absolute paths
}

// NewPathChecker expands ~ and resolves each root to an absolute path.
func NewPathChecker(roots []string) *PathChecker {
	resolved := make([]string, 0, len(roots))
	for _, p := range roots {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(ExpandHome(p))
		if err != nil {
			continue
		}
		resolved = append(resolved, filepath.Clean(abs))
	}
	return &PathChecker{roots: resolved}
}

// IsAllowed reports whether path is one of the roots or lies beneath one.
func (pc *PathChecker) IsAllowed(path string) bool {
	if len(pc.roots) == 0 {
		return true
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return false
	}
	abs = filepath.Clean(abs)
	for _, root := range pc.roots {
		if abs == root || strings.HasPrefix(abs, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// CheckPath returns an error naming the roots when path is not allowed.
func (pc *PathChecker) CheckPath(path string) error {
	if pc.IsAllowed(path) {
		return nil
	}
	return fmt.Errorf("path %q is outside the allowed directories %v", path, pc.roots)
}

// Roots returns the resolved allowed roots.
func (pc *PathChecker) Roots() []string {
	return pc.roots
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
