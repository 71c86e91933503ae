package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPathCheckerRoots(t *testing.T) {
	root := t.TempDir()
	pc := NewPathChecker([]string{root, "  "})

	if len(pc.Roots()) != 1 {
		t.Fatalf("expected blank roots dropped, got %v", pc.Roots())
	}
	if !pc.IsAllowed(root) || !pc.IsAllowed(filepath.Join(root, "a", "b.md")) {
		t.Fatalf("expected root and children allowed")
	}
	if pc.IsAllowed(root + "-sibling/file.md") {
		t.Fatalf("expected sibling with shared prefix to be rejected")
	}
	if pc.IsAllowed(filepath.Join(root, "..", "escape.md")) {
		t.Fatalf("expected parent traversal to be rejected")
	}
	if err := pc.CheckPath("/definitely/elsewhere"); err == nil {
		t.Fatalf("expected CheckPath error")
	}
}

func TestPathCheckerEmptyAllowsAll(t *testing.T) {
	if !NewPathChecker(nil).IsAllowed("/anything") {
		t.Fatalf("expected no restrictions for empty roots")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/notes.md"); got != filepath.Join(home, "notes.md") {
		t.Fatalf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/notes.md"); got != "/abs/notes.md" {
		t.Fatalf("ExpandHome() changed absolute path: %q", got)
	}
}
