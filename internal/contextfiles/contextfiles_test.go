package contextfiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadKeepsBootstrapOrderAndSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "HEARTBEAT.md"), "check inbox")
	mustWrite(t, filepath.Join(dir, "AGENTS.md"), "agent rules")
	mustWrite(t, filepath.Join(dir, "USER.md"), "   \n")
	mustWrite(t, filepath.Join(dir, "notes", "extra.md"), "extra notes")

	files, err := Load(Options{
		WorkspaceDir: dir,
		ExtraPaths:   []string{"notes/extra.md", "AGENTS.md", "missing.md"},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var got []string
	for _, f := range files {
		got = append(got, f.Path)
	}
	want := []string{"AGENTS.md", "HEARTBEAT.md", "notes/extra.md"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("paths = %v, want %v", got, want)
	}
	if files[0].Content != "agent rules" {
		t.Fatalf("expected verbatim content, got %q", files[0].Content)
	}
}

func TestLoadStripsFrontmatter(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "SOUL.md"), "---\ntitle: x\n---\nSoul values")

	files, err := Load(Options{WorkspaceDir: dir, StripFrontmatter: true})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(files) != 1 || files[0].Content != "Soul values" {
		t.Fatalf("expected frontmatter stripped, got %#v", files)
	}

	files, err = Load(Options{WorkspaceDir: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.Contains(files[0].Content, "title: x") {
		t.Fatalf("expected frontmatter kept without the option")
	}
}

func TestLoadTruncatesLargeFiles(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "MEMO.md"), strings.Repeat("a", 500)+strings.Repeat("z", 500))

	files, err := Load(Options{WorkspaceDir: dir, SkipBootstrap: true, ExtraPaths: []string{"MEMO.md"}, MaxChars: 100})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	content := files[0].Content
	if !strings.HasPrefix(content, strings.Repeat("a", 70)) || !strings.HasSuffix(content, strings.Repeat("z", 20)) {
		t.Fatalf("expected head and tail kept, got %q", content)
	}
	if !strings.Contains(content, "read MEMO.md for full content") {
		t.Fatalf("expected truncation marker, got %q", content)
	}
}

func TestLoadAbsoluteExtraOutsideWorkspace(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	outside := filepath.Join(other, "shared.md")
	mustWrite(t, outside, "shared")

	if _, err := Load(Options{WorkspaceDir: dir, SkipBootstrap: true, ExtraPaths: []string{outside}}); err == nil {
		t.Fatalf("expected file outside the workspace to be rejected")
	}
	if _, err := Load(Options{WorkspaceDir: dir, SkipBootstrap: true, ExtraPaths: []string{"../escape.md"}}); err == nil {
		t.Fatalf("expected relative escape to be rejected")
	}

	files, err := Load(Options{
		WorkspaceDir:  dir,
		SkipBootstrap: true,
		ExtraPaths:    []string{outside},
		AllowedPaths:  []string{other},
	})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(files) != 1 || files[0].Path != filepath.ToSlash(outside) {
		t.Fatalf("expected absolute display path, got %#v", files)
	}
}

func TestLoadRequiresWorkspace(t *testing.T) {
	if _, err := Load(Options{}); err == nil {
		t.Fatalf("expected error for empty workspace")
	}
}

func TestEnsureCreatesMissingTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ws")
	mustWrite(t, filepath.Join(dir, "AGENTS.md"), "custom")

	created, err := Ensure(dir)
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if len(created) != len(BootstrapNames())-1 {
		t.Fatalf("expected all but AGENTS.md created, got %v", created)
	}
	data, err := os.ReadFile(filepath.Join(dir, "AGENTS.md"))
	if err != nil {
		t.Fatalf("read AGENTS.md: %v", err)
	}
	if string(data) != "custom" {
		t.Fatalf("expected existing file untouched, got %q", data)
	}

	again, err := Ensure(dir)
	if err != nil {
		t.Fatalf("second Ensure failed: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("expected nothing created on second run, got %v", again)
	}
}
