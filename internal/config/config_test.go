package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathReadsAgentSection(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, ".sysprompt.yaml")
	content := `workspace:
  dir: /srv/agent
  context_files:
    - notes/extra.md
  strip_frontmatter: true
agent:
  think_level: low
  owners:
    - "+15550001"
  tools: [read, bash, gateway]
  timezone: Europe/Berlin
  probe_runtime: false
sandbox:
  enabled: true
  workspace_access: ro
audit:
  enabled: true
  sqlite_path: .sysprompt/audit.db
`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromPath(cfgPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Workspace.Dir != "/srv/agent" || !cfg.Workspace.StripFrontmatter {
		t.Fatalf("unexpected workspace config: %#v", cfg.Workspace)
	}
	if len(cfg.Agent.Tools) != 3 || cfg.Agent.Tools[2] != "gateway" {
		t.Fatalf("unexpected tools: %#v", cfg.Agent.Tools)
	}
	if cfg.Agent.ProbeRuntime {
		t.Fatalf("expected probe_runtime=false")
	}
	if !cfg.Sandbox.Enabled || cfg.Sandbox.WorkspaceAccess != "ro" {
		t.Fatalf("unexpected sandbox config: %#v", cfg.Sandbox)
	}
	// Defaults survive partial sections.
	if cfg.Audit.FilePrefix != "sysprompt" || cfg.Audit.RetentionDays != 7 {
		t.Fatalf("expected audit defaults to be kept: %#v", cfg.Audit)
	}
	if cfg.Workspace.MaxFileChars != 20000 {
		t.Fatalf("expected default max_file_chars, got %d", cfg.Workspace.MaxFileChars)
	}
}

func TestLoadFromPathMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Agent.ThinkLevel != "off" || !cfg.Agent.ProbeRuntime {
		t.Fatalf("unexpected defaults: %#v", cfg.Agent)
	}
}

func TestLoadFromPathEnvOverrides(t *testing.T) {
	t.Setenv("SYSPROMPT_WORKSPACE", "/env/ws")
	t.Setenv("SYSPROMPT_TZ", "Asia/Tokyo")
	t.Setenv("SYSPROMPT_MODEL", "openai/gpt-5")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Workspace.Dir != "/env/ws" || cfg.Agent.Timezone != "Asia/Tokyo" || cfg.Agent.Model != "openai/gpt-5" {
		t.Fatalf("expected env overrides, got %#v / %#v", cfg.Workspace, cfg.Agent)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.yaml")
	cfg := DefaultConfig()
	cfg.Agent.Owners = []string{"+1"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save config: %v", err)
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load saved config: %v", err)
	}
	if len(loaded.Agent.Owners) != 1 || loaded.Agent.Owners[0] != "+1" {
		t.Fatalf("unexpected owners after round trip: %#v", loaded.Agent.Owners)
	}
}

func TestConfigPathEnvOverride(t *testing.T) {
	t.Setenv("SYSPROMPT_CONFIG", "/tmp/custom.yaml")
	if got := ConfigPath(); got != "/tmp/custom.yaml" {
		t.Fatalf("ConfigPath() = %q", got)
	}
}
