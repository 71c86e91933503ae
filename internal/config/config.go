package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	exeDirCache string
)

// getExecutableDir returns the directory where the executable is located
func getExecutableDir() string {
	if exeDirCache != "" {
		return exeDirCache
	}
	execPath, err := os.Executable()
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		exeDirCache = "."
		return exeDirCache
	}
	exeDirCache = filepath.Dir(execPath)
	return exeDirCache
}

type Config struct {
	Workspace WorkspaceConfig `yaml:"workspace"`
	Agent     AgentConfig     `yaml:"agent"`
	Sandbox   SandboxConfig   `yaml:"sandbox,omitempty"`
	Audit     AuditConfig     `yaml:"audit"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorkspaceConfig controls which workspace the prompt describes and which
// files get injected into Project Context.
type WorkspaceConfig struct {
	Dir              string   `yaml:"dir,omitempty"`
	ContextFiles     []string `yaml:"context_files,omitempty"` // extra files beyond the bootstrap set
	AllowedPaths     []string `yaml:"allowed_paths,omitempty"` // roots outside dir that context_files may use
	SkipBootstrap    bool     `yaml:"skip_bootstrap,omitempty"`
	StripFrontmatter bool     `yaml:"strip_frontmatter,omitempty"`
	MaxFileChars     int      `yaml:"max_file_chars,omitempty"`
}

// AgentConfig holds per-agent defaults applied to requests that leave the
// matching field unset.
type AgentConfig struct {
	ThinkLevel       string   `yaml:"think_level,omitempty"`
	Model            string   `yaml:"model,omitempty"`
	Owners           []string `yaml:"owners,omitempty"`
	Tools            []string `yaml:"tools,omitempty"`
	ModelAliases     []string `yaml:"model_aliases,omitempty"`
	Timezone         string   `yaml:"timezone,omitempty"`
	HeartbeatPrompt  string   `yaml:"heartbeat_prompt,omitempty"`
	ReasoningTagHint bool     `yaml:"reasoning_tag_hint,omitempty"`
	ProbeRuntime     bool     `yaml:"probe_runtime"`
}

type SandboxConfig struct {
	Enabled             bool   `yaml:"enabled"`
	WorkspaceDir        string `yaml:"workspace_dir,omitempty"`
	WorkspaceAccess     string `yaml:"workspace_access,omitempty"` // "none", "ro" or "rw"
	AgentWorkspaceMount string `yaml:"agent_workspace_mount,omitempty"`
	BrowserControlURL   string `yaml:"browser_control_url,omitempty"`
	BrowserNoVncURL     string `yaml:"browser_novnc_url,omitempty"`
}

// AuditConfig configures recording of assembled prompts.
type AuditConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Dir           string `yaml:"dir,omitempty"`
	FilePrefix    string `yaml:"file_prefix,omitempty"`
	RetentionDays int    `yaml:"retention_days,omitempty"`
	SQLitePath    string `yaml:"sqlite_path,omitempty"` // empty disables the SQLite sink
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			MaxFileChars: 20000,
		},
		Agent: AgentConfig{
			ThinkLevel:   "off",
			ProbeRuntime: true,
		},
		Audit: AuditConfig{
			Enabled:       false,
			Dir:           ".sysprompt/audit",
			FilePrefix:    "sysprompt",
			RetentionDays: 7,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func ConfigDir() string {
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".sysprompt")
}

// ConfigPath returns the config file path. SYSPROMPT_CONFIG overrides the
// executable-relative default.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("SYSPROMPT_CONFIG")); p != "" {
		return p
	}
	exeDir := getExecutableDir()
	return filepath.Join(exeDir, ".sysprompt.yaml")
}

func Load() (*Config, error) {
	return LoadFromPath(ConfigPath())
}

// LoadFromPath reads the config at path. A missing file yields defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets the environment override a few per-host values.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("SYSPROMPT_WORKSPACE")); v != "" {
		c.Workspace.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv("SYSPROMPT_TZ")); v != "" {
		c.Agent.Timezone = v
	}
	if v := strings.TrimSpace(os.Getenv("SYSPROMPT_MODEL")); v != "" {
		c.Agent.Model = v
	}
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
