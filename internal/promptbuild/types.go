package promptbuild

// ContextFile is an injected workspace file rendered under Project Context.
type ContextFile struct {
	Path    string `yaml:"path" json:"path"`
	Content string `yaml:"content" json:"content"`
}

// RuntimeInfo describes the host the agent runs on.
type RuntimeInfo struct {
	Host  string `yaml:"host,omitempty" json:"host,omitempty"`
	OS    string `yaml:"os,omitempty" json:"os,omitempty"`
	Arch  string `yaml:"arch,omitempty" json:"arch,omitempty"`
	Node  string `yaml:"node,omitempty" json:"node,omitempty"`
	Model string `yaml:"model,omitempty" json:"model,omitempty"`
}

// Sandbox workspace access levels.
const (
	AccessNone      = "none"
	AccessReadOnly  = "ro"
	AccessReadWrite = "rw"
)

// SandboxInfo describes the sandbox tools execute in, if any.
type SandboxInfo struct {
	Enabled             bool   `yaml:"enabled" json:"enabled"`
	WorkspaceDir        string `yaml:"workspace_dir,omitempty" json:"workspace_dir,omitempty"`
	WorkspaceAccess     string `yaml:"workspace_access,omitempty" json:"workspace_access,omitempty"`
	AgentWorkspaceMount string `yaml:"agent_workspace_mount,omitempty" json:"agent_workspace_mount,omitempty"`
	BrowserControlURL   string `yaml:"browser_control_url,omitempty" json:"browser_control_url,omitempty"`
	BrowserNoVncURL     string `yaml:"browser_novnc_url,omitempty" json:"browser_novnc_url,omitempty"`
}

// BuildRequest defines inputs for one system prompt assembly.
// Only WorkspaceDir is required; every other field suppresses its
// section when left empty.
type BuildRequest struct {
	WorkspaceDir      string `yaml:"workspace_dir" json:"workspace_dir"`
	DefaultThinkLevel string `yaml:"default_think_level,omitempty" json:"default_think_level,omitempty"`
	ExtraSystemPrompt string `yaml:"extra_system_prompt,omitempty" json:"extra_system_prompt,omitempty"`

	OwnerNumbers     []string `yaml:"owner_numbers,omitempty" json:"owner_numbers,omitempty"`
	ReasoningTagHint bool     `yaml:"reasoning_tag_hint,omitempty" json:"reasoning_tag_hint,omitempty"`

	// ToolNames is the policy-filtered tool list. Case and surrounding
	// whitespace are ignored.
	ToolNames []string `yaml:"tool_names,omitempty" json:"tool_names,omitempty"`

	// ModelAliasLines are pre-formatted lines inserted as-is.
	ModelAliasLines []string `yaml:"model_alias_lines,omitempty" json:"model_alias_lines,omitempty"`

	UserTimezone string `yaml:"user_timezone,omitempty" json:"user_timezone,omitempty"`
	UserTime     string `yaml:"user_time,omitempty" json:"user_time,omitempty"`

	ContextFiles    []ContextFile `yaml:"context_files,omitempty" json:"context_files,omitempty"`
	HeartbeatPrompt string        `yaml:"heartbeat_prompt,omitempty" json:"heartbeat_prompt,omitempty"`

	RuntimeInfo *RuntimeInfo `yaml:"runtime_info,omitempty" json:"runtime_info,omitempty"`
	SandboxInfo *SandboxInfo `yaml:"sandbox_info,omitempty" json:"sandbox_info,omitempty"`
}
