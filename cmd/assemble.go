package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kayz/sysprompt/internal/config"
	"github.com/kayz/sysprompt/internal/contextfiles"
	"github.com/kayz/sysprompt/internal/promptbuild"
	"github.com/kayz/sysprompt/internal/runtimeinfo"
)

// assembler completes partial requests from config and the host before
// handing them to the pure builder.
type assembler struct {
	cfg    *config.Config
	prober *runtimeinfo.Prober
	now    func() time.Time
}

func newAssembler(c *config.Config) *assembler {
	return &assembler{cfg: c, prober: runtimeinfo.NewProber(), now: time.Now}
}

// Assemble returns the prompt and the completed request it was built from.
func (a *assembler) Assemble(ctx context.Context, req promptbuild.BuildRequest) (string, promptbuild.BuildRequest, error) {
	applyConfig(a.cfg, &req)

	if len(req.ContextFiles) == 0 {
		files, err := contextfiles.Load(a.contextOptions(req.WorkspaceDir))
		if err != nil {
			return "", req, fmt.Errorf("load context files: %w", err)
		}
		req.ContextFiles = files
	}

	if req.RuntimeInfo == nil && a.cfg.Agent.ProbeRuntime && a.prober != nil {
		info := a.prober.Probe(ctx, a.cfg.Agent.Model)
		req.RuntimeInfo = &info
	} else if req.RuntimeInfo != nil && req.RuntimeInfo.Model == "" {
		req.RuntimeInfo.Model = a.cfg.Agent.Model
	}

	if req.UserTime == "" && req.UserTimezone != "" {
		if userTime, ok := runtimeinfo.UserTime(req.UserTimezone, a.now()); ok {
			req.UserTime = userTime
		}
	}

	if err := promptbuild.ValidateRequest(req); err != nil {
		return "", req, fmt.Errorf("invalid request: %w", err)
	}
	return promptbuild.Build(req), req, nil
}

func (a *assembler) contextOptions(workspaceDir string) contextfiles.Options {
	return contextfiles.Options{
		WorkspaceDir:     workspaceDir,
		ExtraPaths:       a.cfg.Workspace.ContextFiles,
		AllowedPaths:     a.cfg.Workspace.AllowedPaths,
		SkipBootstrap:    a.cfg.Workspace.SkipBootstrap,
		StripFrontmatter: a.cfg.Workspace.StripFrontmatter,
		MaxChars:         a.cfg.Workspace.MaxFileChars,
	}
}

// applyConfig fills fields the request leaves unset from config defaults.
func applyConfig(c *config.Config, req *promptbuild.BuildRequest) {
	if strings.TrimSpace(req.WorkspaceDir) == "" {
		req.WorkspaceDir = c.Workspace.Dir
	}
	if req.DefaultThinkLevel == "" {
		req.DefaultThinkLevel = c.Agent.ThinkLevel
	}
	if len(req.OwnerNumbers) == 0 {
		req.OwnerNumbers = c.Agent.Owners
	}
	if len(req.ToolNames) == 0 {
		req.ToolNames = c.Agent.Tools
	}
	if len(req.ModelAliasLines) == 0 {
		req.ModelAliasLines = c.Agent.ModelAliases
	}
	if req.UserTimezone == "" {
		req.UserTimezone = c.Agent.Timezone
	}
	if req.HeartbeatPrompt == "" {
		req.HeartbeatPrompt = c.Agent.HeartbeatPrompt
	}
	if !req.ReasoningTagHint {
		req.ReasoningTagHint = c.Agent.ReasoningTagHint
	}
	if req.SandboxInfo == nil && c.Sandbox.Enabled {
		req.SandboxInfo = &promptbuild.SandboxInfo{
			Enabled:             true,
			WorkspaceDir:        c.Sandbox.WorkspaceDir,
			WorkspaceAccess:     c.Sandbox.WorkspaceAccess,
			AgentWorkspaceMount: c.Sandbox.AgentWorkspaceMount,
			BrowserControlURL:   c.Sandbox.BrowserControlURL,
			BrowserNoVncURL:     c.Sandbox.BrowserNoVncURL,
		}
	}
}
