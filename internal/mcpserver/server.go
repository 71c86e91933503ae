// Package mcpserver exposes prompt assembly as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kayz/sysprompt/internal/logger"
	"github.com/kayz/sysprompt/internal/promptbuild"
)

const (
	ServerName    = "sysprompt"
	ServerVersion = "0.3.0"
)

// AssembleFunc completes a partial request (config defaults, context files,
// runtime info) and returns the assembled prompt.
type AssembleFunc func(ctx context.Context, req promptbuild.BuildRequest) (string, error)

// Server wraps the MCP server and the assembler it calls.
type Server struct {
	mcpServer *server.MCPServer
	assemble  AssembleFunc
}

// New registers the assembly tools.
func New(assemble AssembleFunc) *Server {
	s := &Server{assemble: assemble}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(mcp.NewTool("assemble_system_prompt",
		mcp.WithDescription("Assemble the agent system prompt for a workspace"),
		mcp.WithString("workspace_dir",
			mcp.Required(),
			mcp.Description("Agent working directory"),
		),
		mcp.WithString("tools",
			mcp.Description("Comma-separated enabled tool names"),
		),
		mcp.WithString("owners",
			mcp.Description("Comma-separated owner identifiers"),
		),
		mcp.WithString("extra_system_prompt",
			mcp.Description("Group chat context text"),
		),
		mcp.WithString("think_level",
			mcp.Description("Default thinking level: off, minimal, low, medium, high"),
		),
		mcp.WithString("user_timezone",
			mcp.Description("User IANA timezone"),
		),
		mcp.WithString("heartbeat_prompt",
			mcp.Description("Heartbeat poll text"),
		),
		mcp.WithString("model",
			mcp.Description("Model identifier for the Runtime line"),
		),
		mcp.WithBoolean("reasoning_tag_hint",
			mcp.Description("Require <think>/<final> reasoning tags"),
		),
	), s.handleAssemble)

	mcpServer.AddTool(mcp.NewTool("list_tools",
		mcp.WithDescription("List the canonical tool catalog with summaries"),
	), s.handleListTools)

	s.mcpServer = mcpServer
	return s
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (s *Server) ServeStdio() error {
	logger.Info("MCP server %s %s listening on stdio", ServerName, ServerVersion)
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) handleAssemble(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.Params.Arguments

	workspace, _ := args["workspace_dir"].(string)
	if strings.TrimSpace(workspace) == "" {
		return mcp.NewToolResultError("workspace_dir is required"), nil
	}

	build := promptbuild.BuildRequest{
		WorkspaceDir:      workspace,
		ToolNames:         splitList(stringArg(args, "tools")),
		OwnerNumbers:      splitList(stringArg(args, "owners")),
		ExtraSystemPrompt: stringArg(args, "extra_system_prompt"),
		DefaultThinkLevel: stringArg(args, "think_level"),
		UserTimezone:      stringArg(args, "user_timezone"),
		HeartbeatPrompt:   stringArg(args, "heartbeat_prompt"),
	}
	if hint, ok := args["reasoning_tag_hint"].(bool); ok {
		build.ReasoningTagHint = hint
	}
	if model := strings.TrimSpace(stringArg(args, "model")); model != "" {
		build.RuntimeInfo = &promptbuild.RuntimeInfo{Model: model}
	}

	prompt, err := s.assemble(ctx, build)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assemble failed: %v", err)), nil
	}
	return mcp.NewToolResultText(prompt), nil
}

func (s *Server) handleListTools(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, tool := range promptbuild.Catalog() {
		fmt.Fprintf(&sb, "%s: %s\n", tool.Name, tool.Summary)
	}
	return mcp.NewToolResultText(strings.TrimRight(sb.String(), "\n")), nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
