package mcpserver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kayz/sysprompt/internal/promptbuild"
)

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("expected tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleAssembleBuildsRequest(t *testing.T) {
	var got promptbuild.BuildRequest
	s := New(func(_ context.Context, req promptbuild.BuildRequest) (string, error) {
		got = req
		return promptbuild.Build(req), nil
	})

	result, err := s.handleAssemble(context.Background(), callRequest(map[string]interface{}{
		"workspace_dir":      "/home/x",
		"tools":              "read, bash,,unknown_tool",
		"owners":             "+1, +2",
		"think_level":        "low",
		"model":              "anthropic/claude",
		"reasoning_tag_hint": true,
	}))
	if err != nil {
		t.Fatalf("handleAssemble: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	if strings.Join(got.ToolNames, ",") != "read,bash,unknown_tool" {
		t.Fatalf("unexpected tools: %v", got.ToolNames)
	}
	if len(got.OwnerNumbers) != 2 || got.DefaultThinkLevel != "low" || !got.ReasoningTagHint {
		t.Fatalf("unexpected request: %#v", got)
	}
	if got.RuntimeInfo == nil || got.RuntimeInfo.Model != "anthropic/claude" {
		t.Fatalf("expected model in runtime info, got %#v", got.RuntimeInfo)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Your working directory is: /home/x") {
		t.Fatalf("expected assembled prompt, got %q", text)
	}
}

func TestHandleAssembleRequiresWorkspace(t *testing.T) {
	s := New(func(context.Context, promptbuild.BuildRequest) (string, error) {
		t.Fatalf("assembler should not be called")
		return "", nil
	})
	result, err := s.handleAssemble(context.Background(), callRequest(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handleAssemble: %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected error result")
	}
}

func TestHandleAssembleReportsAssemblerError(t *testing.T) {
	s := New(func(context.Context, promptbuild.BuildRequest) (string, error) {
		return "", errors.New("bad think level")
	})
	result, err := s.handleAssemble(context.Background(), callRequest(map[string]interface{}{"workspace_dir": "/w"}))
	if err != nil {
		t.Fatalf("handleAssemble: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "bad think level") {
		t.Fatalf("expected assembler error surfaced")
	}
}

func TestHandleListTools(t *testing.T) {
	s := New(nil)
	result, err := s.handleListTools(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handleListTools: %v", err)
	}
	lines := strings.Split(resultText(t, result), "\n")
	if len(lines) != len(promptbuild.Catalog()) {
		t.Fatalf("expected %d lines, got %d", len(promptbuild.Catalog()), len(lines))
	}
	if !strings.HasPrefix(lines[0], "read: ") {
		t.Fatalf("expected catalog order starting with read, got %q", lines[0])
	}
}
