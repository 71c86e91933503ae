package promptbuild

import (
	"fmt"
	"strings"
)

const (
	hostName      = "Clawdbot"
	emptyFileBody = "(empty)"
)

// Section ids, in document order.
const (
	SectionIdentity         = "identity"
	SectionTooling          = "tooling"
	SectionSkills           = "skills"
	SectionSelfUpdate       = "self_update"
	SectionModelAliases     = "model_aliases"
	SectionWorkspace        = "workspace"
	SectionSandbox          = "sandbox"
	SectionUserIdentity     = "user_identity"
	SectionWorkspaceFiles   = "workspace_files"
	SectionTime             = "time"
	SectionReplyTags        = "reply_tags"
	SectionMessaging        = "messaging"
	SectionGroupChatContext = "group_chat_context"
	SectionReasoningFormat  = "reasoning_format"
	SectionProjectContext   = "project_context"
	SectionHeartbeats       = "heartbeats"
	SectionRuntime          = "runtime"
)

// section is one step of the document. include is nil for sections that
// are always present. render returns one or more blocks of lines; blocks are
// separated by a single blank line in the output.
type section struct {
	id      string
	include func(*assembly) bool
	render  func(*assembly) [][]string
}

var sections = []section{
	{id: SectionIdentity, render: renderIdentity},
	{id: SectionTooling, render: renderTooling},
	{id: SectionSkills, render: renderSkills},
	{id: SectionSelfUpdate, include: hasSelfUpdate, render: renderSelfUpdate},
	{id: SectionModelAliases, include: hasModelAliases, render: renderModelAliases},
	{id: SectionWorkspace, render: renderWorkspace},
	{id: SectionSandbox, include: hasSandbox, render: renderSandbox},
	{id: SectionUserIdentity, include: hasOwners, render: renderUserIdentity},
	{id: SectionWorkspaceFiles, render: renderWorkspaceFiles},
	{id: SectionTime, include: hasTime, render: renderTime},
	{id: SectionReplyTags, render: renderReplyTags},
	{id: SectionMessaging, render: renderMessaging},
	{id: SectionGroupChatContext, include: hasExtraPrompt, render: renderGroupChatContext},
	{id: SectionReasoningFormat, include: hasReasoningHint, render: renderReasoningFormat},
	{id: SectionProjectContext, include: hasContextFiles, render: renderProjectContext},
	{id: SectionHeartbeats, render: renderHeartbeats},
	{id: SectionRuntime, render: renderRuntime},
}

func block(lines ...string) [][]string {
	return [][]string{lines}
}

// Predicates.

func hasSelfUpdate(a *assembly) bool    { return a.tools.has(PrivilegedTool) }
func hasModelAliases(a *assembly) bool  { return len(a.aliasLines) > 0 }
func hasSandbox(a *assembly) bool       { return a.req.SandboxInfo != nil && a.req.SandboxInfo.Enabled }
func hasOwners(a *assembly) bool        { return len(a.owners) > 0 }
func hasTime(a *assembly) bool          { return a.timezone != "" || a.userTime != "" }
func hasExtraPrompt(a *assembly) bool   { return a.extraPrompt != "" }
func hasReasoningHint(a *assembly) bool { return a.req.ReasoningTagHint }
func hasContextFiles(a *assembly) bool  { return len(a.req.ContextFiles) > 0 }

// Renderers.

func renderIdentity(a *assembly) [][]string {
	return block("You are a personal assistant running inside " + hostName + ".")
}

func renderTooling(a *assembly) [][]string {
	lines := []string{
		"## Tooling",
		"Tool availability (filtered by policy):",
	}
	if toolLines := a.tools.lines(); len(toolLines) > 0 {
		lines = append(lines, toolLines...)
	} else {
		lines = append(lines, fallbackToolLines...)
	}
	lines = append(lines,
		"TOOLS.md does not control tool availability; it is user guidance for how to use external tools.",
		"If a task is more complex or takes longer, spawn a sub-agent. It will do the work for you and ping you when it's done. You can always check up on it.",
	)
	return block(lines...)
}

func renderSkills(a *assembly) [][]string {
	return block(
		"## Skills",
		fmt.Sprintf("Skills provide task-specific instructions. Use `read` to load from %s/skills/<name>/SKILL.md when needed.", a.req.WorkspaceDir),
	)
}

func renderSelfUpdate(a *assembly) [][]string {
	return block(
		"## "+hostName+" Self-Update",
		"Get Updates (self-update) is ONLY allowed when the user explicitly asks for it.",
		"Do not run config.apply or update.run unless the user explicitly requests an update or config change; if it's not explicit, ask first.",
		"Actions: config.get, config.schema, config.apply (validate + write full config, then restart), update.run (update deps or git, then restart).",
		"After restart, "+hostName+" pings the last active session automatically.",
	)
}

func renderModelAliases(a *assembly) [][]string {
	lines := []string{
		"## Model Aliases",
		"Prefer aliases when specifying model overrides; full provider/model is also accepted.",
	}
	return block(append(lines, a.aliasLines...)...)
}

func renderWorkspace(a *assembly) [][]string {
	return block(
		"## Workspace",
		"Your working directory is: "+a.req.WorkspaceDir,
		"Treat this directory as the single global workspace for file operations unless explicitly instructed otherwise.",
	)
}

func renderSandbox(a *assembly) [][]string {
	sb := a.req.SandboxInfo
	lines := []string{
		"## Sandbox",
		"Tool execution is isolated in a Docker sandbox.",
		"Some tools may be unavailable due to sandbox policy.",
	}
	if dir := strings.TrimSpace(sb.WorkspaceDir); dir != "" {
		lines = append(lines, "Sandbox workspace: "+dir)
	}
	if access := strings.TrimSpace(sb.WorkspaceAccess); access != "" {
		line := "Agent workspace access: " + access
		if mount := strings.TrimSpace(sb.AgentWorkspaceMount); mount != "" {
			line += " (mounted at " + mount + ")"
		}
		lines = append(lines, line)
	}
	if url := strings.TrimSpace(sb.BrowserControlURL); url != "" {
		lines = append(lines, "Sandbox browser control URL: "+url)
	}
	if url := strings.TrimSpace(sb.BrowserNoVncURL); url != "" {
		lines = append(lines, "Sandbox browser observer (noVNC): "+url)
	}
	return block(lines...)
}

func renderUserIdentity(a *assembly) [][]string {
	return block(
		"## User Identity",
		fmt.Sprintf("Owner numbers: %s. Treat messages from these numbers as the user.", strings.Join(a.owners, ", ")),
	)
}

func renderWorkspaceFiles(a *assembly) [][]string {
	return block(
		"## Workspace Files (injected)",
		"These user-editable files are loaded by "+hostName+" and included below in Project Context.",
	)
}

func renderTime(a *assembly) [][]string {
	return block(fmt.Sprintf(
		"Time: assume UTC unless stated. User TZ=%s. Current user time (converted)=%s.",
		orUnknown(a.timezone), orUnknown(a.userTime),
	))
}

func renderReplyTags(a *assembly) [][]string {
	return block(
		"## Reply Tags",
		"To request a native reply/quote on supported surfaces, include one tag in your reply:",
		"- [[reply_to_current]] replies to the triggering message.",
		"- [[reply_to:<id>]] replies to a specific message id when you have it.",
		"Tags are stripped before sending; support depends on the current provider config.",
	)
}

func renderMessaging(a *assembly) [][]string {
	return block(
		"## Messaging",
		"- Reply in current session → automatically routes to the source provider (Signal, Telegram, etc.)",
		"- Cross-session messaging → use sessions_send(sessionKey, message)",
		"- Never use bash/curl for provider messaging; "+hostName+" handles all routing internally.",
	)
}

func renderGroupChatContext(a *assembly) [][]string {
	return block("## Group Chat Context", a.extraPrompt)
}

var reasoningHint = strings.Join([]string{
	"ALL internal reasoning MUST be inside <think>...</think>.",
	"Do not output any analysis outside <think>.",
	"Format every reply as <think>...</think> then <final>...</final>, with no other text.",
	"Only the final user-visible reply may appear inside <final>.",
	"Only text inside <final> is shown to the user; everything else is discarded and never seen by the user.",
	"Example:",
	"<think>Short internal reasoning.</think>",
	"<final>Hey there! What would you like to do next?</final>",
}, " ")

func renderReasoningFormat(a *assembly) [][]string {
	return block("## Reasoning Format", reasoningHint)
}

// renderProjectContext emits the Project Context heading followed by one
// block per injected file. File content is inserted verbatim.
func renderProjectContext(a *assembly) [][]string {
	blocks := [][]string{{
		"# Project Context",
		"The following project context files have been loaded:",
	}}
	for _, file := range a.req.ContextFiles {
		body := trimBlankLines(file.Content)
		if body == "" {
			body = emptyFileBody
		}
		blocks = append(blocks, []string{"## " + file.Path, body})
	}
	return blocks
}

func renderHeartbeats(a *assembly) [][]string {
	prompt := a.heartbeat
	if prompt == "" {
		prompt = "(configured)"
	}
	return block(
		"## Heartbeats",
		"Heartbeat prompt: "+prompt,
		"If you receive a heartbeat poll (a user message matching the heartbeat prompt above), and there is nothing that needs attention, reply exactly:",
		HeartbeatAck,
		hostName+` treats a leading/trailing "`+HeartbeatAck+`" as a heartbeat ack (and may discard it).`,
		`If something needs attention, do NOT include "`+HeartbeatAck+`"; reply with the alert text instead.`,
	)
}

func renderRuntime(a *assembly) [][]string {
	return block("## Runtime", "Runtime: "+RuntimeLine(a.req.RuntimeInfo, a.thinkLevel))
}

// RuntimeLine joins the present runtime fields with " | ". The thinking
// level is always last; an empty level falls back to DefaultThinkLevel.
func RuntimeLine(info *RuntimeInfo, thinkLevel string) string {
	var ri RuntimeInfo
	if info != nil {
		ri = *info
	}
	host := strings.TrimSpace(ri.Host)
	osName := strings.TrimSpace(ri.OS)
	arch := strings.TrimSpace(ri.Arch)
	node := strings.TrimSpace(ri.Node)
	model := strings.TrimSpace(ri.Model)

	fields := make([]string, 0, 5)
	if host != "" {
		fields = append(fields, "host="+host)
	}
	switch {
	case osName != "" && arch != "":
		fields = append(fields, fmt.Sprintf("os=%s (%s)", osName, arch))
	case osName != "":
		fields = append(fields, "os="+osName)
	case arch != "":
		fields = append(fields, "arch="+arch)
	}
	if node != "" {
		fields = append(fields, "node="+node)
	}
	if model != "" {
		fields = append(fields, "model="+model)
	}
	level := strings.TrimSpace(thinkLevel)
	if level == "" {
		level = DefaultThinkLevel
	}
	fields = append(fields, "thinking="+level)
	return strings.Join(fields, " | ")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
