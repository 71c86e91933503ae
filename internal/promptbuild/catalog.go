package promptbuild

// ToolDescriptor is a known tool id with its one-line summary.
type ToolDescriptor struct {
	Name    string
	Summary string
}

// PrivilegedTool gates the self-update section.
const PrivilegedTool = "gateway"

// toolCatalog is the canonical tool order. Never mutated.
var toolCatalog = [...]ToolDescriptor{
	{"read", "Read file contents"},
	{"write", "Create or overwrite files"},
	{"edit", "Make precise edits to files"},
	{"grep", "Search file contents for patterns"},
	{"find", "Find files by glob pattern"},
	{"ls", "List directory contents"},
	{"bash", "Run shell commands"},
	{"process", "Manage background bash sessions"},
	{"whatsapp_login", "Generate and wait for WhatsApp QR login"},
	{"browser", "Control web browser"},
	{"canvas", "Present/eval/snapshot the Canvas"},
	{"nodes", "List/describe/notify/camera/screen on paired nodes"},
	{"cron", "Manage cron jobs and wake events"},
	{PrivilegedTool, "Restart, apply config, or run updates on the running Clawdbot process"},
	{"agents_list", "List agent ids allowed for sessions_spawn"},
	{"sessions_list", "List other sessions (incl. sub-agents) with filters/last"},
	{"sessions_history", "Fetch history for another session/sub-agent"},
	{"sessions_send", "Send a message to another session/sub-agent"},
	{"image", "Analyze an image with the configured image model"},
	{"discord", "Send Discord reactions/messages and manage threads"},
	{"slack", "Send Slack messages and manage channels"},
	{"telegram", "Send Telegram reactions"},
	{"whatsapp", "Send WhatsApp reactions"},
}

// detachedSummaries are registered summaries for tools that are not part of
// the canonical order. Such tools still render as bare extra lines.
var detachedSummaries = map[string]string{
	"sessions_spawn": "Spawn a sub-agent session",
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(toolCatalog))
	for i, tool := range toolCatalog {
		idx[tool.Name] = i
	}
	return idx
}()

// fallbackToolLines is rendered when no tool list was supplied at all.
var fallbackToolLines = []string{
	"Pi lists the standard tools above. This runtime enables:",
	"- grep: search file contents for patterns",
	"- find: find files by glob pattern",
	"- ls: list directory contents",
	"- bash: run shell commands (supports background via yieldMs/background)",
	"- process: manage background bash sessions",
	"- whatsapp_login: generate a WhatsApp QR code and wait for linking",
	"- browser: control clawd's dedicated browser",
	"- canvas: present/eval/snapshot the Canvas",
	"- nodes: list/describe/notify/camera/screen on paired nodes",
	"- cron: manage cron jobs and wake events",
	"- sessions_list: list sessions",
	"- sessions_history: fetch session history",
	"- sessions_send: send to another session",
}

// Catalog returns a copy of the canonical tool catalog in order.
func Catalog() []ToolDescriptor {
	out := make([]ToolDescriptor, len(toolCatalog))
	copy(out, toolCatalog[:])
	return out
}

// IsCanonicalTool reports whether name is part of the canonical order.
func IsCanonicalTool(name string) bool {
	_, ok := catalogIndex[name]
	return ok
}

// ToolSummary returns the registered summary for a normalized tool id.
func ToolSummary(name string) (string, bool) {
	if i, ok := catalogIndex[name]; ok {
		return toolCatalog[i].Summary, true
	}
	summary, ok := detachedSummaries[name]
	return summary, ok
}
