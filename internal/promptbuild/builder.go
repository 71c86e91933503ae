package promptbuild

import (
	"strings"
)

// DefaultThinkLevel is used when the request leaves the think level unset.
const DefaultThinkLevel = "off"

// HeartbeatAck is the reply that marks a heartbeat poll as needing no action.
const HeartbeatAck = "HEARTBEAT_OK"

// assembly is the normalized view of a BuildRequest shared by all sections.
type assembly struct {
	req         BuildRequest
	tools       toolSet
	owners      []string
	aliasLines  []string
	extraPrompt string
	timezone    string
	userTime    string
	heartbeat   string
	thinkLevel  string
}

func newAssembly(req BuildRequest) *assembly {
	a := &assembly{
		req:         req,
		tools:       newToolSet(req.ToolNames),
		owners:      nonEmptyTrimmed(req.OwnerNumbers),
		extraPrompt: strings.TrimSpace(req.ExtraSystemPrompt),
		timezone:    strings.TrimSpace(req.UserTimezone),
		userTime:    strings.TrimSpace(req.UserTime),
		heartbeat:   strings.TrimSpace(req.HeartbeatPrompt),
		thinkLevel:  strings.TrimSpace(req.DefaultThinkLevel),
	}
	for _, line := range req.ModelAliasLines {
		if strings.TrimSpace(line) != "" {
			a.aliasLines = append(a.aliasLines, line)
		}
	}
	if a.thinkLevel == "" {
		a.thinkLevel = DefaultThinkLevel
	}
	return a
}

// Build assembles the system prompt for req. It never fails: absent
// optional fields only suppress their sections.
func Build(req BuildRequest) string {
	a := newAssembly(req)

	var blocks []string
	for _, sec := range sections {
		if sec.include != nil && !sec.include(a) {
			continue
		}
		for _, block := range sec.render(a) {
			if text := joinLines(block); text != "" {
				blocks = append(blocks, text)
			}
		}
	}
	return strings.Join(blocks, "\n\n")
}

// IncludedSections returns the ids of the sections Build would emit for req,
// in document order.
func IncludedSections(req BuildRequest) []string {
	a := newAssembly(req)
	ids := make([]string, 0, len(sections))
	for _, sec := range sections {
		if sec.include == nil || sec.include(a) {
			ids = append(ids, sec.id)
		}
	}
	return ids
}

// joinLines drops blank entries and joins the rest with newlines.
func joinLines(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func nonEmptyTrimmed(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// trimBlankLines drops leading and trailing blank lines from untrusted
// content. Everything in between is left untouched.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
