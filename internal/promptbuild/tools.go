package promptbuild

import (
	"sort"
	"strings"
)

// toolSet is the normalized, deduplicated set of enabled tool ids.
type toolSet map[string]struct{}

func newToolSet(names []string) toolSet {
	set := make(toolSet, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

func (s toolSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// lines renders canonical tools in catalog order, then unknown ids sorted.
func (s toolSet) lines() []string {
	out := make([]string, 0, len(s))
	for _, tool := range toolCatalog {
		if !s.has(tool.Name) {
			continue
		}
		if tool.Summary != "" {
			out = append(out, "- "+tool.Name+": "+tool.Summary)
		} else {
			out = append(out, "- "+tool.Name)
		}
	}

	extras := make([]string, 0, len(s))
	for name := range s {
		if !IsCanonicalTool(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		out = append(out, "- "+name)
	}
	return out
}

// ToolLines returns the tool list lines for the given enabled tool names,
// or nil when none are enabled.
func ToolLines(names []string) []string {
	set := newToolSet(names)
	if len(set) == 0 {
		return nil
	}
	return set.lines()
}
