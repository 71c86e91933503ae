package promptbuild

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ThinkLevels lists the accepted values for DefaultThinkLevel.
var ThinkLevels = []string{"off", "minimal", "low", "medium", "high"}

// LoadRequest reads a BuildRequest from a YAML or JSON file.
func LoadRequest(path string) (BuildRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BuildRequest{}, fmt.Errorf("read request %s: %w", path, err)
	}
	req, err := ParseRequest(data)
	if err != nil {
		return BuildRequest{}, fmt.Errorf("parse request %s: %w", path, err)
	}
	return req, nil
}

// ParseRequest decodes a YAML or JSON document into a BuildRequest.
func ParseRequest(data []byte) (BuildRequest, error) {
	var req BuildRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return BuildRequest{}, err
	}
	return req, nil
}

// ValidateRequest checks the fields a caller can get wrong at the boundary.
// Build itself accepts any request; validation belongs to loaders.
func ValidateRequest(req BuildRequest) error {
	if strings.TrimSpace(req.WorkspaceDir) == "" {
		return fmt.Errorf("workspace_dir is required")
	}

	if level := strings.TrimSpace(req.DefaultThinkLevel); level != "" && !isThinkLevel(level) {
		return fmt.Errorf("default_think_level %q must be one of %s", level, strings.Join(ThinkLevels, ", "))
	}

	if sb := req.SandboxInfo; sb != nil {
		switch strings.TrimSpace(sb.WorkspaceAccess) {
		case "", AccessNone, AccessReadOnly, AccessReadWrite:
		default:
			return fmt.Errorf("sandbox_info.workspace_access %q must be one of none, ro, rw", sb.WorkspaceAccess)
		}
	}

	for i, file := range req.ContextFiles {
		if strings.TrimSpace(file.Path) == "" {
			return fmt.Errorf("context_files[%d] path is required", i)
		}
	}
	return nil
}

func isThinkLevel(level string) bool {
	for _, l := range ThinkLevels {
		if l == level {
			return true
		}
	}
	return false
}
