// Package runtimepath classifies node binaries as system-installed or
// version-manager-installed and resolves a system node for services.
package runtimepath

import (
	"os"
	"path"
	"runtime"
	"strings"
)

var versionManagerMarkers = []string{
	"/.nvm/",
	"/.fnm/",
	"/.volta/",
	"/.asdf/",
	"/.n/",
	"/.nodenv/",
	"/.nodebrew/",
	"/nvs/",
}

// Env is a snapshot of the environment variables the resolver reads.
type Env map[string]string

// ProcessEnv captures the current process environment.
func ProcessEnv() Env {
	env := make(Env)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

func (e Env) getOr(key, fallback string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return fallback
}

// Resolver looks up system node binaries for one platform.
type Resolver struct {
	GOOS string
	Env  Env
	// Exists reports whether a candidate binary is present.
	Exists func(path string) bool
}

// New returns a resolver for the running platform and environment.
func New() *Resolver {
	return &Resolver{GOOS: runtime.GOOS, Env: ProcessEnv(), Exists: fileExists}
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// Candidates lists the well-known system node locations in preference order.
func (r *Resolver) Candidates() []string {
	switch r.GOOS {
	case "darwin":
		return []string{"/opt/homebrew/bin/node", "/usr/local/bin/node", "/usr/bin/node"}
	case "linux":
		return []string{"/usr/local/bin/node", "/usr/bin/node"}
	case "windows":
		programFiles := r.Env.getOr("ProgramFiles", `C:\Program Files`)
		programFilesX86 := r.Env.getOr("ProgramFiles(x86)", `C:\Program Files (x86)`)
		return []string{
			windowsJoin(programFiles, "nodejs", "node.exe"),
			windowsJoin(programFilesX86, "nodejs", "node.exe"),
		}
	default:
		return nil
	}
}

// IsVersionManaged reports whether nodePath lives under a node version
// manager such as nvm, fnm or volta.
func (r *Resolver) IsVersionManaged(nodePath string) bool {
	normalized := r.normalize(nodePath)
	for _, marker := range versionManagerMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

// IsSystem reports whether nodePath is one of the platform's system
// candidates.
func (r *Resolver) IsSystem(nodePath string) bool {
	normalized := r.normalize(nodePath)
	for _, candidate := range r.Candidates() {
		if normalized == r.normalize(candidate) {
			return true
		}
	}
	return false
}

// ResolveSystem returns the first candidate that exists.
func (r *Resolver) ResolveSystem() (string, bool) {
	exists := r.Exists
	if exists == nil {
		exists = fileExists
	}
	for _, candidate := range r.Candidates() {
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// ResolvePreferred returns a system node path when runtimeName is "node".
// Other runtimes keep whatever binary they were launched with.
func (r *Resolver) ResolvePreferred(runtimeName string) (string, bool) {
	if runtimeName != "node" {
		return "", false
	}
	return r.ResolveSystem()
}

// normalize cleans the path and switches to forward slashes. Windows paths
// compare case-insensitively.
func (r *Resolver) normalize(p string) string {
	if r.GOOS == "windows" {
		p = strings.ReplaceAll(p, `\`, "/")
	}
	p = path.Clean(p)
	if r.GOOS == "windows" {
		return strings.ToLower(p)
	}
	return p
}

func windowsJoin(base string, elems ...string) string {
	out := strings.TrimRight(base, `\/`)
	for _, e := range elems {
		out += `\` + e
	}
	return out
}
