// Package runtimeinfo probes the host for the Runtime line of the prompt.
package runtimeinfo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/kayz/sysprompt/internal/debug"
	"github.com/kayz/sysprompt/internal/promptbuild"
	"github.com/kayz/sysprompt/internal/runtimepath"
)

// DefaultNodeTimeout bounds the node --version call.
const DefaultNodeTimeout = 3 * time.Second

// Prober collects RuntimeInfo. Zero-valued function fields fall back to the
// real host.
type Prober struct {
	HostInfo    func(ctx context.Context) (*host.InfoStat, error)
	NodeVersion func(ctx context.Context, nodePath string) (string, error)
	NodePath    func() (string, bool)
	Arch        string
	NodeTimeout time.Duration
}

// NewProber returns a prober bound to the running host.
func NewProber() *Prober {
	resolver := runtimepath.New()
	return &Prober{
		HostInfo:    host.InfoWithContext,
		NodeVersion: nodeVersion,
		NodePath:    func() (string, bool) { return resolver.ResolvePreferred("node") },
		Arch:        runtime.GOARCH,
		NodeTimeout: DefaultNodeTimeout,
	}
}

// Probe fills host, OS, arch, node version and model. Failed probes leave
// their field empty so the Runtime line omits them.
func (p *Prober) Probe(ctx context.Context, model string) promptbuild.RuntimeInfo {
	info := promptbuild.RuntimeInfo{
		Arch:  p.Arch,
		Model: strings.TrimSpace(model),
	}

	if p.HostInfo != nil {
		if stat, err := p.HostInfo(ctx); err != nil {
			debug.Log("Host info probe failed: %v", err)
		} else if stat != nil {
			info.Host = stat.Hostname
			info.OS = osLabel(stat)
		}
	}

	if p.NodePath != nil && p.NodeVersion != nil {
		if nodePath, ok := p.NodePath(); ok {
			timeout := p.NodeTimeout
			if timeout <= 0 {
				timeout = DefaultNodeTimeout
			}
			nodeCtx, cancel := context.WithTimeout(ctx, timeout)
			version, err := p.NodeVersion(nodeCtx, nodePath)
			cancel()
			if err != nil {
				debug.Log("Node version probe failed for %s: %v", nodePath, err)
			} else {
				info.Node = version
			}
		}
	}
	return info
}

// osLabel prefers the distribution name and falls back to the kernel family.
func osLabel(stat *host.InfoStat) string {
	platform := strings.TrimSpace(stat.Platform)
	if platform == "" {
		return strings.TrimSpace(stat.OS)
	}
	if v := strings.TrimSpace(stat.PlatformVersion); v != "" {
		return platform + " " + v
	}
	return platform
}

func nodeVersion(ctx context.Context, nodePath string) (string, error) {
	cmd := exec.CommandContext(ctx, nodePath, "--version")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("run %s --version: %w (%s)", nodePath, err, strings.TrimSpace(stderr.String()))
	}
	version := strings.TrimSpace(stdout.String())
	if version == "" {
		return "", fmt.Errorf("empty version output from %s", nodePath)
	}
	return version, nil
}

// UserTime formats now in the named IANA zone. It reports false for an empty
// or unknown zone.
func UserTime(tz string, now time.Time) (string, bool) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "", false
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		debug.Log("Unknown timezone %q: %v", tz, err)
		return "", false
	}
	return now.In(loc).Format("Monday, January 2, 2006 15:04"), true
}
