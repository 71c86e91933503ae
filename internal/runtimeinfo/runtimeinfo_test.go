package runtimeinfo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v4/host"
)

func TestProbeFillsAllFields(t *testing.T) {
	p := &Prober{
		HostInfo: func(context.Context) (*host.InfoStat, error) {
			return &host.InfoStat{Hostname: "box", OS: "linux", Platform: "ubuntu", PlatformVersion: "24.04"}, nil
		},
		NodePath: func() (string, bool) { return "/usr/bin/node", true },
		NodeVersion: func(ctx context.Context, path string) (string, error) {
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("expected node probe to run under a deadline")
			}
			if path != "/usr/bin/node" {
				t.Fatalf("unexpected node path %q", path)
			}
			return "v22.3.0", nil
		},
		Arch: "arm64",
	}

	info := p.Probe(context.Background(), " anthropic/claude ")
	if info.Host != "box" || info.OS != "ubuntu 24.04" || info.Arch != "arm64" {
		t.Fatalf("unexpected host fields: %#v", info)
	}
	if info.Node != "v22.3.0" || info.Model != "anthropic/claude" {
		t.Fatalf("unexpected node/model: %#v", info)
	}
}

func TestProbeLeavesFailedFieldsEmpty(t *testing.T) {
	p := &Prober{
		HostInfo: func(context.Context) (*host.InfoStat, error) {
			return nil, errors.New("no host")
		},
		NodePath: func() (string, bool) { return "", false },
		NodeVersion: func(context.Context, string) (string, error) {
			t.Fatalf("node version should not run without a node path")
			return "", nil
		},
		Arch: "amd64",
	}

	info := p.Probe(context.Background(), "")
	if info.Host != "" || info.OS != "" || info.Node != "" || info.Model != "" {
		t.Fatalf("expected empty fields, got %#v", info)
	}
	if info.Arch != "amd64" {
		t.Fatalf("expected arch to survive, got %q", info.Arch)
	}
}

func TestOSLabelFallsBackToKernel(t *testing.T) {
	if got := osLabel(&host.InfoStat{OS: "darwin"}); got != "darwin" {
		t.Fatalf("osLabel() = %q", got)
	}
	if got := osLabel(&host.InfoStat{OS: "linux", Platform: "arch"}); got != "arch" {
		t.Fatalf("osLabel() = %q", got)
	}
}

func TestUserTime(t *testing.T) {
	now := time.Date(2026, 1, 5, 12, 30, 0, 0, time.UTC)

	got, ok := UserTime("UTC", now)
	if !ok || got != "Monday, January 5, 2026 12:30" {
		t.Fatalf("UserTime(UTC) = %q, %v", got, ok)
	}
	if _, ok := UserTime("", now); ok {
		t.Fatalf("expected empty zone to be rejected")
	}
	if _, ok := UserTime("Not/AZone", now); ok {
		t.Fatalf("expected unknown zone to be rejected")
	}
}
