package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/kayz/sysprompt/internal/audit"
	"github.com/kayz/sysprompt/internal/contextfiles"
	"github.com/kayz/sysprompt/internal/logger"
	"github.com/kayz/sysprompt/internal/promptbuild"
	"github.com/kayz/sysprompt/internal/watch"
	"github.com/spf13/cobra"
)

var (
	buildRequestPath string
	buildWorkspace   string
	buildOutputPath  string
	buildRecord      bool
	buildWatch       bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Assemble a system prompt from a request file, config and workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildRequestPath == "" && buildWorkspace == "" && cfg.Workspace.Dir == "" {
			return fmt.Errorf("--request or --workspace is required")
		}

		a := newAssembler(cfg)

		var recorder *audit.Recorder
		if buildRecord || cfg.Audit.Enabled {
			auditCfg := cfg.Audit
			auditCfg.Enabled = true
			r, err := audit.NewRecorder(auditCfg, "")
			if err != nil {
				return fmt.Errorf("open audit recorder: %w", err)
			}
			defer r.Close()
			recorder = r
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var mu sync.Mutex
		runOnce := func() error {
			mu.Lock()
			defer mu.Unlock()
			req, err := buildRequest()
			if err != nil {
				return err
			}
			out, completed, err := a.Assemble(ctx, req)
			if err != nil {
				return err
			}
			if err := writeOutput(out); err != nil {
				return err
			}
			if recorder != nil {
				rec := audit.NewRecord(completed, out, time.Now())
				if err := recorder.Record(ctx, rec); err != nil {
					logger.Warn("Record assembly failed: %v", err)
				} else {
					logger.Debug("Recorded assembly %s", rec.ID)
				}
			}
			return nil
		}

		if err := runOnce(); err != nil {
			return err
		}
		if !buildWatch {
			return nil
		}

		req, err := buildRequest()
		if err != nil {
			return err
		}
		applyConfig(cfg, &req)
		paths := contextfiles.Paths(a.contextOptions(req.WorkspaceDir))
		if buildRequestPath != "" {
			paths = append(paths, buildRequestPath)
		}

		watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		logger.Info("Watching %d files for changes", len(paths))
		return watch.Run(watchCtx, paths, watch.DefaultDebounce, func() {
			if err := runOnce(); err != nil {
				logger.Error("Rebuild failed: %v", err)
			}
		})
	},
}

func buildRequest() (promptbuild.BuildRequest, error) {
	var req promptbuild.BuildRequest
	if buildRequestPath != "" {
		loaded, err := promptbuild.LoadRequest(buildRequestPath)
		if err != nil {
			return req, err
		}
		req = loaded
	}
	if buildWorkspace != "" {
		abs, err := filepath.Abs(buildWorkspace)
		if err != nil {
			return req, fmt.Errorf("resolve workspace: %w", err)
		}
		req.WorkspaceDir = abs
	}
	return req, nil
}

func writeOutput(out string) error {
	if buildOutputPath == "" {
		fmt.Println(out)
		return nil
	}
	if err := os.WriteFile(buildOutputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func init() {
	buildCmd.Flags().StringVar(&buildRequestPath, "request", "", "Path to YAML or JSON request file")
	buildCmd.Flags().StringVar(&buildWorkspace, "workspace", "", "Workspace directory (overrides the request)")
	buildCmd.Flags().StringVar(&buildOutputPath, "output", "", "Write output to file (default: stdout)")
	buildCmd.Flags().BoolVar(&buildRecord, "record", false, "Record the assembly to the configured audit sinks")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "Rebuild when the request or context files change")
	rootCmd.AddCommand(buildCmd)
}
