package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kayz/sysprompt/internal/config"
	"github.com/kayz/sysprompt/internal/contextfiles"
	"github.com/kayz/sysprompt/internal/logger"
	"github.com/spf13/cobra"
)

var (
	initWorkspace   string
	initWriteConfig bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write missing workspace bootstrap files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := initWorkspace
		if dir == "" {
			dir = cfg.Workspace.Dir
		}
		if dir == "" {
			return fmt.Errorf("--workspace is required")
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve workspace: %w", err)
		}

		created, err := contextfiles.Ensure(abs)
		for _, name := range created {
			fmt.Printf("created %s\n", filepath.Join(abs, name))
		}
		if err != nil {
			return err
		}
		if len(created) == 0 {
			fmt.Println("workspace already initialized")
		}

		if initWriteConfig {
			path := configPath
			if path == "" {
				path = config.ConfigPath()
			}
			if _, err := os.Stat(path); err == nil {
				logger.Info("Config already exists at %s", path)
				return nil
			}
			cfg.Workspace.Dir = abs
			if err := cfg.SaveTo(path); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Printf("wrote config %s\n", path)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initWorkspace, "workspace", "", "Workspace directory to initialize")
	initCmd.Flags().BoolVar(&initWriteConfig, "write-config", false, "Also write a config file pointing at the workspace")
	rootCmd.AddCommand(initCmd)
}
