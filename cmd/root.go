package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kayz/sysprompt/internal/config"
	"github.com/kayz/sysprompt/internal/logger"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string

	cfg     *config.Config
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "sysprompt",
	Short: "Assemble agent system prompts",
	Long: `sysprompt assembles the system prompt an agent runtime sends to the model.

Commands:
  sysprompt build      Assemble a prompt from a request file and workspace
  sysprompt serve      Serve assembly over MCP (stdio)
  sysprompt tools      Print the tool catalog
  sysprompt node-path  Resolve the system node binary
  sysprompt init       Write missing workspace bootstrap files
  sysprompt history    List recorded assemblies`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = loaded

		// Flag wins over config
		levelName := cfg.Logging.Level
		if cmd.Flags().Changed("log") || levelName == "" {
			levelName = logLevel
		}
		level, err := logger.ParseLevel(levelName)
		if err != nil {
			return err
		}
		logger.SetLevel(level)

		if file := strings.TrimSpace(cfg.Logging.File); file != "" {
			closer, err := logger.SetFile(file)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			logFile = closer
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info",
		"Log level: trace, debug, info, warn, error, fatal, panic")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: .sysprompt.yaml next to the executable, or $SYSPROMPT_CONFIG)")
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		loaded, err := config.LoadFromPath(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configPath, err)
		}
		return loaded, nil
	}
	loaded, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return loaded, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
