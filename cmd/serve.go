package cmd

import (
	"context"

	"github.com/kayz/sysprompt/internal/mcpserver"
	"github.com/kayz/sysprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve prompt assembly as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newAssembler(cfg)
		s := mcpserver.New(func(ctx context.Context, req promptbuild.BuildRequest) (string, error) {
			out, _, err := a.Assemble(ctx, req)
			return out, err
		})
		return s.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
