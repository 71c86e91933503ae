package cmd

import (
	"fmt"
	"strings"

	"github.com/kayz/sysprompt/internal/promptbuild"
	"github.com/spf13/cobra"
)

var toolsEnabled string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog, or the Tooling lines for an enabled set",
	Run: func(cmd *cobra.Command, args []string) {
		if toolsEnabled == "" {
			for _, tool := range promptbuild.Catalog() {
				marker := ""
				if tool.Name == promptbuild.PrivilegedTool {
					marker = " (owner only)"
				}
				fmt.Printf("%-16s %s%s\n", tool.Name, tool.Summary, marker)
			}
			return
		}

		lines := promptbuild.ToolLines(strings.Split(toolsEnabled, ","))
		if len(lines) == 0 {
			fmt.Println("(no tools enabled)")
			return
		}
		fmt.Println(strings.Join(lines, "\n"))
	},
}

func init() {
	toolsCmd.Flags().StringVar(&toolsEnabled, "enabled", "", "Comma-separated enabled tool names")
	rootCmd.AddCommand(toolsCmd)
}
