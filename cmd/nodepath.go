package cmd

import (
	"fmt"

	"github.com/kayz/sysprompt/internal/runtimepath"
	"github.com/spf13/cobra"
)

var nodePathCheck string

var nodePathCmd = &cobra.Command{
	Use:   "node-path",
	Short: "Resolve the system node binary, or classify a node path",
	RunE: func(cmd *cobra.Command, args []string) error {
		r := runtimepath.New()

		if nodePathCheck != "" {
			fmt.Printf("path:            %s\n", nodePathCheck)
			fmt.Printf("system:          %t\n", r.IsSystem(nodePathCheck))
			fmt.Printf("version-managed: %t\n", r.IsVersionManaged(nodePathCheck))
			return nil
		}

		path, ok := r.ResolveSystem()
		if !ok {
			return fmt.Errorf("no system node found among %v", r.Candidates())
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	nodePathCmd.Flags().StringVar(&nodePathCheck, "check", "", "Classify this node path instead of resolving")
	rootCmd.AddCommand(nodePathCmd)
}
