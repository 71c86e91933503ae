package cmd

import (
	"fmt"
	"strings"

	"github.com/kayz/sysprompt/internal/audit"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyShow  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List assemblies recorded in the audit database",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := strings.TrimSpace(cfg.Audit.SQLitePath)
		if dbPath == "" {
			return fmt.Errorf("audit.sqlite_path is not configured")
		}
		store, err := audit.OpenSQLite(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if historyShow != "" {
			rec, err := store.Get(cmd.Context(), historyShow)
			if err != nil {
				return err
			}
			fmt.Println(rec.Prompt)
			return nil
		}

		records, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no recorded assemblies")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %s  %s  %s\n",
				rec.ID,
				rec.Timestamp.Local().Format("2006-01-02 15:04:05"),
				rec.RequestDigest[:12],
				rec.WorkspaceDir,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of records to list (0 for all)")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "Print the prompt of one record by id")
	rootCmd.AddCommand(historyCmd)
}
