package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the local submission history",
	RunE:  runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded submissions",
	RunE:  runHistoryList,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [submission-id]",
	Short: "Delete a recorded submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	records, err := historyStore.List(context.Background())
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No submissions recorded.")
		return nil
	}

	for _, rec := range records {
		cmd.Printf("%s  %-14s %-10s entries=%d themes=%d  %s\n",
			rec.ID, rec.Stage, rec.Source, rec.EntryCount, rec.ThemeCount,
			rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	if err := historyStore.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
