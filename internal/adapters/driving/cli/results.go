package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resultsSaveAssets string

var resultsCmd = &cobra.Command{
	Use:   "results [submission-id]",
	Short: "Fetch clustering results for a submission",
	Long: `Fetches the clustering results for a previously clustered submission
id, for example one recorded in the history listing.`,
	Args: cobra.ExactArgs(1),
	RunE: runResults,
}

var codewordsCmd = &cobra.Command{
	Use:   "codewords [submission-id]",
	Short: "Show the approved codeword summary for a submission",
	Args:  cobra.ExactArgs(1),
	RunE:  runCodewords,
}

func init() {
	resultsCmd.Flags().StringVar(&resultsSaveAssets, "save-assets", "", "directory to write result charts to")
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(codewordsCmd)
}

func runResults(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}

	outcome, err := workflowService.LoadResults(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("load results: %w", err)
	}

	cmd.Printf("Submission %s: %d theme(s), %d clustered word(s)\n",
		outcome.SubmissionID, len(outcome.Themes), outcome.WordCount())
	printThemes(cmd, outcome)

	if resultsSaveAssets != "" {
		return saveAssets(cmd, outcome, resultsSaveAssets)
	}
	return nil
}

func runCodewords(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}

	// Loading results binds the workflow to the submission id, after
	// which the codeword summary can be fetched for it.
	if _, err := workflowService.LoadResults(context.Background(), args[0]); err != nil {
		return fmt.Errorf("load submission: %w", err)
	}

	words, err := workflowService.FetchApprovedCodewords(context.Background())
	if err != nil {
		return fmt.Errorf("fetch codewords: %w", err)
	}

	if len(words) == 0 {
		cmd.Println("No approved codewords.")
		return nil
	}
	cmd.Printf("Approved codewords (%d):\n", len(words))
	for _, w := range words {
		cmd.Printf("  %s\n", w)
	}
	return nil
}
