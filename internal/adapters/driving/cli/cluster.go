package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	clusterCodesFile  string
	clusterThemes     []string
	clusterSaveAssets string
)

var clusterCmd = &cobra.Command{
	Use:   "cluster [codes...]",
	Short: "Cluster a manually entered code list",
	Long: `Clusters codes you already have, skipping generation and review.
Codes are read from arguments or from --file (one code per line), then
lower-cased and deduplicated before sending. Dropped duplicates are
reported.

Themes are given with repeated --theme flags in label=seeds form.`,
	RunE: runCluster,
}

func init() {
	clusterCmd.Flags().StringVarP(&clusterCodesFile, "file", "f", "", "file with one code per line")
	clusterCmd.Flags().StringArrayVar(&clusterThemes, "theme", nil, "theme as label=seeds (repeatable, max 5)")
	clusterCmd.Flags().StringVar(&clusterSaveAssets, "save-assets", "", "directory to write result charts to")
	rootCmd.AddCommand(clusterCmd)
}

func runCluster(cmd *cobra.Command, args []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}

	codes := append([]string(nil), args...)
	if clusterCodesFile != "" {
		fromFile, err := readCodesFile(clusterCodesFile)
		if err != nil {
			return err
		}
		codes = append(codes, fromFile...)
	}
	codes = dropBlank(codes)
	if len(codes) == 0 {
		return errors.New("no codes given; pass them as arguments or via --file")
	}

	if len(clusterThemes) > 0 {
		if err := applyThemeFlags(clusterThemes); err != nil {
			return err
		}
	}

	ctx := context.Background()
	duplicates, err := workflowService.RunManualClustering(ctx, codes)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	if len(duplicates) > 0 {
		cmd.Printf("Dropped %d duplicate code(s): %s\n", len(duplicates), strings.Join(duplicates, ", "))
	}
	cmd.Printf("Submission %s\n", workflowService.SubmissionID())

	outcome := workflowService.Outcome()
	printThemes(cmd, outcome)

	if clusterSaveAssets != "" {
		return saveAssets(cmd, outcome, clusterSaveAssets)
	}
	return nil
}

func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
