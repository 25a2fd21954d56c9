package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridian-labs/themata/internal/logger"
)

var (
	codeInput      string
	codeColumn     string
	codeContext    string
	codeApproveAll bool
	codeThemes     []string
	codeSaveAssets string
)

var codeCmd = &cobra.Command{
	Use:   "code",
	Short: "Run the coding workflow without the interactive UI",
	Long: `Generates codewords for a feedback file and runs the full workflow
non-interactively. Because there is no review step, --approve-all is
required: every generated codeword set is committed as-is.

Themes are given with repeated --theme flags in label=seeds form, where
seeds is an optional comma-separated seed-word list:

  themata code --input survey.csv --approve-all \
    --theme "engagement=fun, interactive" \
    --theme "pacing"`,
	RunE: runCode,
}

func init() {
	codeCmd.Flags().StringVarP(&codeInput, "input", "i", "", "feedback file (.csv or one entry per line)")
	codeCmd.Flags().StringVar(&codeColumn, "column", "", "CSV column holding the feedback texts (default: feedback)")
	codeCmd.Flags().StringVar(&codeContext, "context", "", "optional context note passed to generation")
	codeCmd.Flags().BoolVar(&codeApproveAll, "approve-all", false, "approve every generated codeword set without review")
	codeCmd.Flags().StringArrayVar(&codeThemes, "theme", nil, "theme as label=seeds (repeatable, max 5)")
	codeCmd.Flags().StringVar(&codeSaveAssets, "save-assets", "", "directory to write result charts to")
	_ = codeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(codeCmd)
}

func runCode(cmd *cobra.Command, _ []string) error {
	if workflowService == nil {
		return errors.New("workflow service not configured")
	}
	if !codeApproveAll {
		return errors.New("non-interactive coding requires --approve-all; use 'themata run' to review codewords")
	}
	if len(codeThemes) == 0 {
		return errors.New("at least one --theme is required")
	}

	feedback, err := readFeedbackFile(codeInput, codeColumn)
	if err != nil {
		return err
	}

	ctx := context.Background()

	logger.Section("Generation")
	if err := workflowService.StartGeneration(ctx, feedback, codeContext); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	ledger := workflowService.Ledger()
	entries := ledger.Entries()
	cmd.Printf("Generated codewords for %d entries (submission %s)\n", len(entries), workflowService.SubmissionID())

	logger.Section("Approval")
	ledger.ApproveAll()
	if err := workflowService.AdvanceToThemes(ctx); err != nil {
		return fmt.Errorf("approval commit failed: %w", err)
	}

	if err := applyThemeFlags(codeThemes); err != nil {
		return err
	}

	logger.Section("Clustering")
	if err := workflowService.RunClustering(ctx); err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	outcome := workflowService.Outcome()
	printThemes(cmd, outcome)

	if codeSaveAssets != "" {
		return saveAssets(cmd, outcome, codeSaveAssets)
	}
	return nil
}

// applyThemeFlags loads label=seeds pairs into the editor. The editor
// starts with one empty row, so the first flag fills it and the rest add
// rows up to the cap.
func applyThemeFlags(flags []string) error {
	editor := workflowService.Editor()

	for i, raw := range flags {
		label, seeds, _ := strings.Cut(raw, "=")
		label = strings.TrimSpace(label)
		if label == "" {
			return fmt.Errorf("theme %d: empty label", i+1)
		}

		if i > 0 && !editor.AddRow() {
			return fmt.Errorf("too many themes: at most %d", len(editor.Rows()))
		}
		editor.UpdateTheme(i, label)
		editor.UpdateSeeds(i, strings.TrimSpace(seeds))
	}
	return nil
}
