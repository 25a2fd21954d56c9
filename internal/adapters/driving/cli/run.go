package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meridian-labs/themata/internal/adapters/driving/tui"
)

var (
	runInput   string
	runColumn  string
	runContext string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch the interactive workflow UI",
	Long: `Launch the interactive terminal interface for the full workflow:
review generated codewords entry by entry, define themes and seed words,
then cluster and browse the results.

Review controls:
  ↑/k, ↓/j - Navigate entries
  a        - Approve entry      A - Approve all
  x        - Remove codeword    r - Regenerate entry
  Enter    - Continue to themes when all approved
  q        - Quit`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "feedback file (.csv or one entry per line)")
	runCmd.Flags().StringVar(&runColumn, "column", "", "CSV column holding the feedback texts (default: feedback)")
	runCmd.Flags().StringVar(&runContext, "context", "", "optional context note passed to generation")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	// Stack traces beat a garbled alternate screen when a view panics
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if workflowService == nil {
		return errors.New("workflow service not configured")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("not a terminal; use 'themata code --approve-all' for scripted runs")
	}

	feedback, err := readFeedbackFile(runInput, runColumn)
	if err != nil {
		return err
	}

	app := tui.NewApp(workflowService, feedback, runContext)
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}
