// Package cli wires the cobra command tree for themata. Commands talk to
// the workflow through the driving ports only; adapter construction
// happens in cmd/themata.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/meridian-labs/themata/internal/core/ports/driven"
	"github.com/meridian-labs/themata/internal/core/ports/driving"
	"github.com/meridian-labs/themata/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Services used by the commands. Wired once at startup via SetServices.
var (
	workflowService driving.Workflow
	configStore     driven.ConfigStore
	historyStore    driven.SubmissionStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "themata",
	Short: "Thematic analysis of survey feedback",
	Long: `Themata turns free-text survey feedback into themed codeword clusters.

The workflow runs in stages: generate codewords for each feedback entry,
review and approve them, define themes with optional seed words, then
cluster the approved codewords under your themes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices injects the driving-port implementations used by the
// commands. Must be called before Execute.
func SetServices(workflow driving.Workflow, config driven.ConfigStore, history driven.SubmissionStore) {
	workflowService = workflow
	configStore = config
	historyStore = history
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
