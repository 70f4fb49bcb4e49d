// Package cli implements the driving CLI adapter using cobra.
// Commands reach the core through package-level ports injected by the
// composition root in cmd/notesweep.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gcs-ops/notesweep/internal/core/ports/driven"
	"github.com/gcs-ops/notesweep/internal/core/ports/driving"
	"github.com/gcs-ops/notesweep/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services.
var (
	purgeRunner   driving.PurgeRunner
	progressStore driven.ProgressStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "notesweep",
	Short: "Incrementally delete targeted CRM notes",
	Long: `notesweep deletes the deal notes of one CRM user through the
rate-limited ActiveCampaign API, a batch per invocation, checkpointing
progress so repeated runs converge without re-deleting or skipping
notes.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the core ports used by the commands.
func SetServices(runner driving.PurgeRunner, store driven.ProgressStore) {
	purgeRunner = runner
	progressStore = store
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
