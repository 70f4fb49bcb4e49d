package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one deletion batch",
	Long: `Executes one fetch/filter/delete/persist batch against the remote API.
Progress is checkpointed at the end of the batch; invoke run repeatedly
(e.g. from a scheduler) until the completion signal is emitted.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if purgeRunner == nil {
		return errors.New("purge service not configured")
	}

	// A termination signal cancels in-flight deletions; outcomes
	// collected so far are still checkpointed by the service.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println("Starting deletion batch...")

	report, err := purgeRunner.Run(ctx)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		if errors.Is(err, domain.ErrStateCorrupt) {
			cmd.PrintErrln("Progress state is corrupt; refusing to restart from empty. Inspect or restore the state file before the next run.")
		}
		return fmt.Errorf("run failed: %w", err)
	}

	if report.Complete {
		cmd.Println("COMPLETE: target set is empty, no candidates remain.")
	} else {
		cmd.Printf("Batch done, %d candidates remain. Schedule another run.\n", report.Remaining)
	}
	return nil
}

func printReport(cmd *cobra.Command, r *domain.RunReport) {
	cmd.Printf("Batch #%d (%s)\n", r.BatchNumber, r.RunID)
	cmd.Printf("  Candidates:   %d\n", r.Candidates)
	cmd.Printf("  Attempted:    %d\n", r.Attempted)
	cmd.Printf("  Deleted:      %d\n", r.Deleted)
	cmd.Printf("  Already gone: %d\n", r.AlreadyGone)
	cmd.Printf("  Failed:       %d\n", r.Failed)
	cmd.Printf("  Remaining:    %d\n", r.Remaining)
	cmd.Printf("  Progress:     %.1f%%\n", r.CompletionPercent())
	cmd.Printf("  Duration:     %.1fs\n", r.Duration.Seconds())
}
