package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show persisted deletion progress",
	Long: `Prints the persisted progress record without contacting the remote
API: processed count, totals, batch number and the remaining estimate
from the last run.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if progressStore == nil {
		return errors.New("progress store not configured")
	}

	progress, err := progressStore.Load(context.Background())
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No progress recorded yet; no run has completed.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	cmd.Printf("Batches run:      %d\n", progress.BatchNumber)
	cmd.Printf("Notes processed:  %d\n", progress.ProcessedCount())
	cmd.Printf("Total deleted:    %d\n", progress.TotalDeleted)
	cmd.Printf("Total failed:     %d\n", progress.TotalFailed)
	cmd.Printf("Remaining (est):  %d\n", progress.RemainingEstimate)
	if !progress.LastRunAt.IsZero() {
		cmd.Printf("Last run:         %s\n", progress.LastRunAt.Format("2006-01-02 15:04:05"))
	}
	if progress.RemainingEstimate == 0 && progress.BatchNumber > 0 {
		cmd.Println("Target set is empty.")
	}
	return nil
}
