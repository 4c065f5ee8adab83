package tasks

import (
	"context"
	"fmt"
	"time"
)

// newJournalMaintenanceTask creates the scheduled task that prunes old
// delivery journal rows and compacts the database.
func newJournalMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "journal_maintenance")

	return func(ctx context.Context) error {
		startTime := time.Now()

		retention := time.Duration(deps.Config.Database.RetentionDays) * 24 * time.Hour
		cutoff := time.Now().UTC().Add(-retention)

		removed, err := deps.Store.PruneDeliveries(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("journal pruning failed: %w", err)
		}
		log.InfoContext(ctx, "Pruned delivery journal", "removed", removed, "cutoff", cutoff)

		if err := deps.Store.RunMaintenance(ctx); err != nil {
			return fmt.Errorf("database maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Journal maintenance completed", "duration", time.Since(startTime))
		return nil
	}
}
