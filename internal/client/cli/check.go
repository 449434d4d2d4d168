package cli

import (
	"context"
	"strings"
)

// Check runs a reconcile pass and prints what it repaired.
func (a *App) Check(ctx context.Context, _ []string) error {
	r := a.store.Reconcile(ctx)
	if err := report(a, r); err != nil {
		return err
	}

	rep := r.Data
	if rep.Clean() {
		a.println("Store is consistent.")
		return nil
	}
	if len(rep.DroppedIndexIDs) > 0 {
		a.println("Dropped from index:", strings.Join(rep.DroppedIndexIDs, ", "))
	}
	if len(rep.ReindexedSimIDs) > 0 {
		a.println("Restored to index:", strings.Join(rep.ReindexedSimIDs, ", "))
	}
	if len(rep.RemovedSimIDs) > 0 {
		a.println("Removed unreadable sims:", strings.Join(rep.RemovedSimIDs, ", "))
	}
	if len(rep.RemovedMetadataIDs) > 0 {
		a.println("Removed orphaned metadata of:", strings.Join(rep.RemovedMetadataIDs, ", "))
	}
	return nil
}
