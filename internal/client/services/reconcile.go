package services

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
)

// ReconcileReport lists what a Reconcile pass repaired.
type ReconcileReport struct {
	// DroppedIndexIDs were listed in the index without a readable Sim.
	DroppedIndexIDs []string `json:"droppedIndexIds"`
	// ReindexedSimIDs had a readable Sim but were missing from the index.
	ReindexedSimIDs []string `json:"reindexedSimIds"`
	// RemovedSimIDs had a stored Sim key whose record could not be decoded.
	RemovedSimIDs []string `json:"removedSimIds"`
	// RemovedMetadataIDs are entity ids whose metadata outlived the Sim.
	RemovedMetadataIDs []string `json:"removedMetadataIds"`
}

// Clean reports whether nothing had to be repaired.
func (r ReconcileReport) Clean() bool {
	return len(r.DroppedIndexIDs) == 0 && len(r.ReindexedSimIDs) == 0 &&
		len(r.RemovedSimIDs) == 0 && len(r.RemovedMetadataIDs) == 0
}

// Reconcile brings the index and the stored keys back in line after an
// operation stopped half way or the index itself was lost. Index entries
// without a Sim are dropped. Readable Sims missing from the index are added
// back in creation order; Sim keys that cannot be decoded are removed.
// Metadata lists whose Sim is still absent afterwards are removed.
func (s *store) Reconcile(ctx context.Context) (res Result[ReconcileReport]) {
	defer guard(ctx, s, msgReconcileFailed, &res)

	report := ReconcileReport{
		DroppedIndexIDs:    []string{},
		ReindexedSimIDs:    []string{},
		RemovedSimIDs:      []string{},
		RemovedMetadataIDs: []string{},
	}

	ids := s.index.IDs()
	keep := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.loadSim(ctx, id) != nil && !slices.Contains(keep, id) {
			keep = append(keep, id)
			continue
		}
		report.DroppedIndexIDs = append(report.DroppedIndexIDs, id)
	}
	if len(report.DroppedIndexIDs) > 0 {
		if err := s.index.Replace(ctx, keep); err != nil {
			return fail[ReconcileReport](s.internal(ctx, msgReconcileFailed, err))
		}
	}

	simIDs, err := s.sims.PersistedIDs(ctx)
	if err != nil {
		return fail[ReconcileReport](s.internal(ctx, msgReconcileFailed, err))
	}
	var unindexed []*models.Sim
	for _, id := range simIDs {
		if s.index.Contains(id) || isIndexKey(s, id) {
			continue
		}
		if sim := s.loadSim(ctx, id); sim != nil {
			unindexed = append(unindexed, sim)
			continue
		}
		s.sims.Cell(ctx, id).Clear(ctx)
		s.sims.Release(id)
		report.RemovedSimIDs = append(report.RemovedSimIDs, id)
	}

	slices.SortStableFunc(unindexed, func(a, b *models.Sim) int {
		if c := cmp.Compare(a.CreatedAt, b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	for _, sim := range unindexed {
		if err := s.index.Append(ctx, sim.ID); err != nil {
			return fail[ReconcileReport](s.internal(ctx, msgReconcileFailed, err, "id", sim.ID))
		}
		report.ReindexedSimIDs = append(report.ReindexedSimIDs, sim.ID)
	}

	mdIDs, err := s.metadata.PersistedIDs(ctx)
	if err != nil {
		return fail[ReconcileReport](s.internal(ctx, msgReconcileFailed, err))
	}
	for _, id := range mdIDs {
		if s.index.Contains(id) {
			continue
		}
		s.metadata.Cell(ctx, id).Clear(ctx)
		s.metadata.Release(id)
		report.RemovedMetadataIDs = append(report.RemovedMetadataIDs, id)
	}

	if !report.Clean() {
		s.log.Info(ctx, "store reconciled",
			"dropped_index_ids", len(report.DroppedIndexIDs),
			"reindexed_sims", len(report.ReindexedSimIDs),
			"removed_sims", len(report.RemovedSimIDs),
			"removed_metadata", len(report.RemovedMetadataIDs))
	}
	return ok(report)
}

// isIndexKey reports whether id is the suffix of the index key itself,
// which shares the Sim key prefix.
func isIndexKey(s *store, id string) bool {
	return s.sims.Key(id) == s.index.Key()
}
