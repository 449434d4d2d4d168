package services

import (
	"context"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
)

func (s *store) CreateSim(ctx context.Context, in models.CreateSimInput) (res Result[models.Sim]) {
	defer guard(ctx, s, msgCreateSim, &res)

	if err := models.ValidateCreateSim(in); err != nil {
		return fail[models.Sim](err)
	}

	var log string
	if in.Log != nil {
		log = *in.Log
	}

	now := s.nowMillis()
	sim := &models.Sim{ID: s.newID(), Log: log, CreatedAt: now, UpdatedAt: now}

	cell := s.sims.Cell(ctx, sim.ID)
	if err := cell.Set(ctx, sim); err != nil {
		s.sims.Release(sim.ID)
		return fail[models.Sim](s.internal(ctx, msgCreateSim, err, "id", sim.ID))
	}

	if err := s.index.Append(ctx, sim.ID); err != nil {
		// keep the record unreachable rather than orphaned
		cell.Clear(ctx)
		s.sims.Release(sim.ID)
		return fail[models.Sim](s.internal(ctx, msgCreateSim, err, "id", sim.ID))
	}

	s.log.Debug(ctx, "sim created", "id", sim.ID, "log_len", len(log))
	return ok(*sim)
}

func (s *store) GetSim(ctx context.Context, id string) (res Result[models.Sim]) {
	defer guard(ctx, s, msgRetrieveSim, &res)

	sim := s.loadSim(ctx, id)
	if sim == nil {
		return fail[models.Sim](notFound("Sim with ID %s not found", id))
	}
	return ok(*sim)
}

// GetAllSims returns Sims in creation order. Ids whose record cannot be
// read are skipped.
func (s *store) GetAllSims(ctx context.Context) (res Result[[]models.Sim]) {
	defer guard(ctx, s, msgRetrieveSims, &res)

	ids := s.index.IDs()
	sims := make([]models.Sim, 0, len(ids))
	for _, id := range ids {
		if sim := s.loadSim(ctx, id); sim != nil {
			sims = append(sims, *sim)
		}
	}
	return ok(sims)
}

// UpdateSim merges in into the stored Sim. Every update strictly advances
// UpdatedAt: without an explicit value it becomes max(now, CreatedAt+1,
// previous UpdatedAt+1); an explicit value not newer than the previous one
// is replaced by that automatic value.
func (s *store) UpdateSim(ctx context.Context, id string, in models.UpdateSimInput) (res Result[models.Sim]) {
	defer guard(ctx, s, msgUpdateSim, &res)

	if err := models.ValidateUpdateSim(in); err != nil {
		return fail[models.Sim](err)
	}

	cur := s.loadSim(ctx, id)
	if cur == nil {
		return fail[models.Sim](notFound("Sim with ID %s not found", id))
	}

	next := *cur
	if in.Log != nil {
		next.Log = *in.Log
	}

	auto := max(s.nowMillis(), cur.CreatedAt+1, cur.UpdatedAt+1)
	if in.UpdatedAt != nil && *in.UpdatedAt > cur.UpdatedAt {
		next.UpdatedAt = *in.UpdatedAt
	} else {
		next.UpdatedAt = auto
	}

	if err := s.sims.Cell(ctx, id).Set(ctx, &next); err != nil {
		return fail[models.Sim](s.internal(ctx, msgUpdateSim, err, "id", id))
	}
	return ok(next)
}

// DeleteSim removes the Sim and its metadata. Order: metadata emptied,
// id dropped from the index, Sim key removed, metadata key removed and
// both cell handles released. A failed first step leaves the Sim intact.
func (s *store) DeleteSim(ctx context.Context, id string) (res Result[struct{}]) {
	defer guard(ctx, s, msgDeleteSim, &res)

	if s.loadSim(ctx, id) == nil {
		return fail[struct{}](notFound("Sim with ID %s not found", id))
	}

	if r := s.DeleteAllMetadataForEntity(ctx, id); !r.Success {
		return fail[struct{}](r.Err())
	}

	if err := s.index.Remove(ctx, id); err != nil {
		return fail[struct{}](s.internal(ctx, msgDeleteSim, err, "id", id))
	}

	s.sims.Cell(ctx, id).Clear(ctx)
	s.metadata.Cell(ctx, id).Clear(ctx)
	s.metadata.Release(id)
	s.sims.Release(id)

	s.log.Debug(ctx, "sim deleted", "id", id)
	return ok(struct{}{})
}

func (s *store) SimExists(ctx context.Context, id string) bool {
	return s.GetSim(ctx, id).Success
}
