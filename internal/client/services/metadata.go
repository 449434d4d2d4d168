package services

import (
	"context"
	"slices"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
	"github.com/dmitrijs2005/simkeeper/internal/uuidx"
)

func (s *store) CreateMetadata(ctx context.Context, in models.CreateMetadataInput) (res Result[models.Metadata]) {
	defer guard(ctx, s, msgCreateMetadata, &res)

	if err := models.ValidateCreateMetadata(in); err != nil {
		return fail[models.Metadata](err)
	}

	if !s.SimExists(ctx, in.EntityID) {
		return fail[models.Metadata](notFound("Cannot create metadata: sim with ID %s not found", in.EntityID))
	}

	md := models.Metadata{
		ID:       s.newID(),
		EntityID: in.EntityID,
		Key:      in.Key,
		Value:    in.Value,
	}

	cell := s.metadata.Cell(ctx, in.EntityID)
	next := append(slices.Clone(cell.Get()), md)
	if err := cell.Set(ctx, next); err != nil {
		return fail[models.Metadata](s.internal(ctx, msgCreateMetadata, err, "entity_id", in.EntityID))
	}
	return ok(md)
}

// items returns the entity's stored metadata; nil for malformed ids.
func (s *store) items(ctx context.Context, entityID string) []models.Metadata {
	if !uuidx.IsValid(entityID) {
		return nil
	}
	return s.metadata.Cell(ctx, entityID).Get()
}

// GetMetadata looks the entry up in its entity's list. The entity itself is
// not checked.
func (s *store) GetMetadata(ctx context.Context, entityID, metadataID string) (res Result[models.Metadata]) {
	defer guard(ctx, s, msgRetrieveMeta, &res)

	for _, md := range s.items(ctx, entityID) {
		if md.ID == metadataID {
			return ok(md)
		}
	}
	return fail[models.Metadata](notFound("Metadata with ID %s not found", metadataID))
}

func (s *store) GetAllMetadataForEntity(ctx context.Context, entityID string) (res Result[[]models.Metadata]) {
	defer guard(ctx, s, msgRetrieveMeta, &res)

	if !s.SimExists(ctx, entityID) {
		return fail[[]models.Metadata](notFound("Entity with ID %s not found", entityID))
	}

	items := slices.Clone(s.items(ctx, entityID))
	if items == nil {
		items = []models.Metadata{}
	}
	return ok(items)
}

// UpdateMetadata changes the supplied fields of one entry.
func (s *store) UpdateMetadata(ctx context.Context, entityID, metadataID string, in models.UpdateMetadataInput) (res Result[models.Metadata]) {
	defer guard(ctx, s, msgUpdateMetadata, &res)

	if err := models.ValidateUpdateMetadata(in); err != nil {
		return fail[models.Metadata](err)
	}

	found := s.GetMetadata(ctx, entityID, metadataID)
	if !found.Success {
		return found
	}

	updated := found.Data
	if in.Key != nil {
		updated.Key = *in.Key
	}
	if in.Value != nil {
		updated.Value = *in.Value
	}

	cell := s.metadata.Cell(ctx, entityID)
	next := slices.Clone(cell.Get())
	for i := range next {
		if next[i].ID == metadataID {
			next[i] = updated
		}
	}

	if err := cell.Set(ctx, next); err != nil {
		return fail[models.Metadata](s.internal(ctx, msgUpdateMetadata, err, "entity_id", entityID, "id", metadataID))
	}
	return ok(updated)
}

func (s *store) DeleteMetadata(ctx context.Context, entityID, metadataID string) (res Result[struct{}]) {
	defer guard(ctx, s, msgDeleteMetadata, &res)

	if found := s.GetMetadata(ctx, entityID, metadataID); !found.Success {
		return fail[struct{}](found.Err())
	}

	cell := s.metadata.Cell(ctx, entityID)
	next := slices.DeleteFunc(slices.Clone(cell.Get()), func(md models.Metadata) bool {
		return md.ID == metadataID
	})

	if err := cell.Set(ctx, next); err != nil {
		return fail[struct{}](s.internal(ctx, msgDeleteMetadata, err, "entity_id", entityID, "id", metadataID))
	}
	return ok(struct{}{})
}

// DeleteAllMetadataForEntity stores an empty list for the entity whether or
// not the entity exists. Malformed ids are a no-op.
func (s *store) DeleteAllMetadataForEntity(ctx context.Context, entityID string) (res Result[struct{}]) {
	defer guard(ctx, s, msgDeleteMetadata, &res)

	if !uuidx.IsValid(entityID) {
		return ok(struct{}{})
	}

	if err := s.metadata.Cell(ctx, entityID).Set(ctx, []models.Metadata{}); err != nil {
		return fail[struct{}](s.internal(ctx, msgDeleteMetadata, err, "entity_id", entityID))
	}
	return ok(struct{}{})
}

// GetMetadataCount returns 0 when the entity does not exist.
func (s *store) GetMetadataCount(ctx context.Context, entityID string) int {
	r := s.GetAllMetadataForEntity(ctx, entityID)
	if !r.Success {
		return 0
	}
	return len(r.Data)
}

// FindMetadataByKey returns the first entry with key, or nil Data when
// there is none. It fails only when the entity does not exist.
func (s *store) FindMetadataByKey(ctx context.Context, entityID, key string) (res Result[*models.Metadata]) {
	defer guard(ctx, s, msgSearchMetadata, &res)

	all := s.GetAllMetadataForEntity(ctx, entityID)
	if !all.Success {
		return fail[*models.Metadata](all.Err())
	}

	for _, md := range all.Data {
		if md.Key == key {
			return ok(&md)
		}
	}
	return ok[*models.Metadata](nil)
}

// CanAddMetadata reports whether the entity exists and is below the
// advisory per-Sim metadata cap.
func (s *store) CanAddMetadata(ctx context.Context, entityID string) bool {
	all := s.GetAllMetadataForEntity(ctx, entityID)
	return all.Success && !models.WouldExceedMetadataLimit(len(all.Data))
}

func (s *store) GetMetadataStats(ctx context.Context, entityID string) (res Result[models.MetadataStats]) {
	defer guard(ctx, s, msgMetadataStats, &res)

	all := s.GetAllMetadataForEntity(ctx, entityID)
	if !all.Success {
		return fail[models.MetadataStats](all.Err())
	}
	return ok(models.ComputeMetadataStats(all.Data))
}
