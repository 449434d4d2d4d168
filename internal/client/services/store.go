package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
	"github.com/dmitrijs2005/simkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/simkeeper/internal/client/storage"
	"github.com/dmitrijs2005/simkeeper/internal/common"
	"github.com/dmitrijs2005/simkeeper/internal/logging"
	"github.com/dmitrijs2005/simkeeper/internal/timex"
	"github.com/dmitrijs2005/simkeeper/internal/uuidx"
)

// Store defines the record operations.
//
// Contract:
//   - Sim CRUD: CreateSim, GetSim, GetAllSims, UpdateSim, DeleteSim (cascades
//     to the Sim's metadata).
//   - Metadata CRUD scoped by owning entity id.
//   - Helpers: SimExists, GetMetadataCount, FindMetadataByKey,
//     CanAddMetadata, GetMetadataStats.
//   - Reconcile repairs the index and removes orphaned keys.
type Store interface {
	CreateSim(ctx context.Context, in models.CreateSimInput) Result[models.Sim]
	GetSim(ctx context.Context, id string) Result[models.Sim]
	GetAllSims(ctx context.Context) Result[[]models.Sim]
	UpdateSim(ctx context.Context, id string, in models.UpdateSimInput) Result[models.Sim]
	DeleteSim(ctx context.Context, id string) Result[struct{}]
	SimExists(ctx context.Context, id string) bool

	CreateMetadata(ctx context.Context, in models.CreateMetadataInput) Result[models.Metadata]
	GetMetadata(ctx context.Context, entityID, metadataID string) Result[models.Metadata]
	GetAllMetadataForEntity(ctx context.Context, entityID string) Result[[]models.Metadata]
	UpdateMetadata(ctx context.Context, entityID, metadataID string, in models.UpdateMetadataInput) Result[models.Metadata]
	DeleteMetadata(ctx context.Context, entityID, metadataID string) Result[struct{}]
	DeleteAllMetadataForEntity(ctx context.Context, entityID string) Result[struct{}]

	GetMetadataCount(ctx context.Context, entityID string) int
	FindMetadataByKey(ctx context.Context, entityID, key string) Result[*models.Metadata]
	CanAddMetadata(ctx context.Context, entityID string) bool
	GetMetadataStats(ctx context.Context, entityID string) Result[models.MetadataStats]

	Reconcile(ctx context.Context) Result[ReconcileReport]
}

// Option customises a store built by NewStore.
type Option func(*store)

// WithClock replaces time.Now as the source of timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *store) { s.now = now }
}

// WithIDGenerator replaces uuidx.New as the source of record ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *store) { s.newID = newID }
}

type store struct {
	sims     *storage.Family[*models.Sim]
	metadata *storage.Family[[]models.Metadata]
	index    *storage.Index

	log   logging.Logger
	now   func() time.Time
	newID func() string
}

// NewStore builds a Store over repo. The Sim index is loaded immediately;
// individual records are loaded on first access.
func NewStore(ctx context.Context, repo kv.Repository, log logging.Logger, opts ...Option) Store {
	a := storage.NewAdapter(repo, log)

	s := &store{
		sims: storage.NewFamily(a, common.SimKeyPrefix, func() *models.Sim { return nil }),
		metadata: storage.NewFamily(a, common.MetadataKeyPrefix, func() []models.Metadata {
			return []models.Metadata{}
		}),
		index: storage.NewIndex(ctx, a),
		log:   log.With("component", "store"),
		now:   time.Now,
		newID: uuidx.New,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *store) nowMillis() int64 {
	return timex.NowMillis(s.now())
}

// loadSim returns the stored Sim or nil. Malformed ids never reach storage,
// and the handle of an absent Sim is not kept. A record stored under
// another Sim's key counts as absent.
func (s *store) loadSim(ctx context.Context, id string) *models.Sim {
	if !uuidx.IsValid(id) {
		return nil
	}
	sim := s.sims.Cell(ctx, id).Get()
	if sim == nil || sim.ID != id {
		s.sims.Release(id)
		return nil
	}
	return sim
}
