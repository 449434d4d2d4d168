package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/simkeeper/internal/client/models"
	"github.com/dmitrijs2005/simkeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/simkeeper/internal/common"
	"github.com/dmitrijs2005/simkeeper/internal/logging"
	"github.com/dmitrijs2005/simkeeper/internal/uuidx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// flakyRepo fails Set/Delete for keys matching the configured predicates.
type flakyRepo struct {
	*kv.MemoryRepository

	mu         sync.Mutex
	failSet    func(key string) bool
	failDelete func(key string) bool
	panicGet   bool
}

func newFlaky() *flakyRepo {
	return &flakyRepo{MemoryRepository: kv.NewMemoryRepository()}
}

func (r *flakyRepo) setFailSet(fn func(string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failSet = fn
}

func (r *flakyRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if r.panicGet {
		panic("boom")
	}
	return r.MemoryRepository.Get(ctx, key)
}

func (r *flakyRepo) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	fail := r.failSet != nil && r.failSet(key)
	r.mu.Unlock()
	if fail {
		return errInjected
	}
	return r.MemoryRepository.Set(ctx, key, value)
}

func (r *flakyRepo) Delete(ctx context.Context, key string) error {
	if r.failDelete != nil && r.failDelete(key) {
		return errInjected
	}
	return r.MemoryRepository.Delete(ctx, key)
}

func prefixed(p string) func(string) bool {
	return func(k string) bool { return strings.HasPrefix(k, p) }
}

func exactly(key string) func(string) bool {
	return func(k string) bool { return k == key }
}

// fakeClock returns a fixed instant that tests move explicitly.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

var t0 = time.UnixMilli(1_700_000_000_000)

func newTestStore(t *testing.T, repo kv.Repository) (Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: t0}
	return NewStore(context.Background(), repo, logging.NewNop(), WithClock(clock.Now)), clock
}

func ptr[T any](v T) *T { return &v }

func mustCreateSim(t *testing.T, s Store, log string) models.Sim {
	t.Helper()
	r := s.CreateSim(context.Background(), models.CreateSimInput{Log: &log})
	require.True(t, r.Success, r.Error)
	return r.Data
}

func mustCreateMetadata(t *testing.T, s Store, entityID, key, value string) models.Metadata {
	t.Helper()
	r := s.CreateMetadata(context.Background(), models.CreateMetadataInput{EntityID: entityID, Key: key, Value: value})
	require.True(t, r.Success, r.Error)
	return r.Data
}

func TestCreateSim_ValidLengthsRoundTrip(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()

	for _, n := range []int{0, 1, 5000, models.MaxLogLength} {
		t.Run(fmt.Sprintf("len=%d", n), func(t *testing.T) {
			log := strings.Repeat("a", n)
			created := mustCreateSim(t, s, log)

			assert.Equal(t, log, created.Log)
			assert.True(t, uuidx.IsValid(created.ID))
			assert.Equal(t, t0.UnixMilli(), created.CreatedAt)
			assert.Equal(t, created.CreatedAt, created.UpdatedAt)

			got := s.GetSim(ctx, created.ID)
			require.True(t, got.Success)
			assert.Equal(t, created, got.Data)
		})
	}
}

func TestCreateSim_NoLogDefaultsToEmpty(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())

	r := s.CreateSim(context.Background(), models.CreateSimInput{})
	require.True(t, r.Success)
	assert.Equal(t, "", r.Data.Log)
}

func TestCreateSim_TooLongPersistsNothing(t *testing.T) {
	repo := kv.NewMemoryRepository()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()

	r := s.CreateSim(ctx, models.CreateSimInput{Log: ptr(strings.Repeat("a", models.MaxLogLength+1))})

	require.False(t, r.Success)
	assert.Contains(t, r.Error, "exceeds maximum length")
	assert.ErrorIs(t, r.Err(), common.ErrorValidation)
	assert.Equal(t, 0, repo.Len())

	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	assert.Empty(t, all.Data)
}

func TestCreateSim_SimWriteFailure(t *testing.T) {
	repo := newFlaky()
	repo.setFailSet(prefixed(common.SimKeyPrefix))
	s, _ := newTestStore(t, repo)

	r := s.CreateSim(context.Background(), models.CreateSimInput{})
	require.False(t, r.Success)
	assert.Equal(t, "Failed to create sim", r.Error)
	assert.ErrorIs(t, r.Err(), common.ErrorInternal)
	assert.Equal(t, 0, repo.Len())
}

func TestCreateSim_IndexWriteFailureLeavesNoOrphan(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()
	repo.setFailSet(exactly(common.SimIDsKey))

	r := s.CreateSim(ctx, models.CreateSimInput{Log: ptr("x")})
	require.False(t, r.Success)
	assert.Equal(t, "Failed to create sim", r.Error)

	keys, err := repo.Keys(ctx, common.SimKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys, "sim cell must be cleared again")

	repo.setFailSet(nil)
	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	assert.Empty(t, all.Data)
}

func TestGetSim_NotFound(t *testing.T) {
	repo := kv.NewMemoryRepository()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()

	id := uuidx.New()
	r := s.GetSim(ctx, id)
	require.False(t, r.Success)
	assert.Equal(t, fmt.Sprintf("Sim with ID %s not found", id), r.Error)
	assert.ErrorIs(t, r.Err(), common.ErrorNotFound)

	getsBefore := repo.CallCount.Get
	r = s.GetSim(ctx, "not-a-uuid")
	require.False(t, r.Success)
	assert.Contains(t, r.Error, "not found")
	assert.Equal(t, getsBefore, repo.CallCount.Get, "malformed ids never reach storage")

	assert.False(t, s.SimExists(ctx, id))
}

func TestLookupsOfMissingSimsKeepNoHandles(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	live := mustCreateSim(t, s, "live")
	sims := s.(*store).sims

	for i := 0; i < 50; i++ {
		id := uuidx.New()
		assert.False(t, s.GetSim(ctx, id).Success)
		assert.False(t, s.SimExists(ctx, id))
		assert.False(t, s.UpdateSim(ctx, id, models.UpdateSimInput{}).Success)
		assert.False(t, s.DeleteSim(ctx, id).Success)
	}
	assert.Equal(t, 1, sims.Len())

	assert.True(t, s.SimExists(ctx, live.ID))
	assert.Equal(t, 1, sims.Len())
}

func TestSimWithoutIDIsTreatedAsCorrupt(t *testing.T) {
	repo := kv.NewMemoryRepository()
	ctx := context.Background()

	s, _ := newTestStore(t, repo)
	good := mustCreateSim(t, s, "good")
	empty := mustCreateSim(t, s, "empty")
	require.NoError(t, repo.Set(ctx, common.SimKeyPrefix+empty.ID, []byte(`{}`)))

	s, _ = newTestStore(t, repo)
	assert.False(t, s.GetSim(ctx, empty.ID).Success)
	assert.False(t, s.SimExists(ctx, empty.ID))

	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	assert.Equal(t, []models.Sim{good}, all.Data)

	r := s.Reconcile(ctx)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, []string{empty.ID}, r.Data.DroppedIndexIDs)
	assert.Equal(t, []string{empty.ID}, r.Data.RemovedSimIDs)
}

func TestSimUnderForeignKeyIsNotServed(t *testing.T) {
	repo := kv.NewMemoryRepository()
	ctx := context.Background()

	s, _ := newTestStore(t, repo)
	a := mustCreateSim(t, s, "a")
	b := mustCreateSim(t, s, "b")
	raw, err := repo.Get(ctx, common.SimKeyPrefix+a.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Set(ctx, common.SimKeyPrefix+b.ID, raw))

	s, _ = newTestStore(t, repo)
	assert.False(t, s.SimExists(ctx, b.ID))

	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	assert.Equal(t, []models.Sim{a}, all.Data)
}

func TestGetAllSims_CreationOrderAndIdempotent(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()

	a := mustCreateSim(t, s, "a")
	b := mustCreateSim(t, s, "b")
	c := mustCreateSim(t, s, "c")

	first := s.GetAllSims(ctx)
	require.True(t, first.Success)
	require.Len(t, first.Data, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{first.Data[0].ID, first.Data[1].ID, first.Data[2].ID})

	second := s.GetAllSims(ctx)
	assert.Equal(t, first, second)
}

func TestGetAllSims_SkipsUnreadable(t *testing.T) {
	repo := kv.NewMemoryRepository()
	ctx := context.Background()

	s, _ := newTestStore(t, repo)
	good := mustCreateSim(t, s, "good")
	bad := mustCreateSim(t, s, "bad")

	require.NoError(t, repo.Set(ctx, common.SimKeyPrefix+bad.ID, []byte("\x00garbage")))

	// a fresh store hydrates from the damaged backing data
	s, _ = newTestStore(t, repo)
	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	require.Len(t, all.Data, 1)
	assert.Equal(t, good.ID, all.Data[0].ID)

	assert.False(t, s.GetSim(ctx, bad.ID).Success)
}

func TestUpdateSim_TimestampNeverRegresses(t *testing.T) {
	s, clock := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "hello")

	// same millisecond as creation
	r := s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{Log: ptr("x")})
	require.True(t, r.Success)
	assert.Equal(t, "x", r.Data.Log)
	assert.Equal(t, sim.CreatedAt+1, r.Data.UpdatedAt)
	assert.Equal(t, sim.CreatedAt, r.Data.CreatedAt)

	// second update in the same millisecond still advances
	prev := r.Data.UpdatedAt
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{Log: ptr("x2")})
	require.True(t, r.Success)
	assert.Greater(t, r.Data.UpdatedAt, prev)
	assert.Equal(t, sim.CreatedAt+2, r.Data.UpdatedAt)

	// clock moves backwards
	clock.Set(t0.Add(-time.Hour))
	prev = r.Data.UpdatedAt
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{Log: ptr("y")})
	require.True(t, r.Success)
	assert.Greater(t, r.Data.UpdatedAt, prev)

	// clock moves forward
	later := t0.Add(time.Minute)
	clock.Set(later)
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{})
	require.True(t, r.Success)
	assert.Equal(t, later.UnixMilli(), r.Data.UpdatedAt)
	assert.Equal(t, "y", r.Data.Log, "absent fields are kept")

	stored := s.GetSim(ctx, sim.ID)
	assert.Equal(t, r.Data, stored.Data)
}

func TestUpdateSim_ExplicitUpdatedAt(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")

	future := sim.CreatedAt + 5000
	r := s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{UpdatedAt: &future})
	require.True(t, r.Success)
	assert.Equal(t, future, r.Data.UpdatedAt)

	// an older explicit value is replaced by the automatic one
	past := sim.CreatedAt + 10
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{UpdatedAt: &past})
	require.True(t, r.Success)
	assert.Equal(t, future+1, r.Data.UpdatedAt)

	// so is one equal to the previous value
	same := r.Data.UpdatedAt
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{UpdatedAt: &same})
	require.True(t, r.Success)
	assert.Equal(t, same+1, r.Data.UpdatedAt)

	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{UpdatedAt: ptr(int64(0))})
	require.False(t, r.Success)
	assert.Equal(t, "Updated timestamp must be a positive number", r.Error)
}

func TestUpdateSim_ExplicitCreatedAtStillAdvances(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")

	r := s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{UpdatedAt: &sim.CreatedAt})
	require.True(t, r.Success)
	assert.Greater(t, r.Data.UpdatedAt, r.Data.CreatedAt)
}

func TestUpdateSim_Failures(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()
	sim := mustCreateSim(t, s, "orig")

	r := s.UpdateSim(ctx, uuidx.New(), models.UpdateSimInput{Log: ptr("x")})
	require.False(t, r.Success)
	assert.ErrorIs(t, r.Err(), common.ErrorNotFound)

	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{Log: ptr(strings.Repeat("z", models.MaxLogLength+1))})
	require.False(t, r.Success)
	assert.ErrorIs(t, r.Err(), common.ErrorValidation)

	repo.setFailSet(prefixed(common.SimKeyPrefix))
	r = s.UpdateSim(ctx, sim.ID, models.UpdateSimInput{Log: ptr("new")})
	require.False(t, r.Success)
	assert.Equal(t, "Failed to update sim", r.Error)

	repo.setFailSet(nil)
	assert.Equal(t, "orig", s.GetSim(ctx, sim.ID).Data.Log, "failed write leaves the record unchanged")
}

func TestDeleteSim_Cascades(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		t.Run(fmt.Sprintf("metadata=%d", n), func(t *testing.T) {
			repo := kv.NewMemoryRepository()
			s, _ := newTestStore(t, repo)
			ctx := context.Background()

			keep := mustCreateSim(t, s, "keep")
			sim := mustCreateSim(t, s, "doomed")
			for i := 0; i < n; i++ {
				mustCreateMetadata(t, s, sim.ID, fmt.Sprintf("k%d", i), "v")
			}

			r := s.DeleteSim(ctx, sim.ID)
			require.True(t, r.Success, r.Error)

			got := s.GetSim(ctx, sim.ID)
			require.False(t, got.Success)
			assert.Contains(t, got.Error, "not found")

			md := s.GetAllMetadataForEntity(ctx, sim.ID)
			require.False(t, md.Success, "must fail, not return an empty list")
			assert.Contains(t, md.Error, "not found")

			for _, key := range []string{common.SimKeyPrefix + sim.ID, common.MetadataKeyPrefix + sim.ID} {
				v, err := repo.Get(ctx, key)
				require.NoError(t, err)
				assert.Nil(t, v, "key %s must be removed", key)
			}

			all := s.GetAllSims(ctx)
			require.Len(t, all.Data, 1)
			assert.Equal(t, keep.ID, all.Data[0].ID)
		})
	}
}

func TestDeleteSim_NotFound(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())

	id := uuidx.New()
	r := s.DeleteSim(context.Background(), id)
	require.False(t, r.Success)
	assert.Equal(t, fmt.Sprintf("Sim with ID %s not found", id), r.Error)
}

func TestDeleteSim_MetadataFailureKeepsSim(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()
	sim := mustCreateSim(t, s, "x")
	mustCreateMetadata(t, s, sim.ID, "k", "v")

	repo.setFailSet(prefixed(common.MetadataKeyPrefix))
	r := s.DeleteSim(ctx, sim.ID)
	require.False(t, r.Success)
	assert.Equal(t, "Failed to delete metadata", r.Error)

	repo.setFailSet(nil)
	assert.True(t, s.SimExists(ctx, sim.ID))
	assert.Equal(t, 1, s.GetMetadataCount(ctx, sim.ID))
	assert.Len(t, s.GetAllSims(ctx).Data, 1)
}

func TestDeleteSim_IndexFailureKeepsSim(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()
	sim := mustCreateSim(t, s, "x")

	repo.setFailSet(exactly(common.SimIDsKey))
	r := s.DeleteSim(ctx, sim.ID)
	require.False(t, r.Success)
	assert.Equal(t, "Failed to delete sim", r.Error)

	repo.setFailSet(nil)
	assert.True(t, s.SimExists(ctx, sim.ID))
}

func TestCreateMetadata_RequiresExistingSim(t *testing.T) {
	repo := kv.NewMemoryRepository()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()

	ghost := uuidx.New()
	r := s.CreateMetadata(ctx, models.CreateMetadataInput{EntityID: ghost, Key: "k", Value: "v"})
	require.False(t, r.Success)
	assert.Equal(t, fmt.Sprintf("Cannot create metadata: sim with ID %s not found", ghost), r.Error)
	assert.ErrorIs(t, r.Err(), common.ErrorNotFound)

	keys, err := repo.Keys(ctx, common.MetadataKeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)

	assert.False(t, s.GetAllMetadataForEntity(ctx, ghost).Success)

	// a Sim created later with a different id must not see it either
	sim := mustCreateSim(t, s, "")
	md := s.GetAllMetadataForEntity(ctx, sim.ID)
	require.True(t, md.Success)
	assert.Empty(t, md.Data)
}

func TestCreateMetadata_Validation(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")

	r := s.CreateMetadata(ctx, models.CreateMetadataInput{EntityID: sim.ID, Key: strings.Repeat("k", 101)})
	require.False(t, r.Success)
	assert.Equal(t, "Metadata key exceeds maximum length (100 characters)", r.Error)

	r = s.CreateMetadata(ctx, models.CreateMetadataInput{EntityID: sim.ID, Value: strings.Repeat("v", 10_001)})
	require.False(t, r.Success)
	assert.Equal(t, "Metadata value exceeds maximum length (10,000 characters)", r.Error)

	assert.Equal(t, 0, s.GetMetadataCount(ctx, sim.ID))
}

func TestMetadata_CRUD(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")

	a := mustCreateMetadata(t, s, sim.ID, "a", "1")
	b := mustCreateMetadata(t, s, sim.ID, "b", "2")
	assert.Equal(t, sim.ID, a.EntityID)
	assert.True(t, uuidx.IsValid(a.ID))

	got := s.GetMetadata(ctx, sim.ID, b.ID)
	require.True(t, got.Success)
	assert.Equal(t, b, got.Data)

	missing := uuidx.New()
	got = s.GetMetadata(ctx, sim.ID, missing)
	require.False(t, got.Success)
	assert.Equal(t, fmt.Sprintf("Metadata with ID %s not found", missing), got.Error)

	up := s.UpdateMetadata(ctx, sim.ID, a.ID, models.UpdateMetadataInput{Value: ptr("one")})
	require.True(t, up.Success)
	assert.Equal(t, "a", up.Data.Key)
	assert.Equal(t, "one", up.Data.Value)

	up = s.UpdateMetadata(ctx, sim.ID, a.ID, models.UpdateMetadataInput{Key: ptr("alpha")})
	require.True(t, up.Success)
	assert.Equal(t, models.Metadata{ID: a.ID, EntityID: sim.ID, Key: "alpha", Value: "one"}, up.Data)

	up = s.UpdateMetadata(ctx, sim.ID, missing, models.UpdateMetadataInput{Key: ptr("x")})
	require.False(t, up.Success)
	assert.ErrorIs(t, up.Err(), common.ErrorNotFound)

	up = s.UpdateMetadata(ctx, sim.ID, a.ID, models.UpdateMetadataInput{Key: ptr(strings.Repeat("k", 101))})
	require.False(t, up.Success)
	assert.ErrorIs(t, up.Err(), common.ErrorValidation)

	all := s.GetAllMetadataForEntity(ctx, sim.ID)
	require.True(t, all.Success)
	require.Len(t, all.Data, 2)
	assert.Equal(t, "alpha", all.Data[0].Key, "order is kept on update")
	assert.Equal(t, b, all.Data[1])

	del := s.DeleteMetadata(ctx, sim.ID, a.ID)
	require.True(t, del.Success)
	assert.Equal(t, 1, s.GetMetadataCount(ctx, sim.ID))

	del = s.DeleteMetadata(ctx, sim.ID, a.ID)
	require.False(t, del.Success)
	assert.Contains(t, del.Error, "not found")
}

func TestGetAllMetadataForEntity_ReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")
	mustCreateMetadata(t, s, sim.ID, "k", "v")

	all := s.GetAllMetadataForEntity(ctx, sim.ID)
	all.Data[0].Value = "mutated"

	assert.Equal(t, "v", s.GetAllMetadataForEntity(ctx, sim.ID).Data[0].Value)
}

func TestMetadataWriteFailures(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")
	md := mustCreateMetadata(t, s, sim.ID, "k", "v")

	repo.setFailSet(prefixed(common.MetadataKeyPrefix))

	c := s.CreateMetadata(ctx, models.CreateMetadataInput{EntityID: sim.ID, Key: "k2"})
	assert.Equal(t, "Failed to create metadata", c.Error)

	u := s.UpdateMetadata(ctx, sim.ID, md.ID, models.UpdateMetadataInput{Value: ptr("x")})
	assert.Equal(t, "Failed to update metadata", u.Error)

	d := s.DeleteMetadata(ctx, sim.ID, md.ID)
	assert.Equal(t, "Failed to delete metadata", d.Error)
	assert.ErrorIs(t, d.Err(), common.ErrorInternal)

	repo.setFailSet(nil)
	all := s.GetAllMetadataForEntity(ctx, sim.ID)
	assert.Equal(t, []models.Metadata{md}, all.Data)
}

func TestDeleteAllMetadataForEntity_Unconditional(t *testing.T) {
	repo := kv.NewMemoryRepository()
	s, _ := newTestStore(t, repo)
	ctx := context.Background()

	ghost := uuidx.New()
	require.True(t, s.DeleteAllMetadataForEntity(ctx, ghost).Success)

	v, err := repo.Get(ctx, common.MetadataKeyPrefix+ghost)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(v))

	require.True(t, s.DeleteAllMetadataForEntity(ctx, "garbage").Success)
	v, err = repo.Get(ctx, common.MetadataKeyPrefix+"garbage")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFindMetadataByKey(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")
	first := mustCreateMetadata(t, s, sim.ID, "dup", "1")
	mustCreateMetadata(t, s, sim.ID, "dup", "2")

	r := s.FindMetadataByKey(ctx, sim.ID, "dup")
	require.True(t, r.Success)
	require.NotNil(t, r.Data)
	assert.Equal(t, first, *r.Data)

	r = s.FindMetadataByKey(ctx, sim.ID, "absent")
	require.True(t, r.Success)
	assert.Nil(t, r.Data)

	r = s.FindMetadataByKey(ctx, uuidx.New(), "dup")
	require.False(t, r.Success)
	assert.Contains(t, r.Error, "not found")
}

func TestCanAddMetadata(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")

	for i := 0; i < models.MaxMetadataPerSim; i++ {
		require.True(t, s.CanAddMetadata(ctx, sim.ID), "entry %d", i)
		mustCreateMetadata(t, s, sim.ID, fmt.Sprintf("k%d", i), "v")
	}
	assert.False(t, s.CanAddMetadata(ctx, sim.ID))
	assert.False(t, s.CanAddMetadata(ctx, uuidx.New()))

	// the cap is advisory
	mustCreateMetadata(t, s, sim.ID, "over", "v")
	assert.Equal(t, models.MaxMetadataPerSim+1, s.GetMetadataCount(ctx, sim.ID))
}

func TestGetMetadataStats(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()
	sim := mustCreateSim(t, s, "")
	mustCreateMetadata(t, s, sim.ID, "name", "Ada")
	mustCreateMetadata(t, s, sim.ID, "  ", "x")

	r := s.GetMetadataStats(ctx, sim.ID)
	require.True(t, r.Success)
	assert.Equal(t, 2, r.Data.Count)
	assert.Equal(t, 1, r.Data.HasContent)
	assert.Equal(t, 1, r.Data.IsEmpty)
	assert.Equal(t, 6, r.Data.TotalKeyLength)

	assert.False(t, s.GetMetadataStats(ctx, uuidx.New()).Success)
}

func TestGetMetadataCount_ZeroForUnknown(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	assert.Equal(t, 0, s.GetMetadataCount(context.Background(), uuidx.New()))
	assert.Equal(t, 0, s.GetMetadataCount(context.Background(), "bad"))
}

func TestScenario_EndToEnd(t *testing.T) {
	s, _ := newTestStore(t, kv.NewMemoryRepository())
	ctx := context.Background()

	sim := mustCreateSim(t, s, "hello")
	assert.Equal(t, t0.UnixMilli(), sim.CreatedAt)
	assert.Equal(t, sim.CreatedAt, sim.UpdatedAt)

	md := mustCreateMetadata(t, s, sim.ID, "name", "Alice")
	assert.Equal(t, 1, s.GetMetadataCount(ctx, sim.ID))

	require.True(t, s.UpdateMetadata(ctx, sim.ID, md.ID, models.UpdateMetadataInput{Value: ptr("Bob")}).Success)
	found := s.FindMetadataByKey(ctx, sim.ID, "name")
	require.True(t, found.Success)
	require.NotNil(t, found.Data)
	assert.Equal(t, "Bob", found.Data.Value)

	require.True(t, s.DeleteSim(ctx, sim.ID).Success)
	assert.False(t, s.GetSim(ctx, sim.ID).Success)
	assert.False(t, s.GetAllMetadataForEntity(ctx, sim.ID).Success)
}

func TestStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.bolt")

	repo, err := kv.NewBoltRepository(path)
	require.NoError(t, err)
	s, _ := newTestStore(t, repo)
	a := mustCreateSim(t, s, "first")
	b := mustCreateSim(t, s, "second")
	md := mustCreateMetadata(t, s, b.ID, "k", "v")
	require.NoError(t, repo.Close())

	repo, err = kv.NewBoltRepository(path)
	require.NoError(t, err)
	defer repo.Close()
	s, _ = newTestStore(t, repo)

	all := s.GetAllSims(ctx)
	require.True(t, all.Success)
	assert.Equal(t, []models.Sim{a, b}, all.Data)

	mds := s.GetAllMetadataForEntity(ctx, b.ID)
	require.True(t, mds.Success)
	assert.Equal(t, []models.Metadata{md}, mds.Data)
}

func TestStore_PanicBecomesFailure(t *testing.T) {
	repo := newFlaky()
	s, _ := newTestStore(t, repo)
	repo.panicGet = true

	var r Result[models.Sim]
	require.NotPanics(t, func() { r = s.GetSim(context.Background(), uuidx.New()) })
	assert.False(t, r.Success)
	assert.Equal(t, "Failed to retrieve sim", r.Error)
	assert.ErrorIs(t, r.Err(), common.ErrorInternal)
}

func TestWithIDGenerator(t *testing.T) {
	const fixed = "3f2504e0-4f89-41d3-9a0c-0305e82c3301"
	s := NewStore(context.Background(), kv.NewMemoryRepository(), logging.NewNop(),
		WithIDGenerator(func() string { return fixed }))

	sim := mustCreateSim(t, s, "")
	assert.Equal(t, fixed, sim.ID)
}

func TestResult_JSONShape(t *testing.T) {
	b, err := json.Marshal(ok("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":"x"}`, string(b))

	b, err = json.Marshal(fail[string](notFound("Sim with ID %s not found", "1")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Sim with ID 1 not found"}`, string(b))

	assert.NoError(t, ok(1).Err())
}
