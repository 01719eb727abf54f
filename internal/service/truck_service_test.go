package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waste-bi-backend/internal/kvstore"
	"waste-bi-backend/internal/model"
	"waste-bi-backend/internal/repository"
	"waste-bi-backend/internal/validate"
)

// failingStore wraps a Store and fails every write once armed.
type failingStore struct {
	kvstore.Store
	failWrites bool
}

func (s *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failWrites {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func newTestService(kv kvstore.Store) *TruckService {
	log := zerolog.Nop()
	s := NewTruckService(repository.NewTruckRepository(kv, log), repository.NewSettingsRepository(kv), log)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("truck-%d", seq)
	}
	return s
}

func entryInput() validate.EntryInput {
	return validate.EntryInput{
		PlateNumber:   "B 1234 ABC",
		InitialWeight: 1000,
		EntryDate:     "2026-09-01",
	}
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	record, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	assert.Equal(t, "truck-1", record.ID)
	assert.Equal(t, "B 1234 ABC", record.PlateNumber)
	assert.Equal(t, 1000.0, record.InitialWeight)
	assert.Equal(t, model.StatusAwaitingSorting, record.Status)
	assert.Empty(t, record.WasteItems)
	assert.Nil(t, record.SortingDate)

	trucks, err := s.ListTrucks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, trucks, 1)
}

func TestCreateEntryValidationFailure(t *testing.T) {
	s := newTestService(kvstore.NewMemory())

	input := entryInput()
	input.InitialWeight = -1
	_, err := s.CreateEntry(context.Background(), input)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	trucks, listErr := s.ListTrucks(context.Background(), "")
	require.NoError(t, listErr)
	assert.Empty(t, trucks, "failed validation must not mutate the store")
}

func TestCreateEntryDuplicateRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	_, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	// Same plate and day, different casing and whitespace.
	dup := entryInput()
	dup.PlateNumber = "b 1234  abc"
	_, err = s.CreateEntry(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	// Same plate on another day is fine.
	other := entryInput()
	other.EntryDate = "2026-08-31"
	_, err = s.CreateEntry(ctx, other)
	assert.NoError(t, err)
}

func TestApplySortingLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	organic := 600.0
	inorganic := 350.0
	sorted, err := s.ApplySorting(ctx, validate.SortingInput{
		TruckID:         created.ID,
		OrganicWeight:   &organic,
		InorganicWeight: &inorganic,
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusSorted, sorted.Status)
	assert.Equal(t, 950.0, sorted.TotalProcessed)
	assert.Equal(t, 50.0, sorted.Difference)
	assert.Equal(t, []model.WasteItem{
		{CategoryID: model.CategoryOrganic, Weight: 600},
		{CategoryID: model.CategoryInorganic, Weight: 350},
	}, sorted.WasteItems)
	assert.Equal(t, 600.0, sorted.OrganicWeight)
	assert.Equal(t, 350.0, sorted.InorganicWeight)
	require.NotNil(t, sorted.SortingDate)

	unsorted, err := s.ListTrucks(ctx, model.StatusAwaitingSorting)
	require.NoError(t, err)
	assert.Empty(t, unsorted)
}

func TestApplySortingCategoryList(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	sorted, err := s.ApplySorting(ctx, validate.SortingInput{
		TruckID: created.ID,
		WasteItems: []validate.SortingItem{
			{CategoryID: "paper", Weight: 400},
			{CategoryID: model.CategoryOrganic, Weight: 500},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 900.0, sorted.TotalProcessed)
	assert.Equal(t, 100.0, sorted.Difference)
	// Only the organic/inorganic entries mirror into the legacy fields.
	assert.Equal(t, 500.0, sorted.OrganicWeight)
	assert.Zero(t, sorted.InorganicWeight)
}

func TestApplySortingNegativeWeightRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	organic := -5.0
	inorganic := 0.0
	_, err = s.ApplySorting(ctx, validate.SortingInput{
		TruckID:         created.ID,
		OrganicWeight:   &organic,
		InorganicWeight: &inorganic,
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	record, err := s.GetTruck(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAwaitingSorting, record.Status, "rejected sorting must not transition the record")
}

func TestApplySortingUnknownTruck(t *testing.T) {
	s := newTestService(kvstore.NewMemory())
	organic := 10.0
	inorganic := 0.0
	_, err := s.ApplySorting(context.Background(), validate.SortingInput{
		TruckID:         "missing",
		OrganicWeight:   &organic,
		InorganicWeight: &inorganic,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplySortingTwiceRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	organic := 600.0
	inorganic := 350.0
	input := validate.SortingInput{TruckID: created.ID, OrganicWeight: &organic, InorganicWeight: &inorganic}
	_, err = s.ApplySorting(ctx, input)
	require.NoError(t, err)

	_, err = s.ApplySorting(ctx, input)
	assert.ErrorIs(t, err, ErrAlreadySorted)
}

func TestDeleteTruckIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	require.NoError(t, s.DeleteTruck(ctx, created.ID))
	require.NoError(t, s.DeleteTruck(ctx, created.ID), "deleting a missing id is a no-op")

	trucks, err := s.ListTrucks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, trucks)
}

func TestFailedSaveLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Store: kvstore.NewMemory()}
	s := newTestService(kv)

	_, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)

	kv.failWrites = true
	other := entryInput()
	other.PlateNumber = "D 5678 XY"
	_, err = s.CreateEntry(ctx, other)
	require.Error(t, err)

	kv.failWrites = false
	trucks, err := s.ListTrucks(ctx, "")
	require.NoError(t, err)
	require.Len(t, trucks, 1, "failed persist must not leave a partial collection")
	assert.Equal(t, "B 1234 ABC", trucks[0].PlateNumber)
}

func TestTotals(t *testing.T) {
	ctx := context.Background()
	s := newTestService(kvstore.NewMemory())

	created, err := s.CreateEntry(ctx, entryInput())
	require.NoError(t, err)
	organic := 600.0
	inorganic := 350.0
	_, err = s.ApplySorting(ctx, validate.SortingInput{TruckID: created.ID, OrganicWeight: &organic, InorganicWeight: &inorganic})
	require.NoError(t, err)

	other := entryInput()
	other.PlateNumber = "D 5678 XY"
	_, err = s.CreateEntry(ctx, other)
	require.NoError(t, err)

	totals, err := s.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, totals.TotalInitial)
	assert.Equal(t, 950.0, totals.TotalProcessed)
	assert.Equal(t, 1050.0, totals.TotalDifference)
}
