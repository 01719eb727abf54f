package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"waste-bi-backend/internal/model"
	"waste-bi-backend/internal/repository"
	"waste-bi-backend/internal/stats"
	"waste-bi-backend/internal/validate"
)

// TruckService implements the record lifecycle: entry, sorting, deletion,
// and the roll-up into facility statistics. It holds no record state of its
// own; every operation loads the collection from the repository and either
// persists the updated collection in full or leaves the store untouched.
type TruckService struct {
	repo     *repository.TruckRepository
	settings *repository.SettingsRepository
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

func NewTruckService(repo *repository.TruckRepository, settings *repository.SettingsRepository, log zerolog.Logger) *TruckService {
	return &TruckService{
		repo:     repo,
		settings: settings,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateEntry records a truck's arrival. The plate is normalized before the
// duplicate check, so casing and whitespace variants of the same plate on the
// same calendar day are rejected.
func (s *TruckService) CreateEntry(ctx context.Context, input validate.EntryInput) (*model.TruckRecord, error) {
	now := s.now()
	if result := validate.Entry(input, now); !result.Valid {
		return nil, &ValidationError{Fields: result.Errors}
	}

	plate := validate.NormalizePlate(input.PlateNumber)
	entryDate, err := time.ParseInLocation("2006-01-02", input.EntryDate, now.Location())
	if err != nil {
		return nil, &ValidationError{Fields: []validate.FieldError{
			{Field: validate.FieldDate, Message: "Tanggal masuk tidak valid"},
		}}
	}

	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	entryDay := entryDate.Format("2006-01-02")
	for _, truck := range trucks {
		if truck.PlateNumber == plate && truck.EntryDay() == entryDay {
			return nil, ErrDuplicateEntry
		}
	}

	record := model.TruckRecord{
		ID:            s.newID(),
		PlateNumber:   plate,
		InitialWeight: input.InitialWeight,
		EntryDate:     entryDate,
		Status:        model.StatusAwaitingSorting,
	}

	if err := s.repo.Save(ctx, append(trucks, record)); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("truck_id", record.ID).
		Str("plate", record.PlateNumber).
		Float64("initial_weight", record.InitialWeight).
		Msg("truck entry recorded")
	return &record, nil
}

// ApplySorting records the weighed category breakdown of a truck's load and
// transitions the record to sorted. Re-sorting an already-sorted record is
// rejected; correcting a load means deleting and re-entering the truck.
func (s *TruckService) ApplySorting(ctx context.Context, input validate.SortingInput) (*model.TruckRecord, error) {
	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	target := -1
	for i := range trucks {
		if trucks[i].ID == input.TruckID {
			target = i
			break
		}
	}
	if target == -1 {
		return nil, ErrNotFound
	}
	if trucks[target].Sorted() {
		return nil, ErrAlreadySorted
	}

	if result := validate.Sorting(input, trucks[target].InitialWeight); !result.Valid {
		return nil, &ValidationError{Fields: result.Errors}
	}

	items := canonicalItems(input)
	totalProcessed := 0.0
	organic := 0.0
	inorganic := 0.0
	for _, item := range items {
		totalProcessed += item.Weight
		switch item.CategoryID {
		case model.CategoryOrganic:
			organic = item.Weight
		case model.CategoryInorganic:
			inorganic = item.Weight
		}
	}

	sortingDate := s.now()
	trucks[target].WasteItems = items
	trucks[target].OrganicWeight = organic
	trucks[target].InorganicWeight = inorganic
	trucks[target].TotalProcessed = totalProcessed
	trucks[target].Difference = trucks[target].InitialWeight - totalProcessed
	trucks[target].SortingDate = &sortingDate
	trucks[target].Status = model.StatusSorted

	if err := s.repo.Save(ctx, trucks); err != nil {
		return nil, err
	}

	record := trucks[target]
	s.log.Info().
		Str("truck_id", record.ID).
		Float64("total_processed", record.TotalProcessed).
		Float64("difference", record.Difference).
		Msg("truck sorting recorded")
	return &record, nil
}

// canonicalItems normalizes whichever input shape was supplied into the
// wasteItems list. Legacy pairs only yield entries for positive weights.
func canonicalItems(input validate.SortingInput) []model.WasteItem {
	if len(input.WasteItems) > 0 {
		items := make([]model.WasteItem, 0, len(input.WasteItems))
		for _, item := range input.WasteItems {
			items = append(items, model.WasteItem{CategoryID: item.CategoryID, Weight: item.Weight})
		}
		return items
	}

	var items []model.WasteItem
	if input.OrganicWeight != nil && *input.OrganicWeight > 0 {
		items = append(items, model.WasteItem{CategoryID: model.CategoryOrganic, Weight: *input.OrganicWeight})
	}
	if input.InorganicWeight != nil && *input.InorganicWeight > 0 {
		items = append(items, model.WasteItem{CategoryID: model.CategoryInorganic, Weight: *input.InorganicWeight})
	}
	return items
}

// DeleteTruck removes the record permanently. Deleting an unknown id is a
// no-op.
func (s *TruckService) DeleteTruck(ctx context.Context, id string) error {
	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	kept := trucks[:0]
	removed := false
	for _, truck := range trucks {
		if truck.ID == id {
			removed = true
			continue
		}
		kept = append(kept, truck)
	}
	if !removed {
		return nil
	}

	if err := s.repo.Save(ctx, kept); err != nil {
		return err
	}
	s.log.Info().Str("truck_id", id).Msg("truck deleted")
	return nil
}

// ClearAll drops every record.
func (s *TruckService) ClearAll(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.log.Warn().Msg("all truck data cleared")
	return nil
}

// ListTrucks returns records, optionally filtered by status. An empty status
// returns everything.
func (s *TruckService) ListTrucks(ctx context.Context, status model.TruckStatus) ([]model.TruckRecord, error) {
	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return trucks, nil
	}

	filtered := make([]model.TruckRecord, 0, len(trucks))
	for _, truck := range trucks {
		if truck.Status == status {
			filtered = append(filtered, truck)
		}
	}
	return filtered, nil
}

// GetTruck returns one record by id.
func (s *TruckService) GetTruck(ctx context.Context, id string) (*model.TruckRecord, error) {
	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range trucks {
		if trucks[i].ID == id {
			return &trucks[i], nil
		}
	}
	return nil, ErrNotFound
}

// Totals recomputes the facility-wide statistics from scratch.
func (s *TruckService) Totals(ctx context.Context) (*model.TotalStats, error) {
	trucks, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	totals := stats.ComputeTotals(trucks, s.now())
	return &totals, nil
}

// GetSettings returns the stored operator preferences.
func (s *TruckService) GetSettings(ctx context.Context) (model.Settings, error) {
	return s.settings.Load(ctx)
}

// UpdateSettings replaces the stored operator preferences.
func (s *TruckService) UpdateSettings(ctx context.Context, settings model.Settings) error {
	return s.settings.Save(ctx, settings)
}
