package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"waste-bi-backend/internal/kvstore"
	"waste-bi-backend/internal/model"
)

// Storage layout, kept bit-compatible with the legacy dashboard blobs.
const (
	TrucksKey   = "waste-bi-trucks"
	VersionKey  = "waste-bi-trucks_version"
	SettingsKey = "waste-bi-settings"
	DataVersion = "1.0.0"
)

// TruckRepository persists the whole truck collection as a single JSON blob
// under a fixed key. Every mutation is a full read-modify-write of the blob.
type TruckRepository struct {
	kv  kvstore.Store
	log zerolog.Logger
}

func NewTruckRepository(kv kvstore.Store, log zerolog.Logger) *TruckRepository {
	return &TruckRepository{kv: kv, log: log}
}

// Load reads the full collection. A missing key is an empty collection, not
// an error.
func (r *TruckRepository) Load(ctx context.Context) ([]model.TruckRecord, error) {
	raw, ok, err := r.kv.Get(ctx, TrucksKey)
	if err != nil {
		return nil, fmt.Errorf("load trucks: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var trucks []model.TruckRecord
	if err := json.Unmarshal(raw, &trucks); err != nil {
		return nil, fmt.Errorf("decode trucks blob: %w", err)
	}
	return trucks, nil
}

// Save rewrites the full collection. The write is all-or-nothing: on failure
// the stored blob is unchanged and the error surfaces to the caller.
func (r *TruckRepository) Save(ctx context.Context, trucks []model.TruckRecord) error {
	if trucks == nil {
		trucks = []model.TruckRecord{}
	}
	raw, err := json.Marshal(trucks)
	if err != nil {
		return fmt.Errorf("encode trucks blob: %w", err)
	}
	if err := r.kv.Set(ctx, TrucksKey, raw); err != nil {
		return fmt.Errorf("save trucks: %w", err)
	}
	return nil
}

// Clear drops the collection and its version marker.
func (r *TruckRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, TrucksKey); err != nil {
		return fmt.Errorf("clear trucks: %w", err)
	}
	return nil
}

// Migrate brings stored data up to the current schema version. Legacy records
// carrying only the flat organic/inorganic pair are rewritten to the
// canonical wasteItems shape with recomputed totals.
func (r *TruckRepository) Migrate(ctx context.Context) error {
	raw, ok, err := r.kv.Get(ctx, VersionKey)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if ok && string(raw) == DataVersion {
		return nil
	}

	trucks, err := r.Load(ctx)
	if err != nil {
		return err
	}

	migrated := 0
	for i := range trucks {
		if normalizeLegacyRecord(&trucks[i]) {
			migrated++
		}
	}
	if migrated > 0 {
		if err := r.Save(ctx, trucks); err != nil {
			return err
		}
	}

	if err := r.kv.Set(ctx, VersionKey, []byte(DataVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	r.log.Info().
		Str("version", DataVersion).
		Int("migrated", migrated).
		Msg("truck data schema up to date")
	return nil
}

// normalizeLegacyRecord synthesizes wasteItems for a sorted record that still
// uses the flat two-field shape. Reports whether the record changed.
func normalizeLegacyRecord(truck *model.TruckRecord) bool {
	if truck.Status != model.StatusSorted || len(truck.WasteItems) > 0 {
		return false
	}
	if truck.OrganicWeight <= 0 && truck.InorganicWeight <= 0 {
		return false
	}

	if truck.OrganicWeight > 0 {
		truck.WasteItems = append(truck.WasteItems, model.WasteItem{
			CategoryID: model.CategoryOrganic,
			Weight:     truck.OrganicWeight,
		})
	}
	if truck.InorganicWeight > 0 {
		truck.WasteItems = append(truck.WasteItems, model.WasteItem{
			CategoryID: model.CategoryInorganic,
			Weight:     truck.InorganicWeight,
		})
	}
	truck.TotalProcessed = truck.OrganicWeight + truck.InorganicWeight
	truck.Difference = truck.InitialWeight - truck.TotalProcessed
	return true
}
