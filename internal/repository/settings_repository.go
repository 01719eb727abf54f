package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"waste-bi-backend/internal/kvstore"
	"waste-bi-backend/internal/model"
)

// SettingsRepository stores the operator preferences under their own key,
// independent of truck data.
type SettingsRepository struct {
	kv kvstore.Store
}

func NewSettingsRepository(kv kvstore.Store) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

// Load returns the stored settings, or the defaults when none are stored.
func (r *SettingsRepository) Load(ctx context.Context) (model.Settings, error) {
	raw, ok, err := r.kv.Get(ctx, SettingsKey)
	if err != nil {
		return model.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return model.DefaultSettings(), nil
	}

	var settings model.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings blob: %w", err)
	}
	return settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings model.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings blob: %w", err)
	}
	if err := r.kv.Set(ctx, SettingsKey, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
