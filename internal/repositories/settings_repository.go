package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"promptdeck/internal/models"
)

// settingsDocumentName is the one logical key the settings store owns.
const settingsDocumentName = "settings"

// SettingsRepository persists the settings record as a single named JSON
// document. Load returns (nil, nil) when no document has been saved yet; the
// service materializes defaults in that case.
type SettingsRepository interface {
	Load(ctx context.Context) (*models.AppSettings, error)
	Save(ctx context.Context, settings *models.AppSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Load(ctx context.Context) (*models.AppSettings, error) {
	var doc models.SettingsDocument
	if err := r.db.WithContext(ctx).First(&doc, "name = ?", settingsDocumentName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var settings models.AppSettings
	if err := json.Unmarshal([]byte(doc.Data), &settings); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrDeserialization, err)
	}
	return &settings, nil
}

func (r *settingsRepository) Save(ctx context.Context, settings *models.AppSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrSerialization, err)
	}
	doc := models.SettingsDocument{
		Name: settingsDocumentName,
		Data: string(data),
	}
	return r.db.WithContext(ctx).Save(&doc).Error
}
