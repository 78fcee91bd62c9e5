package mocks

import (
	"context"

	"promptdeck/internal/models"
)

type SettingsRepositoryMock struct {
	LoadFunc func(ctx context.Context) (*models.AppSettings, error)
	SaveFunc func(ctx context.Context, settings *models.AppSettings) error
}

func (m *SettingsRepositoryMock) Load(ctx context.Context) (*models.AppSettings, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return nil, nil
}

func (m *SettingsRepositoryMock) Save(ctx context.Context, settings *models.AppSettings) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, settings)
	}
	return nil
}

// InMemorySettingsRepository keeps the record in memory so tests can exercise
// full read-modify-write cycles without a database.
type InMemorySettingsRepository struct {
	Settings *models.AppSettings
	Saves    int
}

func (m *InMemorySettingsRepository) Load(ctx context.Context) (*models.AppSettings, error) {
	if m.Settings == nil {
		return nil, nil
	}
	return m.Settings.Clone(), nil
}

func (m *InMemorySettingsRepository) Save(ctx context.Context, settings *models.AppSettings) error {
	m.Settings = settings.Clone()
	m.Saves++
	return nil
}
