package services

import (
	"gorm.io/gorm"

	"promptdeck/internal/repositories"
)

// Services aggregates the settings-facing services wired at startup.
type Services struct {
	Settings    SettingsService
	Connections ConnectionService
	Metadata    MetadataService
	Keyring     *KeyringService
}

// NewServices constructs the service container. The settings store is bound
// to its repository immediately; re-binding through InitSettings stays legal.
func NewServices(db *gorm.DB) (*Services, error) {
	keyringService := NewKeyringService()
	settings := NewSettingsService(keyringService)
	if err := settings.Init(repositories.NewSettingsRepository(db)); err != nil {
		return nil, err
	}

	return &Services{
		Settings:    settings,
		Connections: NewConnectionService(),
		Metadata:    NewMetadataService(),
		Keyring:     keyringService,
	}, nil
}
