package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"promptdeck/internal/database"
	"promptdeck/internal/events"
	"promptdeck/internal/models"
	"promptdeck/internal/repositories"
	"promptdeck/internal/services"
)

// App struct
type App struct {
	ctx context.Context
	svc *services.Services
	db  *gorm.DB

	dbClose func() error

	dialogMu   sync.Mutex
	dialogOpen bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	events.EnableRuntimeEmitter()

	db, err := database.Init(database.Config{
		LogLevel: logger.Info,
	})
	if err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to open database: %v", err))
		return
	}

	svc, err := services.NewServices(db)
	if err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to wire services: %v", err))
		return
	}
	if err := svc.Metadata.Startup(ctx); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to load provider catalog: %v", err))
	}
	a.svc = svc
	a.db = db

	// Capture DB close for graceful shutdown
	if sqlDB, err := db.DB(); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to get sql.DB: %v", err))
	} else {
		a.dbClose = sqlDB.Close
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

// InitSettings binds the settings store to the persistence backend. Startup
// already binds it, so calls from the frontend are idempotent rebinds.
func (a *App) InitSettings() error {
	if a.svc == nil || a.db == nil {
		return fmt.Errorf("%w: database unavailable", models.ErrStorageInit)
	}
	return a.svc.Settings.Init(repositories.NewSettingsRepository(a.db))
}

// GetSettings returns the current settings record
func (a *App) GetSettings() (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	return a.svc.Settings.Get(a.ctx)
}

// UpdateSettings applies a partial update and broadcasts the result
func (a *App) UpdateSettings(updates map[string]any) (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := a.svc.Settings.Update(a.ctx, updates)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to update settings: %v", err))
		return nil, err
	}
	a.emitUpdated(settings)
	return settings, nil
}

// UpdateProviderSettings applies a partial update scoped to one provider
func (a *App) UpdateProviderSettings(provider string, updates map[string]any) (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := a.svc.Settings.UpdateProvider(a.ctx, provider, updates)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to update provider settings: %v", err))
		return nil, err
	}
	a.emitUpdated(settings)
	return settings, nil
}

// ResetSettings restores the default record
func (a *App) ResetSettings() (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := a.svc.Settings.Reset(a.ctx)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to reset settings: %v", err))
		return nil, err
	}
	a.emitUpdated(settings)
	a.notifySuccess("Settings have been reset to default")
	return settings, nil
}

// ExportSettings returns the export payload as pretty-printed JSON text
func (a *App) ExportSettings() (string, error) {
	if a.svc == nil {
		return "", models.ErrStoreNotInitialized
	}
	export, err := a.svc.Settings.Export(a.ctx)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to export settings: %v", err))
		return "", err
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", models.ErrSerialization, err)
		a.notifyError(fmt.Sprintf("Failed to export settings: %v", wrapped))
		return "", wrapped
	}
	a.notifySuccess("Settings exported successfully")
	return string(data), nil
}

// ImportSettings merges an export payload into the current record
func (a *App) ImportSettings(data string) (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := a.svc.Settings.Import(a.ctx, data)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to import settings: %v", err))
		return nil, err
	}
	a.emitUpdated(settings)
	a.notifySuccess("Settings imported successfully")
	return settings, nil
}

// GetApiKey returns the stored API key for a provider, nil if absent
func (a *App) GetApiKey(provider string) (*string, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	return a.svc.Settings.GetAPIKey(a.ctx, provider)
}

// SetApiKey stores or clears the API key for a provider
func (a *App) SetApiKey(provider string, apiKey *string) (*models.AppSettings, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := a.svc.Settings.SetAPIKey(a.ctx, provider, apiKey)
	if err != nil {
		a.notifyError(fmt.Sprintf("Failed to update API key: %v", err))
		return nil, err
	}
	a.emitUpdated(settings)
	a.notifySuccess(fmt.Sprintf("API key updated for %s", provider))
	return settings, nil
}

// TestProviderConnection runs the stubbed connection check, broadcasting
// started/completed/failed events around it
func (a *App) TestProviderConnection(provider string, cfg models.ProviderSettings) (bool, error) {
	if a.svc == nil {
		return false, models.ErrStoreNotInitialized
	}

	events.Emit(a.ctx, events.ProviderTestStarted,
		events.NewInfo("Connection test started").WithProvider(provider))

	ok, err := a.svc.Connections.TestProvider(a.ctx, provider, cfg)
	if err != nil {
		events.Emit(a.ctx, events.ProviderTestFailed,
			events.NewError(err.Error()).WithProvider(provider))
		a.notifyError(fmt.Sprintf("%s connection test error: %v", provider, err))
		return false, err
	}

	if ok {
		events.Emit(a.ctx, events.ProviderTestCompleted,
			events.NewSuccess("Connection test passed").WithProvider(provider).WithSuccess(true))
		a.notifySuccess(fmt.Sprintf("%s connection test successful", provider))
	} else {
		events.Emit(a.ctx, events.ProviderTestCompleted,
			events.NewError("Connection test failed").WithProvider(provider).WithSuccess(false))
		a.notifyError(fmt.Sprintf("%s connection test failed", provider))
	}
	return ok, nil
}

// GetProviderMetadata returns the static provider catalog
func (a *App) GetProviderMetadata() (map[string]models.ProviderMetadata, error) {
	if a.svc == nil {
		return nil, models.ErrStoreNotInitialized
	}
	return a.svc.Metadata.GetProviderMetadata(), nil
}

// OpenSettingsDialog presents the settings UI. Wails runs a single window,
// so "open" focuses the window and tells the frontend to raise its modal.
func (a *App) OpenSettingsDialog() error {
	a.dialogMu.Lock()
	defer a.dialogMu.Unlock()

	runtime.WindowShow(a.ctx)
	if a.dialogOpen {
		return nil
	}
	a.dialogOpen = true
	events.Emit(a.ctx, events.SettingsDialogOpen, events.NewInfo("Settings dialog opened"))
	return nil
}

// CloseSettingsDialog dismisses the settings UI
func (a *App) CloseSettingsDialog() error {
	a.dialogMu.Lock()
	defer a.dialogMu.Unlock()

	if !a.dialogOpen {
		return nil
	}
	a.dialogOpen = false
	events.Emit(a.ctx, events.SettingsDialogClose, events.NewInfo("Settings dialog closed"))
	return nil
}

// IsSettingsDialogOpen reports whether the settings UI is showing
func (a *App) IsSettingsDialogOpen() bool {
	a.dialogMu.Lock()
	defer a.dialogMu.Unlock()
	return a.dialogOpen
}

func (a *App) emitUpdated(settings *models.AppSettings) {
	events.Emit(a.ctx, events.SettingsUpdated,
		events.NewSuccess("Settings updated").WithPayload(settings))
}

func (a *App) notifySuccess(message string) {
	events.Emit(a.ctx, events.SettingsNotice, events.NewSuccess(message))
}

func (a *App) notifyError(message string) {
	events.Emit(a.ctx, events.SettingsNotice, events.NewError(message))
}
