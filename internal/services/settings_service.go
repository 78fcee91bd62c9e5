package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"promptdeck/internal/models"
	"promptdeck/internal/repositories"
)

// exportVersion tags every settings export payload.
const exportVersion = "1.0.0"

// SettingsService is the sole owner of the persisted settings record. Every
// mutating operation persists synchronously before returning; the returned
// record is the durable truth.
type SettingsService interface {
	Init(repo repositories.SettingsRepository) error
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, updates map[string]any) (*models.AppSettings, error)
	UpdateProvider(ctx context.Context, provider string, updates map[string]any) (*models.AppSettings, error)
	Reset(ctx context.Context) (*models.AppSettings, error)
	Export(ctx context.Context) (*models.SettingsExport, error)
	Import(ctx context.Context, data string) (*models.AppSettings, error)
	GetAPIKey(ctx context.Context, provider string) (*string, error)
	SetAPIKey(ctx context.Context, provider string, apiKey *string) (*models.AppSettings, error)
}

type settingsService struct {
	mu      sync.Mutex
	repo    repositories.SettingsRepository
	keyring *KeyringService
}

// NewSettingsService builds an unbound store; Init must run before any other
// operation. keyring may be nil, in which case API keys are not mirrored to
// the OS keychain.
func NewSettingsService(keyring *KeyringService) SettingsService {
	return &settingsService{keyring: keyring}
}

// Init binds the store to its persistence backend. Rebinding is allowed.
func (s *settingsService) Init(repo repositories.SettingsRepository) error {
	if repo == nil {
		return fmt.Errorf("%w: no repository", models.ErrStorageInit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = repo
	return nil
}

// load returns the current record, materializing defaults when nothing has
// been persisted yet. Callers must hold s.mu.
func (s *settingsService) load(ctx context.Context) (*models.AppSettings, error) {
	if s.repo == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return models.DefaultAppSettings(), nil
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *settingsService) Update(ctx context.Context, updates map[string]any) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for key, value := range updates {
		switch key {
		case "theme":
			if v, ok := coerceString(value); ok && models.ThemeMode(v).Valid() {
				settings.Theme = models.ThemeMode(v)
			}
		case "sidebar_width":
			if v, ok := coerceUint32(value); ok {
				settings.SidebarWidth = v
			}
		case "auto_save_interval":
			if v, ok := coerceUint32(value); ok {
				settings.AutoSaveInterval = v
			}
		case "default_temperature":
			if v, ok := coerceFloat32(value); ok {
				settings.DefaultTemperature = v
			}
		case "default_max_tokens":
			if v, ok := coerceUint32(value); ok {
				settings.DefaultMaxTokens = v
			}
		case "enable_analytics":
			if v, ok := coerceBool(value); ok {
				settings.EnableAnalytics = v
			}
		case "debug_mode":
			if v, ok := coerceBool(value); ok {
				settings.DebugMode = v
			}
		case "compact_mode":
			if v, ok := coerceBool(value); ok {
				settings.CompactMode = v
			}
		default:
			// Unknown fields are ignored for forward compatibility.
		}
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateProvider(ctx context.Context, provider string, updates map[string]any) (*models.AppSettings, error) {
	settings, mirror, err := s.updateProviderLocked(ctx, provider, updates)
	if err != nil {
		return nil, err
	}
	if mirror != nil {
		s.mirrorAPIKey(provider, mirror.apiKey)
	}
	return settings, nil
}

func (s *settingsService) updateProviderLocked(ctx context.Context, provider string, updates map[string]any) (*models.AppSettings, *keyMirror, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	var mirror *keyMirror

	// Unknown providers never grow the key set; the record is persisted as-is.
	if cfg, ok := settings.Providers[provider]; ok {
		for key, value := range updates {
			switch key {
			case "enabled":
				if v, ok := coerceBool(value); ok {
					cfg.Enabled = v
				}
			case "api_key":
				if v, ok := coerceString(value); ok {
					cfg.APIKey = optionalString(v)
					mirror = &keyMirror{apiKey: cfg.APIKey}
				}
			case "custom_endpoint":
				if v, ok := coerceString(value); ok {
					cfg.CustomEndpoint = optionalString(v)
				}
			case "default_model":
				if v, ok := coerceString(value); ok {
					cfg.DefaultModel = optionalString(v)
				}
			case "rate_limit_rpm":
				if v, ok := coerceUint32(value); ok {
					limit := v
					cfg.RateLimitRPM = &limit
				}
			}
		}
		settings.Providers[provider] = cfg
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, nil, err
	}
	return settings, mirror, nil
}

func (s *settingsService) Reset(ctx context.Context) (*models.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil, models.ErrStoreNotInitialized
	}
	settings := models.DefaultAppSettings()
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Export(ctx context.Context) (*models.SettingsExport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SettingsExport{
		Version:   exportVersion,
		ExportID:  uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings.ToExport(),
	}, nil
}

func (s *settingsService) Import(ctx context.Context, data string) (*models.AppSettings, error) {
	export, err := parseSettingsExport(data)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	settings.Theme = export.Settings.Theme
	settings.SidebarWidth = export.Settings.SidebarWidth
	settings.AutoSaveInterval = export.Settings.AutoSaveInterval
	settings.DefaultTemperature = export.Settings.DefaultTemperature
	settings.DefaultMaxTokens = export.Settings.DefaultMaxTokens
	settings.EnableAnalytics = export.Settings.EnableAnalytics
	settings.DebugMode = export.Settings.DebugMode
	settings.CompactMode = export.Settings.CompactMode

	// Provider sections merge into existing keys only, and the local API key
	// always survives the import.
	for name, imported := range export.Settings.Providers {
		cfg, ok := settings.Providers[name]
		if !ok {
			continue
		}
		cfg.CustomEndpoint = imported.CustomEndpoint
		cfg.DefaultModel = imported.DefaultModel
		cfg.RateLimitRPM = imported.RateLimitRPM
		cfg.Enabled = imported.Enabled
		settings.Providers[name] = cfg
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Shadow shapes for import parsing. Pointer fields distinguish "absent" from
// zero values so a structurally incomplete payload is rejected instead of
// zero-filling the persisted record.
type importExportFile struct {
	Version   *string                `json:"version"`
	Timestamp *string                `json:"timestamp"`
	Settings  *importSettingsPayload `json:"settings"`
}

type importSettingsPayload struct {
	Providers map[string]importProviderPayload `json:"providers"`

	Theme              *models.ThemeMode `json:"theme"`
	SidebarWidth       *uint32           `json:"sidebar_width"`
	AutoSaveInterval   *uint32           `json:"auto_save_interval"`
	DefaultTemperature *float32          `json:"default_temperature"`
	DefaultMaxTokens   *uint32           `json:"default_max_tokens"`
	EnableAnalytics    *bool             `json:"enable_analytics"`
	DebugMode          *bool             `json:"debug_mode"`
	CompactMode        *bool             `json:"compact_mode"`
}

type importProviderPayload struct {
	CustomEndpoint *string `json:"custom_endpoint"`
	DefaultModel   *string `json:"default_model"`
	RateLimitRPM   *uint32 `json:"rate_limit_rpm"`
	Enabled        *bool   `json:"enabled"`
}

// parseSettingsExport parses and validates an export payload. Every required
// field must be present; only the optional per-provider strings may be absent.
func parseSettingsExport(data string) (*models.SettingsExport, error) {
	var raw importExportFile
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrImportParse, err)
	}
	if raw.Version == nil || raw.Timestamp == nil || raw.Settings == nil {
		return nil, fmt.Errorf("%w: not a settings export", models.ErrImportParse)
	}

	payload := raw.Settings
	if payload.Providers == nil ||
		payload.Theme == nil || !payload.Theme.Valid() ||
		payload.SidebarWidth == nil || payload.AutoSaveInterval == nil ||
		payload.DefaultTemperature == nil || payload.DefaultMaxTokens == nil ||
		payload.EnableAnalytics == nil || payload.DebugMode == nil || payload.CompactMode == nil {
		return nil, fmt.Errorf("%w: incomplete settings payload", models.ErrImportParse)
	}

	providers := make(map[string]models.ProviderSettingsExport, len(payload.Providers))
	for name, provider := range payload.Providers {
		if provider.Enabled == nil {
			return nil, fmt.Errorf("%w: incomplete provider entry %q", models.ErrImportParse, name)
		}
		providers[name] = models.ProviderSettingsExport{
			CustomEndpoint: provider.CustomEndpoint,
			DefaultModel:   provider.DefaultModel,
			RateLimitRPM:   provider.RateLimitRPM,
			Enabled:        *provider.Enabled,
		}
	}

	return &models.SettingsExport{
		Version:   *raw.Version,
		Timestamp: *raw.Timestamp,
		Settings: models.AppSettingsExport{
			Providers:          providers,
			Theme:              *payload.Theme,
			SidebarWidth:       *payload.SidebarWidth,
			AutoSaveInterval:   *payload.AutoSaveInterval,
			DefaultTemperature: *payload.DefaultTemperature,
			DefaultMaxTokens:   *payload.DefaultMaxTokens,
			EnableAnalytics:    *payload.EnableAnalytics,
			DebugMode:          *payload.DebugMode,
			CompactMode:        *payload.CompactMode,
		},
	}, nil
}

func (s *settingsService) GetAPIKey(ctx context.Context, provider string) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	cfg, ok := settings.Providers[provider]
	if !ok {
		return nil, nil
	}
	return cfg.APIKey, nil
}

func (s *settingsService) SetAPIKey(ctx context.Context, provider string, apiKey *string) (*models.AppSettings, error) {
	settings, mirror, err := s.setAPIKeyLocked(ctx, provider, apiKey)
	if err != nil {
		return nil, err
	}
	if mirror != nil {
		s.mirrorAPIKey(provider, mirror.apiKey)
	}
	return settings, nil
}

func (s *settingsService) setAPIKeyLocked(ctx context.Context, provider string, apiKey *string) (*models.AppSettings, *keyMirror, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	var mirror *keyMirror
	if cfg, ok := settings.Providers[provider]; ok {
		cfg.APIKey = apiKey
		settings.Providers[provider] = cfg
		mirror = &keyMirror{apiKey: apiKey}
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, nil, err
	}
	return settings, mirror, nil
}

// keyMirror records a credential change to write through to the OS keychain
// once the record guard is released and the record has been persisted.
type keyMirror struct {
	apiKey *string
}

// mirrorAPIKey writes the credential through to the OS keychain. It runs
// outside the record guard since the keychain can block on a user prompt;
// the settings record stays authoritative and failures are logged, never
// surfaced.
func (s *settingsService) mirrorAPIKey(provider string, apiKey *string) {
	if s.keyring == nil {
		return
	}
	var err error
	if apiKey == nil || *apiKey == "" {
		err = s.keyring.DeleteAPIKey(provider)
	} else {
		err = s.keyring.StoreAPIKey(provider, []byte(*apiKey))
	}
	if err != nil {
		log.Printf("settings: keychain mirror for %s failed: %v", provider, err)
	}
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func coerceString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func coerceBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// coerceUint32 accepts the numeric shapes JSON decoding produces alongside
// native Go ints passed by backend callers.
func coerceUint32(v any) (uint32, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
			return 0, false
		}
		return uint32(n), true
	case int:
		if n < 0 || int64(n) > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case uint32:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return coerceUint32(f)
	default:
		return 0, false
	}
}

func coerceFloat32(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case int:
		return float32(n), true
	case float32:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return float32(f), true
	default:
		return 0, false
	}
}
