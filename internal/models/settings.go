package models

// ThemeMode is the UI theme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Valid reports whether the theme is one of the supported modes.
func (t ThemeMode) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// ProviderSettings holds the per-provider configuration owned by AppSettings.
// Optional fields use pointers so "not configured" survives serialization.
type ProviderSettings struct {
	APIKey         *string `json:"api_key,omitempty"`
	CustomEndpoint *string `json:"custom_endpoint,omitempty"`
	DefaultModel   *string `json:"default_model,omitempty"`
	RateLimitRPM   *uint32 `json:"rate_limit_rpm,omitempty"`
	Enabled        bool    `json:"enabled"`
}

// AppSettings is the persisted configuration singleton. Provider keys are a
// closed set seeded by DefaultAppSettings; updates never add or remove keys.
type AppSettings struct {
	Providers map[string]ProviderSettings `json:"providers"`

	Theme            ThemeMode `json:"theme"`
	SidebarWidth     uint32    `json:"sidebar_width"`
	AutoSaveInterval uint32    `json:"auto_save_interval"`

	DefaultTemperature float32 `json:"default_temperature"`
	DefaultMaxTokens   uint32  `json:"default_max_tokens"`

	EnableAnalytics bool `json:"enable_analytics"`
	DebugMode       bool `json:"debug_mode"`
	CompactMode     bool `json:"compact_mode"`
}

// SettingsExport is the versioned, export-safe snapshot handed to the user.
// Provider credentials are structurally absent from the payload.
type SettingsExport struct {
	Version   string            `json:"version"`
	ExportID  string            `json:"export_id"`
	Timestamp string            `json:"timestamp"`
	Settings  AppSettingsExport `json:"settings"`
}

type AppSettingsExport struct {
	Providers map[string]ProviderSettingsExport `json:"providers"`

	Theme            ThemeMode `json:"theme"`
	SidebarWidth     uint32    `json:"sidebar_width"`
	AutoSaveInterval uint32    `json:"auto_save_interval"`

	DefaultTemperature float32 `json:"default_temperature"`
	DefaultMaxTokens   uint32  `json:"default_max_tokens"`

	EnableAnalytics bool `json:"enable_analytics"`
	DebugMode       bool `json:"debug_mode"`
	CompactMode     bool `json:"compact_mode"`
}

// ProviderSettingsExport deliberately has no api_key field.
type ProviderSettingsExport struct {
	CustomEndpoint *string `json:"custom_endpoint,omitempty"`
	DefaultModel   *string `json:"default_model,omitempty"`
	RateLimitRPM   *uint32 `json:"rate_limit_rpm,omitempty"`
	Enabled        bool    `json:"enabled"`
}

// ProviderMetadata is a static catalog entry describing a known provider.
type ProviderMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Models      []string `json:"models"`
}

// DefaultAppSettings builds the canonical default record. It is the single
// source of truth for the "no data yet" and "explicit reset" states.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Providers: map[string]ProviderSettings{
			"openai": {
				DefaultModel: strptr("gpt-4o"),
				RateLimitRPM: uint32ptr(60),
				Enabled:      true,
			},
			"anthropic": {
				DefaultModel: strptr("claude-sonnet-4-20250514"),
				RateLimitRPM: uint32ptr(60),
				Enabled:      false,
			},
			"google": {
				DefaultModel: strptr("gemini-2.5-pro"),
				RateLimitRPM: uint32ptr(60),
				Enabled:      false,
			},
			"ollama": {
				CustomEndpoint: strptr("http://localhost:11434"),
				DefaultModel:   strptr("llama2"),
				RateLimitRPM:   uint32ptr(0), // local models are not rate limited
				Enabled:        false,
			},
		},
		Theme:              ThemeSystem,
		SidebarWidth:       320,
		AutoSaveInterval:   30,
		DefaultTemperature: 0.7,
		DefaultMaxTokens:   150,
		EnableAnalytics:    false,
		DebugMode:          false,
		CompactMode:        false,
	}
}

// Clone returns a deep copy so callers cannot mutate the guarded record.
func (s *AppSettings) Clone() *AppSettings {
	out := *s
	out.Providers = make(map[string]ProviderSettings, len(s.Providers))
	for key, provider := range s.Providers {
		out.Providers[key] = ProviderSettings{
			APIKey:         cloneStr(provider.APIKey),
			CustomEndpoint: cloneStr(provider.CustomEndpoint),
			DefaultModel:   cloneStr(provider.DefaultModel),
			RateLimitRPM:   cloneUint32(provider.RateLimitRPM),
			Enabled:        provider.Enabled,
		}
	}
	return &out
}

// ToExport converts the record into its export-safe shape, dropping every
// provider API key.
func (s *AppSettings) ToExport() AppSettingsExport {
	providers := make(map[string]ProviderSettingsExport, len(s.Providers))
	for key, provider := range s.Providers {
		providers[key] = ProviderSettingsExport{
			CustomEndpoint: cloneStr(provider.CustomEndpoint),
			DefaultModel:   cloneStr(provider.DefaultModel),
			RateLimitRPM:   cloneUint32(provider.RateLimitRPM),
			Enabled:        provider.Enabled,
		}
	}
	return AppSettingsExport{
		Providers:          providers,
		Theme:              s.Theme,
		SidebarWidth:       s.SidebarWidth,
		AutoSaveInterval:   s.AutoSaveInterval,
		DefaultTemperature: s.DefaultTemperature,
		DefaultMaxTokens:   s.DefaultMaxTokens,
		EnableAnalytics:    s.EnableAnalytics,
		DebugMode:          s.DebugMode,
		CompactMode:        s.CompactMode,
	}
}

func strptr(v string) *string { return &v }

func uint32ptr(v uint32) *uint32 { return &v }

func cloneStr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneUint32(v *uint32) *uint32 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
