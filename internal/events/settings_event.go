package events

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names broadcast to the frontend.
const (
	SettingsUpdated       = "settings:updated"
	SettingsNotice        = "settings:notice"
	ProviderTestStarted   = "provider:test:started"
	ProviderTestCompleted = "provider:test:completed"
	ProviderTestFailed    = "provider:test:failed"
	SettingsDialogOpen    = "settings-dialog:open"
	SettingsDialogClose   = "settings-dialog:close"
)

// SettingsEvent is the payload shape for every settings broadcast.
type SettingsEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider,omitempty"`
	Success   *bool     `json:"success,omitempty"`
	Payload   any       `json:"payload,omitempty"`
}

func CreateSettingsEvent(eventType EventType, message string) SettingsEvent {
	return SettingsEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info SettingsEvent.
func NewInfo(message string) SettingsEvent {
	return CreateSettingsEvent(EventInfo, message)
}

// NewSuccess creates a success SettingsEvent.
func NewSuccess(message string) SettingsEvent {
	return CreateSettingsEvent(EventSuccess, message)
}

// NewError creates an error SettingsEvent.
func NewError(message string) SettingsEvent {
	return CreateSettingsEvent(EventError, message)
}

// WithProvider returns a copy of the event scoped to a provider.
func (e SettingsEvent) WithProvider(provider string) SettingsEvent {
	e.Provider = provider
	return e
}

// WithSuccess returns a copy of the event carrying a test verdict.
func (e SettingsEvent) WithSuccess(ok bool) SettingsEvent {
	e.Success = &ok
	return e
}

// WithPayload returns a copy of the event carrying a data payload,
// typically the updated settings snapshot.
func (e SettingsEvent) WithPayload(payload any) SettingsEvent {
	e.Payload = payload
	return e
}
