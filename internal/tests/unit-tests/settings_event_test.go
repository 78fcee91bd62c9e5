package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptdeck/internal/events"
)

func TestCreateSettingsEvent(t *testing.T) {
	evt := events.NewSuccess("Settings updated")

	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, events.EventSuccess, evt.Type)
	assert.Equal(t, "Settings updated", evt.Message)
	assert.False(t, evt.Timestamp.IsZero())
	assert.Nil(t, evt.Success)

	scoped := evt.WithProvider("openai").WithSuccess(true)
	assert.Equal(t, "openai", scoped.Provider)
	require.NotNil(t, scoped.Success)
	assert.True(t, *scoped.Success)

	// The original event is unchanged by the With helpers.
	assert.Empty(t, evt.Provider)
	assert.Nil(t, evt.Success)
}

func TestSetCustomEmitter(t *testing.T) {
	var gotName string
	var gotEvent events.SettingsEvent
	events.SetCustomEmitter(func(ctx context.Context, name string, evt events.SettingsEvent) {
		gotName = name
		gotEvent = evt
	})
	defer events.SetCustomEmitter(nil)

	events.Emit(context.Background(), events.SettingsUpdated, events.NewInfo("hello"))

	assert.Equal(t, events.SettingsUpdated, gotName)
	assert.Equal(t, "hello", gotEvent.Message)
}

func TestEmitDefaultsToNoOp(t *testing.T) {
	events.SetCustomEmitter(nil)

	assert.NotPanics(t, func() {
		events.Emit(context.Background(), events.SettingsNotice, events.NewError("boom"))
	})
}
