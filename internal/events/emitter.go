package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Emit broadcasts a settings event. It is a no-op until EnableRuntimeEmitter
// (or SetCustomEmitter in tests) installs an implementation; emission is
// best-effort and never returns an error to callers.
var Emit = func(ctx context.Context, name string, evt SettingsEvent) {}

func EnableRuntimeEmitter() {
	Emit = func(ctx context.Context, name string, evt SettingsEvent) {
		runtime.EventsEmit(ctx, name, evt)
		logRuntimeEvent(ctx, name, evt)
	}
}

func SetCustomEmitter(f func(ctx context.Context, name string, evt SettingsEvent)) {
	if f == nil {
		Emit = func(context.Context, string, SettingsEvent) {}
		return
	}
	Emit = f
}
