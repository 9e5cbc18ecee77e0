package bindings

import (
	"context"

	wruntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

// wailsEmitter forwards shell events to the frontend.
type wailsEmitter struct {
	ctx context.Context
}

func (e wailsEmitter) Emit(event string, data any) {
	wruntime.EventsEmit(e.ctx, event, data)
}
