package logging

import (
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// WailsLogger routes the Wails runtime's log lines into slog.
type WailsLogger struct {
	log *slog.Logger
}

var _ logger.Logger = (*WailsLogger)(nil)

// NewWailsLogger wraps l, tagging every record with component=wails.
func NewWailsLogger(l *slog.Logger) *WailsLogger {
	if l == nil {
		l = Discard()
	}
	return &WailsLogger{log: l.With(FieldComponent, "wails")}
}

func (w *WailsLogger) Print(message string)   { w.log.Info(message) }
func (w *WailsLogger) Trace(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Debug(message string)   { w.log.Debug(message) }
func (w *WailsLogger) Info(message string)    { w.log.Info(message) }
func (w *WailsLogger) Warning(message string) { w.log.Warn(message) }
func (w *WailsLogger) Error(message string)   { w.log.Error(message) }

// Fatal logs and exits, matching the default Wails logger.
func (w *WailsLogger) Fatal(message string) {
	w.log.Error(message, "fatal", true)
	os.Exit(1)
}
