package gradient

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely,
// which keeps disabled logging off the per-frame hot path.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so SetLogger can
// race with a render loop logging from worker goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gradient and all its sub-packages.
// By default, gradient produces no log output. Pass nil to restore the
// silent default.
//
// Log levels used by gradient:
//   - [slog.LevelDebug]: frame timings, frame cache hits, shader sizes
//   - [slog.LevelInfo]: renderer lifecycle (created, resized, closed)
//   - [slog.LevelWarn]: degraded presentation (CPU copy fallback), shader
//     compilation failures
//
// Example:
//
//	gradient.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by gradient.
// Sub-packages (store, shader, capture, integration/gradcanvas) call this to
// share one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
