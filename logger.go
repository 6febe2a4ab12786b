package gocarousel

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// discardHandler drops every record; Enabled reports false so callers skip
// formatting.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var activeLogger atomic.Pointer[slog.Logger]

func init() {
	activeLogger.Store(slog.New(discardHandler{}))
}

// SetLogger installs the logger used by the package and by the gg drawing
// backend. The package is silent by default; nil restores that.
//
// Levels:
//   - Debug: font resolution, per-pass timings, cache activity
//   - Info: server lifecycle, exported slides
//   - Warn: skipped assets, malformed backgrounds
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	activeLogger.Store(l)
	gg.SetLogger(l.WithGroup("gg"))
}

// Logger returns the current logger.
func Logger() *slog.Logger { return activeLogger.Load() }

func logger() *slog.Logger { return activeLogger.Load() }
