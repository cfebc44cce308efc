package bridge

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/nlogcast/core"
)

// LevelCritical is the slog level used for CRITICAL events
const LevelCritical = slog.LevelError + 4

// Slog forwards events to a slog.Handler
type Slog struct {
	handler slog.Handler
}

// NewSlog creates a receiver writing to h
func NewSlog(h slog.Handler) *Slog {
	return &Slog{handler: h}
}

// OnLogMessage builds a slog.Record for the event and hands it to the handler
func (s *Slog) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	ctx := context.Background()
	lvl := SlogLevel(level)
	if !s.handler.Enabled(ctx, lvl) {
		return
	}
	record := slog.NewRecord(time.Now(), lvl, message, 0)
	record.AddAttrs(
		slog.String(SenderKey, sender),
		slog.Float64(ElapsedKey, elapsed),
	)
	_ = s.handler.Handle(ctx, record)
}

// SlogLevel converts a core.Level to a slog.Level
func SlogLevel(level core.Level) slog.Level {
	switch level {
	case core.CriticalLevel:
		return LevelCritical
	case core.ErrorLevel:
		return slog.LevelError
	case core.WarningLevel:
		return slog.LevelWarn
	case core.InfoLevel:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
