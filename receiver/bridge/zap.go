package bridge

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/nlogcast/core"
)

// Zap forwards events to a zap.Logger
type Zap struct {
	log *zap.Logger
}

// NewZap creates a receiver writing to l
func NewZap(l *zap.Logger) *Zap {
	return &Zap{log: l}
}

// OnLogMessage writes the event through zap. CRITICAL maps to zap's error
// level; the original level name is kept in the "severity" field.
func (z *Zap) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	if ce := z.log.Check(zapLevel(level), message); ce != nil {
		ce.Write(
			zap.String(SenderKey, sender),
			zap.Float64(ElapsedKey, elapsed),
			zap.Stringer(SeverityKey, level),
		)
	}
}

// Close flushes the zap logger
func (z *Zap) Close() error {
	return z.log.Sync()
}

func zapLevel(level core.Level) zapcore.Level {
	switch level {
	case core.CriticalLevel, core.ErrorLevel:
		return zapcore.ErrorLevel
	case core.WarningLevel:
		return zapcore.WarnLevel
	case core.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
