package bridge

import (
	"github.com/rs/zerolog"

	"github.com/philipp01105/nlogcast/core"
)

// Zerolog forwards events to a zerolog.Logger
type Zerolog struct {
	log zerolog.Logger
}

// NewZerolog creates a receiver writing to l
func NewZerolog(l zerolog.Logger) *Zerolog {
	return &Zerolog{log: l}
}

// OnLogMessage writes the event through zerolog. CRITICAL is written at
// zerolog's fatal level via WithLevel, which never exits the process.
func (z *Zerolog) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	z.log.WithLevel(zerologLevel(level)).
		Str(SenderKey, sender).
		Float64(ElapsedKey, elapsed).
		Msg(message)
}

func zerologLevel(level core.Level) zerolog.Level {
	switch level {
	case core.CriticalLevel:
		return zerolog.FatalLevel
	case core.ErrorLevel:
		return zerolog.ErrorLevel
	case core.WarningLevel:
		return zerolog.WarnLevel
	case core.InfoLevel:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}
