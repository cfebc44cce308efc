package bridge

import (
	"github.com/hashicorp/go-hclog"

	"github.com/philipp01105/nlogcast/core"
)

// Hclog forwards events to an hclog.Logger
type Hclog struct {
	log hclog.Logger
}

// NewHclog creates a receiver writing to l
func NewHclog(l hclog.Logger) *Hclog {
	return &Hclog{log: l}
}

// OnLogMessage writes the event through hclog. hclog has no level above
// error, so CRITICAL is written as an error with severity=CRITICAL.
func (h *Hclog) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	h.log.Log(hclogLevel(level), message,
		SenderKey, sender,
		ElapsedKey, elapsed,
		SeverityKey, level.String(),
	)
}

func hclogLevel(level core.Level) hclog.Level {
	switch level {
	case core.CriticalLevel, core.ErrorLevel:
		return hclog.Error
	case core.WarningLevel:
		return hclog.Warn
	case core.InfoLevel:
		return hclog.Info
	default:
		return hclog.Debug
	}
}
