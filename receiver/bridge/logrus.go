package bridge

import (
	"github.com/sirupsen/logrus"

	"github.com/philipp01105/nlogcast/core"
)

// Logrus forwards events to a logrus.Logger
type Logrus struct {
	log *logrus.Logger
}

// NewLogrus creates a receiver writing to l
func NewLogrus(l *logrus.Logger) *Logrus {
	return &Logrus{log: l}
}

// OnLogMessage writes the event through logrus. Entry.Log is used for every
// level, so CRITICAL (logrus fatal) neither exits nor panics.
func (l *Logrus) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	lvl := logrusLevel(level)
	if !l.log.IsLevelEnabled(lvl) {
		return
	}
	l.log.WithFields(logrus.Fields{
		SenderKey:  sender,
		ElapsedKey: elapsed,
	}).Log(lvl, message)
}

func logrusLevel(level core.Level) logrus.Level {
	switch level {
	case core.CriticalLevel:
		return logrus.FatalLevel
	case core.ErrorLevel:
		return logrus.ErrorLevel
	case core.WarningLevel:
		return logrus.WarnLevel
	case core.InfoLevel:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
