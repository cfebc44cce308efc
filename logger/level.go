package logger

import "github.com/philipp01105/nlogcast/core"

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	CriticalLevel = core.CriticalLevel
	ErrorLevel    = core.ErrorLevel
	WarningLevel  = core.WarningLevel
	InfoLevel     = core.InfoLevel
	DebugLevel    = core.DebugLevel
)

// ParseLevel converts a string to a Level, see core.ParseLevel
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
