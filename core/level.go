package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownLevel is returned when a level name cannot be parsed
var ErrUnknownLevel = errors.New("unknown log level")

// Level represents the severity of a log message. Lower ranks are more severe.
type Level int8

const (
	// CriticalLevel for failures the process cannot recover from
	CriticalLevel Level = iota
	// ErrorLevel for error messages
	ErrorLevel
	// WarningLevel for warning messages
	WarningLevel
	// InfoLevel for general informational messages (default threshold)
	InfoLevel
	// DebugLevel for detailed debugging information
	DebugLevel
)

var levelNames = [...]string{
	CriticalLevel: "CRITICAL",
	ErrorLevel:    "ERROR",
	WarningLevel:  "WARNING",
	InfoLevel:     "INFO",
	DebugLevel:    "DEBUG",
}

// AllLevels returns every level ordered by rank, most severe first
func AllLevels() []Level {
	return []Level{CriticalLevel, ErrorLevel, WarningLevel, InfoLevel, DebugLevel}
}

// String returns the string representation of the level
func (l Level) String() string {
	if l.Valid() {
		return levelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// Valid reports whether l is one of the five defined levels
func (l Level) Valid() bool {
	return l >= CriticalLevel && l <= DebugLevel
}

// Rank returns the numeric rank of the level (CRITICAL = 0 ... DEBUG = 4)
func (l Level) Rank() int {
	return int(l)
}

// Enabled reports whether a message at level l passes the given threshold.
// A level passes when its rank is less than or equal to the threshold rank,
// so a WARNING threshold lets CRITICAL, ERROR and WARNING through.
func (l Level) Enabled(threshold Level) bool {
	return l <= threshold
}

// ParseLevel converts a case-insensitive level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "WARNING", "WARN":
		return WarningLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "DEBUG":
		return DebugLevel, nil
	default:
		return InfoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLevel, int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
