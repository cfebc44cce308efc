package core

import (
	"errors"
	"testing"
)

func TestLevel_EnabledMatrix(t *testing.T) {
	for _, threshold := range AllLevels() {
		for _, level := range AllLevels() {
			want := level.Rank() <= threshold.Rank()
			if got := level.Enabled(threshold); got != want {
				t.Errorf("%s.Enabled(%s) = %v, expected %v", level, threshold, got, want)
			}
		}
	}
}

func TestLevel_InfoThreshold(t *testing.T) {
	for _, level := range []Level{CriticalLevel, ErrorLevel, WarningLevel, InfoLevel} {
		if !level.Enabled(InfoLevel) {
			t.Errorf("Expected %s to pass an INFO threshold", level)
		}
	}
	if DebugLevel.Enabled(InfoLevel) {
		t.Error("DEBUG should not pass an INFO threshold")
	}
}

func TestLevel_String(t *testing.T) {
	tests := map[Level]string{
		CriticalLevel: "CRITICAL",
		ErrorLevel:    "ERROR",
		WarningLevel:  "WARNING",
		InfoLevel:     "INFO",
		DebugLevel:    "DEBUG",
		Level(42):     "Level(42)",
		Level(-1):     "Level(-1)",
	}
	for level, want := range tests {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, expected %q", int(level), got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"critical", CriticalLevel},
		{"FATAL", CriticalLevel},
		{"Error", ErrorLevel},
		{"warn", WarningLevel},
		{"WARNING", WarningLevel},
		{" info ", InfoLevel},
		{"debug", DebugLevel},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %s, expected %s", tt.in, got, tt.want)
		}
	}

	lvl, err := ParseLevel("verbose")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Expected ErrUnknownLevel, got %v", err)
	}
	if lvl != InfoLevel {
		t.Errorf("Expected InfoLevel fallback, got %s", lvl)
	}
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	if err := l.UnmarshalText([]byte("warning")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if l != WarningLevel {
		t.Errorf("Expected WarningLevel, got %s", l)
	}
	text, err := l.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "WARNING" {
		t.Errorf("Expected WARNING, got %s", text)
	}

	if err := l.UnmarshalText([]byte("nope")); err == nil {
		t.Error("Expected error for unknown level name")
	}
	if _, err := Level(9).MarshalText(); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Expected ErrUnknownLevel, got %v", err)
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("Audio", "device opened", InfoLevel, 1.5)
	if e.Sender != "Audio" || e.Message != "device opened" || e.Level != InfoLevel || e.Elapsed != 1.5 {
		t.Errorf("Unexpected event: %+v", e)
	}
}
