package bridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/receiver"
)

// Make sure every bridge is a Receiver.
var (
	_ receiver.Receiver = &Zap{}
	_ receiver.Receiver = &Zerolog{}
	_ receiver.Receiver = &Logrus{}
	_ receiver.Receiver = &Hclog{}
	_ receiver.Receiver = &Slog{}
	_ slog.Handler      = &SlogHandler{}
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}

func TestZap(t *testing.T) {
	t.Parallel()

	obs, logs := observer.New(zapcore.InfoLevel)
	r := NewZap(zap.New(obs))

	r.OnLogMessage("Mixer", "critical failure", core.CriticalLevel, 1.5)
	r.OnLogMessage("Mixer", "warned", core.WarningLevel, 2)
	r.OnLogMessage("Mixer", "filtered by zap", core.DebugLevel, 3)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "critical failure", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "Mixer", fields[SenderKey])
	assert.Equal(t, 1.5, fields[ElapsedKey])
	assert.Equal(t, "CRITICAL", fields[SeverityKey])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestZerolog(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	r := NewZerolog(zerolog.New(buf).Level(zerolog.InfoLevel))

	r.OnLogMessage("Net", "link down", core.CriticalLevel, 0.25)
	r.OnLogMessage("Net", "ignored", core.DebugLevel, 0.5)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "fatal", lines[0]["level"])
	assert.Equal(t, "link down", lines[0]["message"])
	assert.Equal(t, "Net", lines[0][SenderKey])
	assert.Equal(t, 0.25, lines[0][ElapsedKey])
}

func TestLogrus(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)

	r := NewLogrus(l)
	r.OnLogMessage("Disk", "gone", core.CriticalLevel, 4)
	r.OnLogMessage("Disk", "info", core.InfoLevel, 5)
	r.OnLogMessage("Disk", "debug", core.DebugLevel, 6)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "fatal", lines[0]["level"])
	assert.Equal(t, "gone", lines[0]["msg"])
	assert.Equal(t, "Disk", lines[0][SenderKey])
	assert.Equal(t, "info", lines[1]["level"])
}

func TestHclog(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	l := hclog.New(&hclog.LoggerOptions{
		Output:     buf,
		JSONFormat: true,
		Level:      hclog.Trace,
	})

	r := NewHclog(l)
	r.OnLogMessage("Source", "stream stalled", core.CriticalLevel, 7)
	r.OnLogMessage("Source", "details", core.DebugLevel, 8)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "error", lines[0]["@level"])
	assert.Equal(t, "stream stalled", lines[0]["@message"])
	assert.Equal(t, "CRITICAL", lines[0][SeverityKey])
	assert.Equal(t, "Source", lines[0][SenderKey])
	assert.Equal(t, "debug", lines[1]["@level"])
}

func TestSlog(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	r := NewSlog(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	r.OnLogMessage("Codec", "decoder crashed", core.CriticalLevel, 1)
	r.OnLogMessage("Codec", "hidden", core.DebugLevel, 2)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "ERROR+4", lines[0]["level"])
	assert.Equal(t, "decoder crashed", lines[0]["msg"])
	assert.Equal(t, "Codec", lines[0][SenderKey])
}

func TestSlogLevelRoundTrip(t *testing.T) {
	t.Parallel()

	for _, lvl := range core.AllLevels() {
		assert.Equal(t, lvl, slogLevelToCore(SlogLevel(lvl)), lvl.String())
	}
}

type recordedCall struct {
	level   core.Level
	sender  string
	message string
}

type fakeLogger struct {
	threshold core.Level
	calls     []recordedCall
}

func (f *fakeLogger) Enabled(level core.Level) bool {
	return level.Enabled(f.threshold)
}

func (f *fakeLogger) Log(level core.Level, sender, format string, args ...any) {
	f.calls = append(f.calls, recordedCall{level: level, sender: sender, message: fmt.Sprintf(format, args...)})
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	fake := &fakeLogger{threshold: core.InfoLevel}
	log := slog.New(NewSlogHandler(fake, "app"))

	log.Debug("not enabled")
	log.Info("user logged in", "user", "alice", "id", 7)
	log.With("request", "r-1").WithGroup("http").Warn("100% slow", "status", 503)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, core.InfoLevel, fake.calls[0].level)
	assert.Equal(t, "app", fake.calls[0].sender)
	assert.Equal(t, "user logged in user=alice id=7", fake.calls[0].message)

	assert.Equal(t, core.WarningLevel, fake.calls[1].level)
	assert.Equal(t, "100% slow request=r-1 http.status=503", fake.calls[1].message)
}

func TestSlogHandler_Groups(t *testing.T) {
	t.Parallel()

	fake := &fakeLogger{threshold: core.DebugLevel}
	log := slog.New(NewSlogHandler(fake, "app"))

	log.Log(t.Context(), LevelCritical, "boom", slog.Group("dev", slog.Int("id", 2), slog.String("name", "hw")))

	require.Len(t, fake.calls, 1)
	assert.Equal(t, core.CriticalLevel, fake.calls[0].level)
	assert.Equal(t, "boom dev.id=2 dev.name=hw", fake.calls[0].message)
}
