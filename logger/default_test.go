package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nlogcast/config"
	"github.com/philipp01105/nlogcast/receiver/memoryreceiver"
)

func withTestDefault(t *testing.T, load func() (config.Config, error)) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	resetDefault(load, &buf)
	t.Cleanup(func() { resetDefault(config.Load, nil) })
	return &buf
}

func staticConfig(cfg config.Config) func() (config.Config, error) {
	return func() (config.Config, error) { return cfg, nil }
}

func TestDefault_ConstructedOnce(t *testing.T) {
	var loads atomic.Int32
	withTestDefault(t, func() (config.Config, error) {
		loads.Add(1)
		return config.Default(), nil
	})

	const callers = 32
	got := make([]*Logger, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Go(func() {
			got[i] = Default()
		})
	}
	wg.Wait()

	require.NotNil(t, got[0])
	for _, l := range got {
		assert.Same(t, got[0], l)
	}
	assert.Equal(t, int32(1), loads.Load())
	assert.True(t, got[0].IsReceiverRegistered(ConsoleReceiverName))
}

func TestDefault_FallbackOnBadEnvironment(t *testing.T) {
	buf := withTestDefault(t, func() (config.Config, error) {
		return config.Config{}, errors.New("boom")
	})

	l := Default()
	require.NotNil(t, l)
	assert.Equal(t, InfoLevel, l.Level())
	assert.Contains(t, buf.String(), "WARNING")
	assert.Contains(t, buf.String(), "nlogcast: default logger: boom")
}

func TestPackageFunctions(t *testing.T) {
	buf := withTestDefault(t, staticConfig(config.Default()))

	Infof("Main", "hello %s", "world")
	Debugf("Main", "hidden")
	SetLevel(DebugLevel)
	Debugf("Main", "visible")
	Log(ErrorLevel, "Main", "via Log")
	Criticalf("Main", "c")
	Errorf("Main", "e")
	Warningf("Main", "w")

	out := buf.String()
	assert.Contains(t, out, "INFO     Main: hello world")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "DEBUG    Main: visible")
	assert.Contains(t, out, "ERROR    Main: via Log")
	assert.Equal(t, 6, strings.Count(out, "\n"))
	assert.Equal(t, DebugLevel, GetLevel())

	mem := memoryreceiver.New(0)
	require.True(t, RegisterReceiver(mem, "Memory"))
	assert.True(t, IsReceiverRegistered("Memory"))
	Infof("Main", "to memory")
	UnregisterReceiver("Memory")
	assert.False(t, IsReceiverRegistered("Memory"))
	assert.Equal(t, 1, mem.Count())
}

func TestInit(t *testing.T) {
	withTestDefault(t, staticConfig(config.Default()))

	cfg := config.Default()
	cfg.Level = WarningLevel
	l, err := Init(cfg)
	require.NoError(t, err)
	assert.Equal(t, WarningLevel, l.Level())
	assert.Same(t, l, Default())

	again, err := Init(config.Default())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Same(t, l, again)
	assert.Equal(t, WarningLevel, again.Level())
}

func TestInit_AfterDefault(t *testing.T) {
	withTestDefault(t, staticConfig(config.Default()))

	l := Default()
	got, err := Init(config.Default())
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
	assert.Same(t, l, got)
}

func TestShutdown(t *testing.T) {
	withTestDefault(t, staticConfig(config.Default()))
	require.NoError(t, Shutdown(), "Shutdown before initialisation is a no-op")

	l := Default()
	require.NoError(t, Shutdown())
	assert.False(t, l.IsReceiverRegistered(ConsoleReceiverName))
}

func TestNewFromConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	cfg := config.Default()
	cfg.Format = config.FormatJSON
	cfg.Console.Enabled = false
	cfg.File.Enabled = true
	cfg.File.Path = path

	l, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{FileReceiverName}, l.ReceiverNames())

	l.Errorf("Disk", "write failed: %s", "EIO")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"ERROR","sender":"Disk","message":"write failed: EIO"`)
	assert.Empty(t, l.ReceiverNames())
}

func TestNewFromConfig_FileWrittenBeforeClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := config.Default()
	cfg.Console.Enabled = false
	cfg.File.Enabled = true
	cfg.File.Path = path

	l, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	l.Criticalf("Engine", "shutting down after fault %d", 7)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CRITICAL Engine: shutting down after fault 7\n")
}

func TestNewFromConfig_FileBuffered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := config.Default()
	cfg.Console.Enabled = false
	cfg.File.Enabled = true
	cfg.File.Path = path
	cfg.File.FlushEach = false

	l, err := NewFromConfig(cfg, nil)
	require.NoError(t, err)

	l.Infof("Engine", "buffered")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data, "lines stay in the write buffer until Close")

	require.NoError(t, l.Close())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO     Engine: buffered\n")
}

func TestNewFromConfig_FileError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.File.Enabled = true
	cfg.File.Path = dir // a directory cannot be opened for writing

	var buf bytes.Buffer
	l, err := NewFromConfig(cfg, &buf)
	require.Error(t, err)
	require.NotNil(t, l)
	assert.Equal(t, []string{ConsoleReceiverName}, l.ReceiverNames())
}

func TestNewFromConfig_Invalid(t *testing.T) {
	cfg := config.Default()
	cfg.Format = "xml"
	cfg.Level = DebugLevel

	var buf bytes.Buffer
	l, err := NewFromConfig(cfg, &buf)
	require.ErrorIs(t, err, config.ErrConfigNotValid)
	assert.Equal(t, InfoLevel, l.Level(), "invalid configuration falls back to defaults")

	l.Infof("S", "still works")
	assert.Contains(t, buf.String(), "S: still works")
}

func TestLogger_CloseKeepsForeignReceivers(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewFromConfig(config.Default(), &buf)
	require.NoError(t, err)

	mem := memoryreceiver.New(0)
	l.RegisterReceiver(mem, "Memory")
	require.NoError(t, l.Close())

	assert.Equal(t, []string{"Memory"}, l.ReceiverNames())
	l.Infof("S", "after close")
	assert.Equal(t, 1, mem.Count())
	assert.Empty(t, buf.String())
}

func TestContext(t *testing.T) {
	mem := memoryreceiver.New(0)
	l := NewBuilder().WithReceiver("Memory", mem).Build()

	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))

	FromContext(ctx).Infof("Ctx", "from context")
	assert.Equal(t, 1, mem.Count())

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Empty(t, fallback.ReceiverNames())
	fallback.Infof("Ctx", "dropped")
}

func TestFromContext_FallbackIsolated(t *testing.T) {
	first := FromContext(context.Background())
	first.RegisterReceiver(memoryreceiver.New(0), "Leak")
	first.SetLevel(DebugLevel)

	second := FromContext(context.Background())
	assert.NotSame(t, first, second)
	assert.Empty(t, second.ReceiverNames())
	assert.Equal(t, InfoLevel, second.Level())
}
