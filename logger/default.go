package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogcast/config"
	"github.com/philipp01105/nlogcast/formatter"
	"github.com/philipp01105/nlogcast/receiver"
	"github.com/philipp01105/nlogcast/receiver/consolereceiver"
	"github.com/philipp01105/nlogcast/receiver/filereceiver"
)

// Names of the built-in receivers registered by NewFromConfig
const (
	ConsoleReceiverName = "Console"
	FileReceiverName    = "File"
)

// sender used for messages the package logs about itself
const selfSender = "nlogcast"

// ErrAlreadyInitialized is returned by Init once the default logger exists
var ErrAlreadyInitialized = errors.New("default logger already initialized")

var (
	defaultOnce   sync.Once
	defaultLogger atomic.Pointer[Logger]
)

// overridden in tests
var (
	loadConfig    = config.Load
	consoleOutput io.Writer
)

// Default returns the process-wide logger, creating it on first use from
// the environment (see config.Load). Concurrent first calls construct it
// exactly once. If the environment is not valid the logger falls back to
// config.Default and reports the problem at WARNING level.
func Default() *Logger {
	defaultOnce.Do(func() {
		cfg, err := loadConfig()
		if err != nil {
			cfg = config.Default()
		}
		l, buildErr := NewFromConfig(cfg, consoleOutput)
		defaultLogger.Store(l)
		if err = multierr.Append(err, buildErr); err != nil {
			l.Warningf(selfSender, "default logger: %v", err)
		}
	})
	return defaultLogger.Load()
}

// Init builds the process-wide logger from cfg. It must run before the
// first call to Default or any package-level logging function; afterwards
// it returns the existing logger and ErrAlreadyInitialized.
func Init(cfg config.Config) (*Logger, error) {
	err := ErrAlreadyInitialized
	defaultOnce.Do(func() {
		var l *Logger
		l, err = NewFromConfig(cfg, consoleOutput)
		defaultLogger.Store(l)
	})
	return defaultLogger.Load(), err
}

// NewFromConfig builds a Logger with the threshold and buffer size of cfg
// and registers the enabled built-in receivers under ConsoleReceiverName
// and FileReceiverName. The console receiver writes to console, or to
// stdout/stderr as selected by cfg when console is nil.
//
// The returned Logger is always usable. An invalid cfg is replaced by
// config.Default, and a receiver that cannot be created is skipped; both
// are reported in the returned error. Logger.Close releases the built-in
// receivers.
func NewFromConfig(cfg config.Config, console io.Writer) (*Logger, error) {
	var errs error
	if err := cfg.Validate(); err != nil {
		errs = err
		cfg = config.Default()
	}

	l := NewBuilder().
		WithLevel(cfg.Level).
		WithBufferSize(cfg.BufferSize).
		Build()

	if cfg.Console.Enabled {
		w := console
		if w == nil {
			w = os.Stdout
			if cfg.Console.Stderr {
				w = os.Stderr
			}
		}
		mode, _ := consolereceiver.ParseColorMode(cfg.Console.Color)
		l.own(ConsoleReceiverName, consolereceiver.New(consolereceiver.Config{
			Writer:    w,
			Formatter: newFormatter(cfg.Format),
			Color:     mode,
		}))
	}

	if cfg.File.Enabled {
		fr, err := filereceiver.New(filereceiver.Config{
			Filename:  cfg.File.Path,
			Formatter: newFormatter(cfg.Format),
			Append:    cfg.File.Append,
			FlushEach: cfg.File.FlushEach,
		})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("file receiver: %w", err))
		} else {
			l.own(FileReceiverName, fr)
		}
	}

	return l, errs
}

// newFormatter returns nil for text so receivers pick their own colouring
func newFormatter(format string) formatter.Formatter {
	if format == config.FormatJSON {
		return formatter.NewJSONFormatter(formatter.Config{})
	}
	return nil
}

// Shutdown closes the built-in receivers of the default logger, flushing
// the log file. It is a no-op if the default logger was never created.
func Shutdown() error {
	l := defaultLogger.Load()
	if l == nil {
		return nil
	}
	return l.Close()
}

// Package-level convenience functions using the default logger

// Criticalf logs a formatted message at CRITICAL level using the default logger
func Criticalf(sender, format string, args ...any) {
	Default().Criticalf(sender, format, args...)
}

// Errorf logs a formatted message at ERROR level using the default logger
func Errorf(sender, format string, args ...any) {
	Default().Errorf(sender, format, args...)
}

// Warningf logs a formatted message at WARNING level using the default logger
func Warningf(sender, format string, args ...any) {
	Default().Warningf(sender, format, args...)
}

// Infof logs a formatted message at INFO level using the default logger
func Infof(sender, format string, args ...any) {
	Default().Infof(sender, format, args...)
}

// Debugf logs a formatted message at DEBUG level using the default logger
func Debugf(sender, format string, args ...any) {
	Default().Debugf(sender, format, args...)
}

// Log logs a formatted message at level using the default logger
func Log(level Level, sender, format string, args ...any) {
	Default().Log(level, sender, format, args...)
}

// SetLevel sets the threshold of the default logger
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// GetLevel returns the threshold of the default logger
func GetLevel() Level {
	return Default().Level()
}

// RegisterReceiver registers r on the default logger
func RegisterReceiver(r receiver.Receiver, name string) bool {
	return Default().RegisterReceiver(r, name)
}

// UnregisterReceiver removes a receiver from the default logger
func UnregisterReceiver(name string) {
	Default().UnregisterReceiver(name)
}

// IsReceiverRegistered reports whether the default logger has a receiver
// registered under name
func IsReceiverRegistered(name string) bool {
	return Default().IsReceiverRegistered(name)
}
