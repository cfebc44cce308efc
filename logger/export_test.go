package logger

import (
	"io"
	"sync"

	"github.com/philipp01105/nlogcast/config"
)

// resetDefault discards the process-wide logger and installs test hooks
func resetDefault(load func() (config.Config, error), console io.Writer) {
	if l := defaultLogger.Load(); l != nil {
		_ = l.Close()
	}
	defaultOnce = sync.Once{}
	defaultLogger.Store(nil)
	loadConfig = load
	consoleOutput = console
}
