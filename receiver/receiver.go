package receiver

import (
	"github.com/philipp01105/nlogcast/core"
)

// Receiver is the capability a sink implements to accept log events.
//
// OnLogMessage is called synchronously, while the logger holds its lock, for
// every event that passes the level threshold. Implementations must not call
// back into the logger that invoked them, must not block indefinitely and
// should not panic; failures are the receiver's own business and are never
// reported back to the logger.
type Receiver interface {
	OnLogMessage(sender, message string, level core.Level, elapsed float64)
}

// Func adapts a plain function to the Receiver interface
type Func func(sender, message string, level core.Level, elapsed float64)

// OnLogMessage calls f
func (f Func) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	f(sender, message, level, elapsed)
}

// Nop is a receiver that discards every event
type Nop struct{}

// OnLogMessage does nothing
func (Nop) OnLogMessage(string, string, core.Level, float64) {}
