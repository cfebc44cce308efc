// Package bridge connects nlogcast to other logging stacks.
//
// The receivers in this package forward every event into an existing
// logger: zap, zerolog, logrus, hclog or any log/slog handler. The sender
// and elapsed time travel as the destination's own fields (keys "sender"
// and "elapsed"), and levels are mapped to the closest destination level.
// CRITICAL never triggers an exit or a panic in the destination.
//
// SlogHandler goes the other way: it is a slog.Handler that renders slog
// records as text and logs them through an nlogcast logger, so code
// written against log/slog can feed the receiver registry.
package bridge

// Field keys attached to forwarded events
const (
	SenderKey   = "sender"
	ElapsedKey  = "elapsed"
	SeverityKey = "severity"
)
