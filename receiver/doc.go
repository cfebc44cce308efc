// Package receiver defines the Receiver capability implemented by every
// log sink, together with small helpers to build and compose receivers.
//
// A receiver is anything with an OnLogMessage method. The logger stores
// receivers by name and calls each one synchronously for every accepted
// event, so a receiver never needs its own locking when it is registered
// with a single logger. Receivers must not log through the logger that
// calls them: the logger lock is held during delivery and re-entering it
// deadlocks.
//
// The logger does not own receiver lifetime. Callers register a receiver,
// and must unregister it before tearing it down.
//
// Built-in receivers live in subpackages:
//
//   - consolereceiver writes formatted lines to any io.Writer (default: stdout).
//   - filereceiver appends formatted lines to a file.
//   - memoryreceiver keeps the most recent events in a bounded ring.
//   - metricsreceiver counts events in Prometheus metrics.
//   - bridge forwards events into zap, zerolog, logrus, hclog and log/slog.
package receiver
