package receiver

import (
	"io"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogcast/core"
)

// Multi sends every event to a fixed list of receivers, in order. It lets
// several sinks live under a single registry name.
type Multi struct {
	receivers []Receiver
}

// NewMulti creates a fan-out receiver. Nil receivers are skipped.
func NewMulti(receivers ...Receiver) *Multi {
	m := &Multi{receivers: make([]Receiver, 0, len(receivers))}
	for _, r := range receivers {
		if r != nil {
			m.receivers = append(m.receivers, r)
		}
	}
	return m
}

// OnLogMessage forwards the event to every child receiver
func (m *Multi) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	for _, r := range m.receivers {
		r.OnLogMessage(sender, message, level, elapsed)
	}
}

// Len returns the number of child receivers
func (m *Multi) Len() int {
	return len(m.receivers)
}

// Close closes every child that implements io.Closer and returns all errors combined
func (m *Multi) Close() error {
	var err error
	for _, r := range m.receivers {
		if c, ok := r.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
