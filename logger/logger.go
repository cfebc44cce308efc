package logger

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"go.uber.org/multierr"

	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/receiver"
)

// DefaultBufferSize is the capacity of the formatting buffer, counting the
// terminator, so messages are cut to DefaultBufferSize-1 bytes.
const DefaultBufferSize = 2048

// Logger formats leveled messages and broadcasts them to a set of named
// receivers. All of its state is guarded by a single mutex that is held for
// the whole check-format-broadcast sequence, so events are delivered one at
// a time and each one reaches exactly the receivers registered when it
// acquired the lock.
//
// Receivers are called with the lock held and must not log through the
// same Logger; doing so deadlocks.
type Logger struct {
	mu          sync.Mutex
	now         func() time.Time
	start       time.Time
	minLevel    core.Level
	receivers   map[string]receiver.Receiver
	buf         boundedBuffer
	lastElapsed float64
	owned       map[string]closingReceiver // built-in receivers created by NewFromConfig

	// level mirrors minLevel for the lock-free pre-check
	level atomic.Int32
	stats Stats
}

type closingReceiver interface {
	receiver.Receiver
	io.Closer
}

type namedReceiver struct {
	name string
	r    receiver.Receiver
}

// Builder provides a fluent API for building Logger instances
type Builder struct {
	level      core.Level
	bufferSize int
	now        func() time.Time
	receivers  []namedReceiver
}

// NewBuilder creates a new logger builder
func NewBuilder() *Builder {
	return &Builder{
		level:      core.InfoLevel, // Default level
		bufferSize: DefaultBufferSize,
		now:        time.Now,
	}
}

// WithLevel sets the initial threshold
func (b *Builder) WithLevel(level core.Level) *Builder {
	b.level = level
	return b
}

// WithReceiver registers r under name when the logger is built
func (b *Builder) WithReceiver(name string, r receiver.Receiver) *Builder {
	b.receivers = append(b.receivers, namedReceiver{name: name, r: r})
	return b
}

// WithBufferSize sets the formatting buffer capacity, terminator included.
// Values below 2 keep the default.
func (b *Builder) WithBufferSize(size int) *Builder {
	if size >= 2 {
		b.bufferSize = size
	}
	return b
}

// WithClock sets the time source used for elapsed times
func (b *Builder) WithClock(now func() time.Time) *Builder {
	if now != nil {
		b.now = now
	}
	return b
}

// WithCoarseClock switches the time source to the cached coarse clock
func (b *Builder) WithCoarseClock(enabled bool) *Builder {
	if enabled {
		core.StartCoarseClock()
		b.now = core.CoarseNow
	} else {
		b.now = time.Now
	}
	return b
}

// Build creates the Logger instance. The start time is taken here.
func (b *Builder) Build() *Logger {
	l := &Logger{
		now:       b.now,
		start:     b.now(),
		receivers: make(map[string]receiver.Receiver, len(b.receivers)),
		owned:     make(map[string]closingReceiver),
		buf:       newBoundedBuffer(b.bufferSize),
	}
	l.setLevel(b.level)
	for _, nr := range b.receivers {
		l.RegisterReceiver(nr.r, nr.name)
	}
	return l
}

// New creates a Logger with the default settings and no receivers
func New() *Logger {
	return NewBuilder().Build()
}

// Criticalf logs a formatted message at CRITICAL level
func (l *Logger) Criticalf(sender, format string, args ...any) {
	l.Log(core.CriticalLevel, sender, format, args...)
}

// Errorf logs a formatted message at ERROR level
func (l *Logger) Errorf(sender, format string, args ...any) {
	l.Log(core.ErrorLevel, sender, format, args...)
}

// Warningf logs a formatted message at WARNING level
func (l *Logger) Warningf(sender, format string, args ...any) {
	l.Log(core.WarningLevel, sender, format, args...)
}

// Infof logs a formatted message at INFO level
func (l *Logger) Infof(sender, format string, args ...any) {
	l.Log(core.InfoLevel, sender, format, args...)
}

// Debugf logs a formatted message at DEBUG level
func (l *Logger) Debugf(sender, format string, args ...any) {
	l.Log(core.DebugLevel, sender, format, args...)
}

// Log formats a message with fmt semantics and broadcasts it to every
// registered receiver if level passes the threshold. Messages at undefined
// levels are dropped.
func (l *Logger) Log(level core.Level, sender, format string, args ...any) {
	// Cheap pre-check without the lock
	if !level.Valid() || !level.Enabled(core.Level(l.level.Load())) {
		l.stats.incrementFiltered()
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Authoritative check against a concurrent SetLevel
	if !level.Enabled(l.minLevel) {
		l.stats.incrementFiltered()
		return
	}
	l.broadcast(level, sender, format, args)
}

// broadcast renders the message into the bounded buffer and hands it to
// every receiver. Must be called with mu held.
func (l *Logger) broadcast(level core.Level, sender, format string, args []any) {
	elapsed := l.now().Sub(l.start).Seconds()
	if elapsed < l.lastElapsed {
		elapsed = l.lastElapsed
	}
	l.lastElapsed = elapsed

	l.buf.reset()
	fmt.Fprintf(&l.buf, format, args...)
	if l.buf.truncated {
		l.stats.incrementTruncated()
	}
	message := l.buf.String()

	for _, r := range l.receivers {
		l.deliver(r, sender, message, level, elapsed)
	}
	l.stats.incrementBroadcast()
}

// deliver invokes one receiver, containing a panic so the remaining
// receivers still get the event.
func (l *Logger) deliver(r receiver.Receiver, sender, message string, level core.Level, elapsed float64) {
	defer func() {
		if recover() != nil {
			l.stats.incrementReceiverPanics()
		}
	}()
	r.OnLogMessage(sender, message, level, elapsed)
	l.stats.incrementDeliveries()
}

// Enabled reports whether a message at level would currently be broadcast
func (l *Logger) Enabled(level core.Level) bool {
	return level.Valid() && level.Enabled(core.Level(l.level.Load()))
}

// SetLevel replaces the threshold. An undefined level resets it to INFO.
func (l *Logger) SetLevel(level core.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLevel(level)
}

func (l *Logger) setLevel(level core.Level) {
	if !level.Valid() {
		level = core.InfoLevel
	}
	l.minLevel = level
	l.level.Store(int32(level))
}

// Level returns the current threshold
func (l *Logger) Level() core.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minLevel
}

// RegisterReceiver stores r under name, replacing any receiver already
// registered with that name. It returns false only for a nil receiver.
func (l *Logger) RegisterReceiver(r receiver.Receiver, name string) bool {
	if r == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.receivers[name] = r
	return true
}

// UnregisterReceiver removes the receiver registered under name, if any
func (l *Logger) UnregisterReceiver(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.receivers, name)
}

// IsReceiverRegistered reports whether a receiver is registered under name
func (l *Logger) IsReceiverRegistered(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.receivers[name]
	return ok
}

// Receiver returns the receiver registered under name
func (l *Logger) Receiver(name string) (receiver.Receiver, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.receivers[name]
	return r, ok
}

// ReceiverNames returns the registered names in sorted order
func (l *Logger) ReceiverNames() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Sorted(maps.Keys(l.receivers))
}

// Stats returns a snapshot of the broadcast counters
func (l *Logger) Stats() Snapshot {
	return l.stats.GetSnapshot()
}

// ResetStats zeroes the broadcast counters
func (l *Logger) ResetStats() {
	l.stats.Reset()
}

// Uptime returns the time elapsed since the logger was built
func (l *Logger) Uptime() time.Duration {
	return l.now().Sub(l.start)
}

// Close unregisters and closes the built-in receivers the logger created
// itself (see NewFromConfig). Receivers registered by callers are left
// untouched: their lifetime belongs to the caller.
func (l *Logger) Close() error {
	l.mu.Lock()
	owned := l.owned
	l.owned = make(map[string]closingReceiver)
	for name, c := range owned {
		if r, ok := l.receivers[name]; ok && r == c {
			delete(l.receivers, name)
		}
	}
	l.mu.Unlock()

	var err error
	for _, name := range slices.Sorted(maps.Keys(owned)) {
		err = multierr.Append(err, owned[name].Close())
	}
	return err
}

// own registers a receiver the logger is responsible for closing
func (l *Logger) own(name string, r closingReceiver) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.receivers[name] = r
	l.owned[name] = r
}

// boundedBuffer is the fixed-capacity scratch buffer messages are rendered
// into. Writes past the limit are discarded and flagged.
type boundedBuffer struct {
	data      []byte
	limit     int
	truncated bool
}

func newBoundedBuffer(capacity int) boundedBuffer {
	limit := capacity - 1 // one byte is reserved for the terminator
	return boundedBuffer{
		data:  make([]byte, 0, limit),
		limit: limit,
	}
}

func (b *boundedBuffer) reset() {
	b.data = b.data[:0]
	b.truncated = false
}

// Write appends as much of p as fits and always reports success
func (b *boundedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	if room := b.limit - len(b.data); n > room {
		p = p[:room]
		b.truncated = true
	}
	b.data = append(b.data, p...)
	return n, nil
}

// String returns the buffered text. A truncated message is cut back to
// the last complete UTF-8 sequence.
func (b *boundedBuffer) String() string {
	if !b.truncated {
		return string(b.data)
	}
	return string(trimPartialRune(b.data))
}

func trimPartialRune(p []byte) []byte {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if utf8.RuneStart(p[i]) {
			if !utf8.FullRune(p[i:]) {
				return p[:i]
			}
			return p
		}
	}
	return p
}
