package consolereceiver

import (
	"bytes"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-isatty"

	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/formatter"
)

// ColorMode selects when the default text formatter colours level tags
type ColorMode int

const (
	// ColorAuto colours output only when the writer is a terminal
	ColorAuto ColorMode = iota
	// ColorAlways always colours output
	ColorAlways
	// ColorNever never colours output
	ColorNever
)

// String returns the string representation of the mode
func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "unknown"
	}
}

// ParseColorMode converts "auto", "always" or "never" to a ColorMode
func ParseColorMode(s string) (ColorMode, bool) {
	switch s {
	case "", "auto":
		return ColorAuto, true
	case "always":
		return ColorAlways, true
	case "never":
		return ColorNever, true
	default:
		return ColorAuto, false
	}
}

// Config holds configuration for the console receiver
type Config struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: TextFormatter, coloured according to Color)
	Formatter formatter.Formatter
	// Color controls colouring of the default text formatter (default: ColorAuto)
	Color ColorMode
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *Config) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{
			Color: useColor(cfg.Color, cfg.Writer),
		})
	}
}

// useColor resolves a ColorMode against the destination writer
func useColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Receiver writes one formatted line per event to an io.Writer. It carries
// its own lock so it stays safe when shared between several loggers.
type Receiver struct {
	writer    io.Writer
	formatter formatter.Formatter
	mu        sync.Mutex // protects buf and writer
	buf       bytes.Buffer
	closed    atomic.Bool
	written   atomic.Uint64
	failed    atomic.Uint64
}

// New creates a console receiver
func New(cfg Config) *Receiver {
	applyConsoleDefaults(&cfg)
	r := &Receiver{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
	}
	r.buf.Grow(256)
	return r
}

// OnLogMessage formats the event into the receiver-owned buffer and writes it
// with a single Write call. Write errors are counted, never returned.
func (r *Receiver) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	if r.closed.Load() {
		return
	}
	e := core.Event{Sender: sender, Message: message, Level: level, Elapsed: elapsed}

	r.mu.Lock()
	r.buf.Reset()
	r.formatter.Format(&e, &r.buf)
	_, err := r.writer.Write(r.buf.Bytes())
	r.mu.Unlock()

	if err != nil {
		r.failed.Add(1)
		return
	}
	r.written.Add(1)
}

// Stats returns the number of lines written and the number of failed writes
func (r *Receiver) Stats() (written, failed uint64) {
	return r.written.Load(), r.failed.Load()
}

// Close stops the receiver; later events are dropped. The writer itself is
// left open because it usually is a standard stream owned by the process.
func (r *Receiver) Close() error {
	r.closed.Store(true)
	return nil
}
