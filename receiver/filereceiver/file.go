package filereceiver

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/formatter"
)

// ErrFilenameRequired is returned by New when Config.Filename is empty
var ErrFilenameRequired = errors.New("filename is required")

// Config holds configuration for the file receiver
type Config struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter without colour)
	Formatter formatter.Formatter
	// Append keeps existing content instead of truncating the file on open
	Append bool
	// BufferSize is the size of the write buffer in bytes (default: 4096)
	BufferSize int
	// FlushEach flushes the buffer after every event
	FlushEach bool
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *Config) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 4096
	}
}

// Receiver appends formatted events to a file through a buffered writer
type Receiver struct {
	filename  string
	formatter formatter.Formatter
	flushEach bool

	mu        sync.Mutex // protects everything below
	file      *os.File
	bufWriter *bufio.Writer
	lineBuf   bytes.Buffer
	written   uint64
	failed    uint64
	lastErr   error
}

// New opens (or creates) the log file and returns a receiver writing to it.
// Parent directories are created as needed.
func New(cfg Config) (*Receiver, error) {
	if cfg.Filename == "" {
		return nil, ErrFilenameRequired
	}
	applyFileDefaults(&cfg)

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if cfg.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(cfg.Filename, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	r := &Receiver{
		filename:  cfg.Filename,
		formatter: cfg.Formatter,
		flushEach: cfg.FlushEach,
		file:      file,
		bufWriter: bufio.NewWriterSize(file, cfg.BufferSize),
	}
	r.lineBuf.Grow(256)
	return r, nil
}

// Filename returns the path of the log file
func (r *Receiver) Filename() string {
	return r.filename
}

// OnLogMessage formats the event and appends it to the file buffer.
// Errors are recorded and available through Err, never returned.
func (r *Receiver) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	e := core.Event{Sender: sender, Message: message, Level: level, Elapsed: elapsed}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return
	}

	r.lineBuf.Reset()
	r.formatter.Format(&e, &r.lineBuf)
	_, err := r.bufWriter.Write(r.lineBuf.Bytes())
	if err == nil && r.flushEach {
		err = r.bufWriter.Flush()
	}
	if err != nil {
		r.failed++
		r.lastErr = err
		return
	}
	r.written++
}

// Flush writes buffered lines to the file
func (r *Receiver) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	return r.bufWriter.Flush()
}

// Stats returns the number of lines written and the number of failed writes
func (r *Receiver) Stats() (written, failed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written, r.failed
}

// Err returns the last write error, if any
func (r *Receiver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Close flushes, syncs and closes the underlying file. Events received after
// Close are dropped.
func (r *Receiver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil // Already closed
	}
	file := r.file
	r.file = nil

	if err := r.bufWriter.Flush(); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
