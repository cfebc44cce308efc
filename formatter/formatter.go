package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/nlogcast/core"
)

// Formatter renders a log event into bytes
type Formatter interface {
	// Format appends the rendered event, including the trailing newline, to buf
	Format(e *core.Event, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// Color enables ANSI colouring of the level tag (text formatter only)
	Color bool
	// ElapsedPrecision is the number of decimals printed for elapsed seconds (default: 3)
	ElapsedPrecision int
}

func (c *Config) applyDefaults() {
	if c.ElapsedPrecision <= 0 {
		c.ElapsedPrecision = 3
	}
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// WriteTo formats e with f in a pooled buffer and writes it to w with a single Write call
func WriteTo(f Formatter, e *core.Event, w io.Writer) error {
	buf := getBuffer()
	f.Format(e, buf)
	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// String formats e with f and returns the result
func String(f Formatter, e *core.Event) string {
	buf := getBuffer()
	f.Format(e, buf)
	s := buf.String()
	putBuffer(buf)
	return s
}
