package formatter

import (
	"bytes"
	"strconv"

	"github.com/philipp01105/nlogcast/core"
)

// JSONFormatter formats events as one JSON object per line
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	cfg.applyDefaults()
	return &JSONFormatter{Config: cfg}
}

// Format appends the JSON rendering of e to buf. It builds the object by hand
// to stay allocation-free.
func (f *JSONFormatter) Format(e *core.Event, buf *bytes.Buffer) {
	buf.WriteString(`{"elapsed":`)
	buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), e.Elapsed, 'f', f.ElapsedPrecision, 64))

	buf.WriteString(`,"level":"`)
	buf.WriteString(e.Level.String())

	buf.WriteString(`","sender":"`)
	appendJSONString(buf, e.Sender)

	buf.WriteString(`","message":"`)
	appendJSONString(buf, e.Message)

	buf.WriteString("\"}\n")
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}
