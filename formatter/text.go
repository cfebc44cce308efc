package formatter

import (
	"bytes"
	"strconv"

	"github.com/fatih/color"

	"github.com/philipp01105/nlogcast/core"
)

// elapsedWidth is the minimum width of the elapsed column inside the brackets
const elapsedWidth = 9

// TextFormatter formats events as human-readable lines:
//
//	[    1.234] ERROR    Mixer: buffer underrun on device 2
type TextFormatter struct {
	Config
	tags [len(levelTags)]string
}

// pre-formatted level tags, padded to the longest level name
var levelTags = [...]string{
	core.CriticalLevel: "CRITICAL",
	core.ErrorLevel:    "ERROR   ",
	core.WarningLevel:  "WARNING ",
	core.InfoLevel:     "INFO    ",
	core.DebugLevel:    "DEBUG   ",
}

var levelColors = [...]*color.Color{
	core.CriticalLevel: color.New(color.FgHiRed, color.Bold),
	core.ErrorLevel:    color.New(color.FgRed),
	core.WarningLevel:  color.New(color.FgYellow),
	core.InfoLevel:     color.New(color.FgGreen),
	core.DebugLevel:    color.New(color.FgCyan),
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	cfg.applyDefaults()
	f := &TextFormatter{Config: cfg}
	for lvl, tag := range levelTags {
		if !cfg.Color {
			f.tags[lvl] = tag
			continue
		}
		// Colour only the name so the padding stays plain
		name := core.Level(lvl).String()
		c := *levelColors[lvl]
		c.EnableColor()
		f.tags[lvl] = c.Sprint(name) + tag[len(name):]
	}
	return f
}

// Format appends the text rendering of e to buf
func (f *TextFormatter) Format(e *core.Event, buf *bytes.Buffer) {
	var num [32]byte
	elapsed := strconv.AppendFloat(num[:0], e.Elapsed, 'f', f.ElapsedPrecision, 64)

	buf.WriteByte('[')
	for i := len(elapsed); i < elapsedWidth; i++ {
		buf.WriteByte(' ')
	}
	buf.Write(elapsed)
	buf.WriteString("] ")

	if e.Level.Valid() {
		buf.WriteString(f.tags[e.Level])
	} else {
		buf.WriteString(e.Level.String())
	}
	buf.WriteByte(' ')

	if e.Sender != "" {
		buf.WriteString(e.Sender)
		buf.WriteString(": ")
	}
	buf.WriteString(e.Message)
	buf.WriteByte('\n')
}
