package bridge

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/philipp01105/nlogcast/core"
)

// Logger is the part of *logger.Logger that SlogHandler needs
type Logger interface {
	Enabled(level core.Level) bool
	Log(level core.Level, sender, format string, args ...any)
}

// SlogHandler is a slog.Handler that renders records as text lines and
// logs them through an nlogcast Logger under a fixed sender.
type SlogHandler struct {
	log    Logger
	sender string
	attrs  string // pre-rendered " key=value" pairs from WithAttrs
	group  string
}

// NewSlogHandler creates a slog.Handler logging through l with the given sender tag
func NewSlogHandler(l Logger, sender string) *SlogHandler {
	return &SlogHandler{log: l, sender: sender}
}

// Enabled reports whether the logger threshold lets the level through
func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.log.Enabled(slogLevelToCore(level))
}

// Handle renders the record as "message key=value ..." and logs it
func (h *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var sb strings.Builder
	sb.WriteString(record.Message)
	sb.WriteString(h.attrs)
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&sb, h.group, a)
		return true
	})

	// The rendered text is passed as an argument so that '%' in it is not
	// taken for a formatting verb.
	h.log.Log(slogLevelToCore(record.Level), h.sender, "%s", sb.String())
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&sb, h.group, a)
	}
	return &SlogHandler{
		log:    h.log,
		sender: h.sender,
		attrs:  sb.String(),
		group:  h.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroup := name
	if h.group != "" {
		newGroup = h.group + "." + name
	}
	return &SlogHandler{
		log:    h.log,
		sender: h.sender,
		attrs:  h.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= LevelCritical:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr writes " key=value", prefixing the key with the group and
// flattening nested groups.
func appendAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			appendAttr(sb, prefix, ga)
		}
		return
	}

	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	switch a.Value.Kind() {
	case slog.KindTime:
		sb.WriteString(a.Value.Time().Format(time.RFC3339))
	default:
		sb.WriteString(a.Value.String())
	}
}
