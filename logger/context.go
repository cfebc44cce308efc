package logger

import "context"

type contextKeyType struct{}

var contextKey = contextKeyType{}

// WithContext returns a copy of ctx carrying l
func WithContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey, l)
}

// FromContext returns the Logger stored in ctx. When none is present it
// returns a new Logger without receivers, so callers never need a nil check
// and changes made to the fallback stay local to the caller.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(contextKey).(*Logger); ok && l != nil {
		return l
	}
	return New()
}
