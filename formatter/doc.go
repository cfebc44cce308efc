// Package formatter renders log events into bytes for the writing
// receivers (console and file).
//
// A Formatter appends one complete line, newline included, to a
// caller-provided bytes.Buffer. Receivers own the buffer, so the common
// path performs no allocation. WriteTo and String are conveniences that
// borrow a pooled buffer instead.
//
// TextFormatter produces aligned human-readable lines and can colour the
// level tag with ANSI escapes. JSONFormatter produces one JSON object per
// line with hand-rolled escaping.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
