// Package consolereceiver provides the built-in "Console" receiver, which
// writes formatted log lines to any io.Writer (default: os.Stdout).
//
// When no formatter is configured a TextFormatter is used, and its level
// tags are coloured when the destination is a terminal. ColorAlways and
// ColorNever override the detection.
package consolereceiver
