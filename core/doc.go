// Package core defines the shared types used across nlogcast.
//
// Level is the five-step severity scale. Ranks grow from CRITICAL (0, most
// severe) to DEBUG (4), and a message is processed when its rank is less
// than or equal to the rank of the logger threshold:
//
//	core.WarningLevel.Enabled(core.InfoLevel) // true
//	core.DebugLevel.Enabled(core.InfoLevel)   // false
//
// Level implements encoding.TextMarshaler and encoding.TextUnmarshaler so
// it can be read straight from environment variables and YAML files.
//
// Event bundles the four values a receiver is called with. Formatters and
// buffering receivers work on Events instead of loose arguments.
//
// The coarse clock is an optional cached time source for loggers that
// prefer cheaper, 500µs-granular elapsed times.
package core
