// Package config loads the logger configuration: the level threshold, the
// output format and which built-in receivers ("Console", "File") are
// registered when the process-wide logger is first created.
//
// Load reads NLOG_* environment variables (after an optional .env file),
// for example:
//
//	NLOG_LEVEL=debug
//	NLOG_CONSOLE_COLOR=never
//	NLOG_FILE_ENABLED=true
//	NLOG_FILE_PATH=/var/log/app/engine.log
//
// LoadFile reads the same settings from YAML:
//
//	level: warning
//	format: json
//	console:
//	  enabled: true
//	  stderr: true
//	file:
//	  enabled: true
//	  path: engine.log
package config
