// Package memoryreceiver provides a receiver that keeps the most recent
// events in memory, for tests, debug consoles and crash reports.
package memoryreceiver
