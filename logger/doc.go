// Package logger is the public API of nlogcast. Most users only need to
// import this package.
//
// A Logger filters messages by a severity threshold, renders them with
// fmt semantics into a bounded buffer and broadcasts the result to every
// registered receiver. Each delivered event carries the sender tag, the
// message text, the level, and the seconds elapsed since the Logger was
// built.
//
// Levels are ordered by rank, CRITICAL being the most severe:
//
//	CRITICAL(0) < ERROR(1) < WARNING(2) < INFO(3) < DEBUG(4)
//
// A message is broadcast iff its rank is at most the threshold's rank, so
// a WARNING threshold passes CRITICAL, ERROR and WARNING messages.
//
// The package keeps one process-wide Logger. It is created lazily by the
// first call to Default or a package-level function, configured from
// NLOG_* environment variables (see the config package), or explicitly by
// Init at startup:
//
//	logger.Infof("Mixer", "started %d voices", n)
//
//	log := logger.Default()
//	log.RegisterReceiver(myReceiver, "Network")
//	log.SetLevel(logger.DebugLevel)
//
// Independent loggers are made with the Builder:
//
//	log := logger.NewBuilder().
//	    WithLevel(logger.WarningLevel).
//	    WithReceiver("Memory", memoryreceiver.New(100)).
//	    Build()
//
// Logger methods are safe for concurrent use. One mutex serialises the
// threshold check, formatting and delivery, so receivers never see two
// events at once. Receivers run with that mutex held and must not call
// back into the same Logger. Messages longer than the buffer capacity
// minus one byte are silently truncated; Stats counts how often that
// happens.
package logger
