package logger

import "sync/atomic"

// Stats tracks broadcast statistics
type Stats struct {
	// BroadcastTotal counts messages that passed the threshold
	BroadcastTotal uint64
	// DeliveredTotal counts successful receiver invocations
	DeliveredTotal uint64
	// FilteredTotal counts messages rejected by the threshold
	FilteredTotal uint64
	// TruncatedTotal counts messages cut to the buffer capacity
	TruncatedTotal uint64
	// ReceiverPanicsTotal counts receiver invocations that panicked
	ReceiverPanicsTotal uint64
}

func (s *Stats) incrementBroadcast() {
	atomic.AddUint64(&s.BroadcastTotal, 1)
}

func (s *Stats) incrementDeliveries() {
	atomic.AddUint64(&s.DeliveredTotal, 1)
}

func (s *Stats) incrementFiltered() {
	atomic.AddUint64(&s.FilteredTotal, 1)
}

func (s *Stats) incrementTruncated() {
	atomic.AddUint64(&s.TruncatedTotal, 1)
}

func (s *Stats) incrementReceiverPanics() {
	atomic.AddUint64(&s.ReceiverPanicsTotal, 1)
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.BroadcastTotal, 0)
	atomic.StoreUint64(&s.DeliveredTotal, 0)
	atomic.StoreUint64(&s.FilteredTotal, 0)
	atomic.StoreUint64(&s.TruncatedTotal, 0)
	atomic.StoreUint64(&s.ReceiverPanicsTotal, 0)
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Broadcast      uint64
	Delivered      uint64
	Filtered       uint64
	Truncated      uint64
	ReceiverPanics uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		Broadcast:      atomic.LoadUint64(&s.BroadcastTotal),
		Delivered:      atomic.LoadUint64(&s.DeliveredTotal),
		Filtered:       atomic.LoadUint64(&s.FilteredTotal),
		Truncated:      atomic.LoadUint64(&s.TruncatedTotal),
		ReceiverPanics: atomic.LoadUint64(&s.ReceiverPanicsTotal),
	}
}
