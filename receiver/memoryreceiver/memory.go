package memoryreceiver

import (
	"strings"
	"sync"

	"github.com/philipp01105/nlogcast/core"
	"github.com/philipp01105/nlogcast/formatter"
)

// Receiver keeps received events in memory
type Receiver struct {
	mu       sync.RWMutex
	events   []core.Event
	capacity int
	total    uint64
}

// New creates an in-memory receiver holding at most capacity events; older
// events are discarded first. A capacity <= 0 keeps every event.
func New(capacity int) *Receiver {
	return &Receiver{
		events:   make([]core.Event, 0),
		capacity: capacity,
	}
}

// OnLogMessage stores the event
func (r *Receiver) OnLogMessage(sender, message string, level core.Level, elapsed float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.total++
	r.events = append(r.events, core.NewEvent(sender, message, level, elapsed))

	// Keep only the last capacity events
	if r.capacity > 0 && len(r.events) > r.capacity {
		r.events = r.events[len(r.events)-r.capacity:]
	}
}

// Events returns a copy of the stored events, oldest first
func (r *Receiver) Events() []core.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]core.Event, len(r.events))
	copy(events, r.events)
	return events
}

// Last returns the most recent event
func (r *Receiver) Last() (core.Event, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.events) == 0 {
		return core.Event{}, false
	}
	return r.events[len(r.events)-1], true
}

// Count returns the number of stored events
func (r *Receiver) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// Total returns the number of events ever received, including discarded ones
func (r *Receiver) Total() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Clear removes all stored events
func (r *Receiver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = make([]core.Event, 0)
}

// Export renders every stored event with f, one line each
func (r *Receiver) Export(f formatter.Formatter) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder
	for i := range r.events {
		sb.WriteString(formatter.String(f, &r.events[i]))
	}
	return sb.String()
}
