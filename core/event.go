package core

// Event is one accepted log message as handed to receivers. The logger itself
// passes the four values separately; Event gathers them for formatters and
// receivers that keep messages around.
type Event struct {
	Sender  string
	Message string
	Level   Level
	// Elapsed is the number of seconds since the logger was created
	Elapsed float64
}

// NewEvent builds an Event from the arguments of a receiver callback
func NewEvent(sender, message string, level Level, elapsed float64) Event {
	return Event{
		Sender:  sender,
		Message: message,
		Level:   level,
		Elapsed: elapsed,
	}
}
