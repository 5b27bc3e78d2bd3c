package paxos

type LogLevel string

const (
	LevelInfo  LogLevel = "INFO"
	LevelError LogLevel = "ERROR"
)

// Event is one entry of the audit trail. ID is the actor: the acceptor that
// failed, or the proposer for round-level messages.
type Event struct {
	ID      int      `json:"id"`
	Level   LogLevel `json:"level"`
	Message string   `json:"message"`
}

// EventLog is append-only. Readers get copies.
type EventLog struct {
	entries []Event
}

func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) Append(id int, level LogLevel, message string) {
	l.entries = append(l.entries, Event{ID: id, Level: level, Message: message})
}

func (l *EventLog) Info(id int, message string) {
	l.Append(id, LevelInfo, message)
}

func (l *EventLog) Error(id int, message string) {
	l.Append(id, LevelError, message)
}

func (l *EventLog) Len() int {
	return len(l.entries)
}

func (l *EventLog) Entries() []Event {
	return l.Since(0)
}

// Since returns a copy of the entries appended after the first offset ones.
func (l *EventLog) Since(offset int) []Event {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(l.entries) {
		return []Event{}
	}
	out := make([]Event, len(l.entries)-offset)
	copy(out, l.entries[offset:])
	return out
}

// Count returns how many entries have the given level.
func (l *EventLog) Count(level LogLevel) int {
	n := 0
	for _, e := range l.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
