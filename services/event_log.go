package services

import (
	"log"
	"sync"
	"time"

	"synthara-api/models"
)

const defaultEventLogCapacity = 1000

// EventLog is an append-only, in-process analytics trail. The oldest entries
// are dropped once capacity is reached.
type EventLog struct {
	mu       sync.Mutex
	entries  []models.EventLogEntry
	capacity int
	Now      func() time.Time
}

func NewEventLog() *EventLog {
	return &EventLog{capacity: defaultEventLogCapacity, Now: time.Now}
}

func (l *EventLog) Append(eventType models.EventType, metadata map[string]any) models.EventLogEntry {
	if metadata == nil {
		metadata = map[string]any{}
	}
	entry := models.EventLogEntry{
		EventType: eventType,
		Metadata:  metadata,
		Ts:        models.NewTimestamp(l.Now()),
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if over := len(l.entries) - l.capacity; over > 0 {
		l.entries = append([]models.EventLogEntry(nil), l.entries[over:]...)
	}
	l.mu.Unlock()

	log.Printf("[event-log] %s %v", entry.EventType, entry.Metadata)
	return entry
}

// Entries returns a copy of the log, oldest first.
func (l *EventLog) Entries() []models.EventLogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.EventLogEntry(nil), l.entries...)
}
