package core

import "fmt"

// EventType represents the type of change in the storage.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a persisted key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix milliseconds
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}
