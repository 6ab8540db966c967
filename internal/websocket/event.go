package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, updated, deleted)
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeDeleted EventType = "deleted"
	EventTypeWritten EventType = "written"
	EventTypeAdded   EventType = "added"
	EventTypeRemoved EventType = "removed"
	EventTypeTracked EventType = "tracked"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeList     EntityType = "list"
	EntityTypeListItem EntityType = "list_item"
	EntityTypeReview   EntityType = "review"
	EntityTypeWatched  EntityType = "watched"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "list.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "list"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ListCreated creates a list.created event
func ListCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeList, payload)
}

// ListUpdated creates a list.updated event
func ListUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeList, payload)
}

// ListDeleted creates a list.deleted event
func ListDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeList, payload)
}

// ListItemAdded creates a list_item.added event
func ListItemAdded(payload interface{}) Event {
	return NewEvent(EventTypeAdded, EntityTypeListItem, payload)
}

// ListItemRemoved creates a list_item.removed event
func ListItemRemoved(payload interface{}) Event {
	return NewEvent(EventTypeRemoved, EntityTypeListItem, payload)
}

// ReviewWritten creates a review.written event (create and overwrite)
func ReviewWritten(payload interface{}) Event {
	return NewEvent(EventTypeWritten, EntityTypeReview, payload)
}

// ReviewDeleted creates a review.deleted event
func ReviewDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeReview, payload)
}

// WatchedTracked creates a watched.tracked event
func WatchedTracked(payload interface{}) Event {
	return NewEvent(EventTypeTracked, EntityTypeWatched, payload)
}

// WatchedRemoved creates a watched.removed event
func WatchedRemoved(payload interface{}) Event {
	return NewEvent(EventTypeRemoved, EntityTypeWatched, payload)
}
