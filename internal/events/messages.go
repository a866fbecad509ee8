package events

import (
	"encoding/json"
	"time"
)

// Actions carried by record events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entities carried by record events.
const (
	EntityCategory    = "category"
	EntityExpense     = "expense"
	EntityTransaction = "transaction"
)

// RecordEvent notifies external consumers that a row changed. It carries only
// the identity; consumers fetch current state from the database themselves.
type RecordEvent struct {
	Entity    string    `json:"entity"`
	Action    string    `json:"action"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecordEvent creates an event stamped with the current time.
func NewRecordEvent(entity, action string, id int64) *RecordEvent {
	return &RecordEvent{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON parses an event from JSON bytes.
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var ev RecordEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
