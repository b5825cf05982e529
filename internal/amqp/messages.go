package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// EventType names the mutation that produced an ExpenseEvent.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventCreated, EventUpdated, EventDeleted:
		return true
	default:
		return false
	}
}

// ExpenseEvent is a lightweight change notification. It carries only the id;
// consumers re-read the collection from the store.
type ExpenseEvent struct {
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

var ErrInvalidEvent = errors.New("invalid expense event")

// NewExpenseEvent creates an event stamped with the current time.
func NewExpenseEvent(t EventType, id string) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      t,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON decodes and checks an event body.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var evt ExpenseEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !evt.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, evt.Type)
	}
	if evt.ID == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidEvent)
	}
	return &evt, nil
}
