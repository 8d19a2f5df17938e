package events

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventType string

const (
	UserCreated        EventType = "user.created"
	UserProfileUpdated EventType = "user.profile_updated"
	UserDeleted        EventType = "user.deleted"
)

const aggregateUser = "user"

type Envelope struct {
	EventType     EventType       `json:"event_type"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// UserPayload is the body of every user lifecycle event. Profile images are
// never included.
type UserPayload struct {
	Email string `json:"email"`
}

// NewUserEnvelope builds an envelope for a user lifecycle event.
func NewUserEnvelope(eventType EventType, userID, email string, at time.Time) (Envelope, error) {
	payload, err := json.Marshal(UserPayload{Email: email})
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal payload: %w", err)
	}
	return Envelope{
		EventType:     eventType,
		AggregateType: aggregateUser,
		AggregateID:   userID,
		OccurredAt:    at,
		Payload:       payload,
	}, nil
}
