package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	Exchange = "restaurant.events"
	Producer = "restaurant-pos"

	OrderCreatedKey       = "order.created"
	OrderStatusChangedKey = "order.status_changed"
)

// Envelope wraps every published payload.
type Envelope struct {
	EventID       string      `json:"eventId"`
	EventType     string      `json:"eventType"`
	CorrelationID string      `json:"correlationId,omitempty"`
	Producer      string      `json:"producer"`
	OccurredAt    time.Time   `json:"occurredAt"`
	Payload       interface{} `json:"payload"`
}

func NewEnvelope(ctx context.Context, eventType string, payload interface{}) Envelope {
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		CorrelationID: CorrelationID(ctx),
		Producer:      Producer,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}

type correlationKey struct{}

// WithCorrelationID stores the request id so events can be traced back to it.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
