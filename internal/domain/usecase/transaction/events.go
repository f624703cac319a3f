package transaction

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

// EventNotifier publishes lifecycle events without ever failing the caller
type EventNotifier struct {
	publisher core.EventPublisher
	clock     core.Clock
	logger    core.Logger
}

// NewEventNotifier creates a new EventNotifier
func NewEventNotifier(publisher core.EventPublisher, clock core.Clock, logger core.Logger) *EventNotifier {
	return &EventNotifier{publisher: publisher, clock: clock, logger: logger}
}

// Notify publishes eventType for tx; failures are logged
func (n *EventNotifier) Notify(ctx context.Context, eventType string, tx *entity.Transaction) {
	payload := map[string]any{
		"reference":      tx.Reference,
		"type":           tx.Type,
		"status":         tx.Status,
		"amount":         tx.Amount,
		"deliveryStatus": tx.DeliveryState(),
	}
	if tx.AgentID != nil {
		payload["agentId"] = *tx.AgentID
	}

	event := core.Event{
		Type:       eventType,
		Key:        tx.Reference,
		OccurredAt: n.clock.Now(),
		Payload:    payload,
	}
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Warn("Failed to publish lifecycle event", map[string]any{
			"event":     eventType,
			"reference": tx.Reference,
			"error":     err.Error(),
		})
	}
}
