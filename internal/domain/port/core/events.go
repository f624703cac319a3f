package core

import (
	"context"
	"time"
)

// Lifecycle event types published by the domain.
const (
	EventTransactionPaid           = "transaction.paid"
	EventTransactionDelivered      = "transaction.delivered"
	EventTransactionDeliveryFailed = "transaction.delivery_failed"
	EventTransactionFailed         = "transaction.failed"
	EventWalletFunded              = "wallet.funded"
	EventAgentPurchase             = "agent.purchase"
)

// Event is a single lifecycle notification. Key is used for partitioning,
// normally the transaction reference.
type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurredAt"`
	Payload    map[string]any `json:"payload"`
}

// EventPublisher delivers lifecycle events to downstream consumers.
// Publishing is best effort: callers log failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}
