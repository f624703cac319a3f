package messaging

import (
	"context"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
)

// NoopPublisher drops every event; used when kafka is disabled
type NoopPublisher struct{}

var _ core.EventPublisher = NoopPublisher{}

// NewNoopPublisher creates a publisher that does nothing
func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

func (NoopPublisher) Publish(context.Context, core.Event) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
