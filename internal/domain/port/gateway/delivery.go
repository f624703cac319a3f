package gateway

import (
	"context"
	"encoding/json"
)

// DeliveryRequest is one data top-up submission
type DeliveryRequest struct {
	NetworkID      int
	Phone          string
	PlanReference  string
	Ported         bool
	IdempotencyKey string
}

// DeliveryResult is what the provider said about one attempt.
// Transport failures and timeouts are reported here as unsuccessful results.
type DeliveryResult struct {
	Success     bool
	ProviderRef string
	Reason      string
	Response    json.RawMessage
}

// DeliveryGateway fulfils paid data purchases
type DeliveryGateway interface {
	Deliver(ctx context.Context, req DeliveryRequest) DeliveryResult
}
