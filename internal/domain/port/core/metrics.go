package core

import "time"

// Metrics records business counters for payments and fulfilment.
type Metrics interface {
	// PaymentConfirmed counts a PENDING -> PAID transition
	PaymentConfirmed(txType string)
	// DeliveryCompleted records one delivery attempt and how long the provider took
	DeliveryCompleted(outcome string, elapsed time.Duration)
	// WebhookHandled counts an inbound webhook by outcome
	WebhookHandled(outcome string)
	// WalletFunded counts a credited agent funding
	WalletFunded(amount int64)
}
