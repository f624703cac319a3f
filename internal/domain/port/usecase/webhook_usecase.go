package usecase

import "context"

// PaymentEvent is one provider notification, already normalized to kobo
type PaymentEvent struct {
	Event           string
	ProviderEventID string
	Reference       string
	Status          string
	Amount          int64
}

// WebhookOutcome labels what happened to an event, for logs and metrics
type WebhookOutcome string

// Webhook outcomes
const (
	OutcomeIgnored   WebhookOutcome = "ignored"
	OutcomeConfirmed WebhookOutcome = "confirmed"
	OutcomeDuplicate WebhookOutcome = "duplicate"
	OutcomeFunded    WebhookOutcome = "funded"
	OutcomeRejected  WebhookOutcome = "rejected"
	OutcomeError     WebhookOutcome = "error"
)

// WebhookUseCase authenticates and processes payment notifications
type WebhookUseCase interface {
	// VerifySignature compares the inbound signature with the shared secret
	VerifySignature(signature string) error

	// HandlePaymentEvent processes an authenticated event. Errors are for logging only.
	HandlePaymentEvent(ctx context.Context, event PaymentEvent) (WebhookOutcome, error)
}
