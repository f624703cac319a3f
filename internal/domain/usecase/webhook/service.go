package webhook

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("sauki/webhook")

// Service routes authenticated payment notifications to checkout confirmation or wallet funding
type Service struct {
	transactions portuse.TransactionUseCase
	agents       portuse.AgentUseCase
	secret       []byte
	metrics      core.Metrics
	logger       core.Logger
}

var _ portuse.WebhookUseCase = (*Service)(nil)

// NewService creates a new webhook Service. An empty secret rejects every request.
func NewService(
	transactions portuse.TransactionUseCase,
	agents portuse.AgentUseCase,
	secret string,
	metrics core.Metrics,
	logger core.Logger,
) *Service {
	return &Service{
		transactions: transactions,
		agents:       agents,
		secret:       []byte(secret),
		metrics:      metrics,
		logger:       logger,
	}
}

// VerifySignature compares the verif-hash header with the shared secret in constant time
func (s *Service) VerifySignature(signature string) error {
	if len(s.secret) == 0 || signature == "" {
		return errs.ErrInvalidSignature
	}
	if subtle.ConstantTimeCompare([]byte(signature), s.secret) != 1 {
		return errs.ErrInvalidSignature
	}
	return nil
}

// HandlePaymentEvent acts on one authenticated event and reports what happened
func (s *Service) HandlePaymentEvent(ctx context.Context, event portuse.PaymentEvent) (portuse.WebhookOutcome, error) {
	ctx, span := tracer.Start(ctx, "Webhook.HandlePaymentEvent", trace.WithAttributes(
		attribute.String("event", event.Event),
		attribute.String("reference", event.Reference),
		attribute.String("status", event.Status),
	))
	defer span.End()

	outcome, err := s.dispatch(ctx, event)
	span.SetAttributes(attribute.String("outcome", string(outcome)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.metrics.WebhookHandled(string(outcome))

	fields := map[string]any{
		"event":             event.Event,
		"reference":         event.Reference,
		"provider_event_id": event.ProviderEventID,
		"amount":            event.Amount,
		"outcome":           outcome,
	}
	switch outcome {
	case portuse.OutcomeIgnored, portuse.OutcomeDuplicate:
		s.logger.Debug("Payment event not acted on", fields)
	case portuse.OutcomeRejected:
		for k, v := range errs.LogFields(err) {
			fields[k] = v
		}
		s.logger.Warn("Payment event rejected", fields)
	case portuse.OutcomeError:
		fields["error"] = err.Error()
		s.logger.Error("Payment event processing failed", fields)
	default:
		s.logger.Info("Payment event processed", fields)
	}
	return outcome, err
}

func (s *Service) dispatch(ctx context.Context, event portuse.PaymentEvent) (portuse.WebhookOutcome, error) {
	if !entity.IsPaymentSuccessStatus(event.Status) {
		return portuse.OutcomeIgnored, nil
	}
	reference := strings.TrimSpace(event.Reference)
	if reference == "" {
		return portuse.OutcomeRejected, errs.NewValidationError("tx_ref", "is required", nil)
	}

	if entity.IsAgentWalletReference(reference) {
		_, credited, err := s.agents.FundWallet(ctx, portuse.FundingRequest{
			AgentReference:  reference,
			ProviderEventID: event.ProviderEventID,
			Amount:          event.Amount,
		})
		if err != nil {
			return classify(err), err
		}
		if !credited {
			return portuse.OutcomeDuplicate, nil
		}
		return portuse.OutcomeFunded, nil
	}

	if _, err := s.transactions.ConfirmPayment(ctx, reference, event.Amount, event.ProviderEventID); err != nil {
		return classify(err), err
	}
	return portuse.OutcomeConfirmed, nil
}

// classify separates events that can never succeed from transient failures
func classify(err error) portuse.WebhookOutcome {
	if errs.IsValidationError(err) || errs.IsNotFoundError(err) || errs.IsAmountMismatchError(err) {
		return portuse.OutcomeRejected
	}
	return portuse.OutcomeError
}
