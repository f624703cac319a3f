package webhook

import (
	"context"
	"errors"
	"testing"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	portuse "github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	mcore "github.com/saukimart/sauki-backend/mocks/port/core"
	muse "github.com/saukimart/sauki-backend/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "flw-webhook-secret"

func setupService(t *testing.T) (*Service, *muse.MockTransactionUseCase, *muse.MockAgentUseCase, *mcore.MockMetrics) {
	transactions := muse.NewMockTransactionUseCase(t)
	agents := muse.NewMockAgentUseCase(t)
	metrics := mcore.NewMockMetrics(t)
	service := NewService(transactions, agents, secret, metrics, mcore.NewMockLogger(t).AllowAll())
	return service, transactions, agents, metrics
}

func TestService_VerifySignature(t *testing.T) {
	service, _, _, _ := setupService(t)

	assert.NoError(t, service.VerifySignature(secret))
	assert.ErrorIs(t, service.VerifySignature(""), errs.ErrInvalidSignature)
	assert.ErrorIs(t, service.VerifySignature("flw-webhook-secreT"), errs.ErrInvalidSignature)
	assert.ErrorIs(t, service.VerifySignature(secret+"x"), errs.ErrInvalidSignature)

	t.Run("No configured secret rejects everything", func(t *testing.T) {
		unconfigured := NewService(nil, nil, "", nil, nil)
		assert.ErrorIs(t, unconfigured.VerifySignature(""), errs.ErrInvalidSignature)
		assert.True(t, errs.IsAuthError(unconfigured.VerifySignature("anything")))
	})
}

func TestService_HandlePaymentEvent(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name    string
		event   portuse.PaymentEvent
		setup   func(tx *muse.MockTransactionUseCase, agents *muse.MockAgentUseCase)
		outcome portuse.WebhookOutcome
		wantErr bool
	}{
		{
			name:    "Failed charge is ignored",
			event:   portuse.PaymentEvent{Event: "charge.completed", Reference: "SAUKI-1", Status: "failed", Amount: 50000},
			outcome: portuse.OutcomeIgnored,
		},
		{
			name:  "Checkout payment is confirmed",
			event: portuse.PaymentEvent{Event: "charge.completed", ProviderEventID: "9001", Reference: "SAUKI-1", Status: "successful", Amount: 50000},
			setup: func(tx *muse.MockTransactionUseCase, _ *muse.MockAgentUseCase) {
				tx.On("ConfirmPayment", mock.Anything, "SAUKI-1", int64(50000), "9001").
					Return(&entity.Transaction{Reference: "SAUKI-1", Status: entity.StatusDelivered}, nil).Once()
			},
			outcome: portuse.OutcomeConfirmed,
		},
		{
			name:  "Underpayment is rejected",
			event: portuse.PaymentEvent{ProviderEventID: "9002", Reference: "SAUKI-2", Status: "successful", Amount: 30000},
			setup: func(tx *muse.MockTransactionUseCase, _ *muse.MockAgentUseCase) {
				tx.On("ConfirmPayment", mock.Anything, "SAUKI-2", int64(30000), "9002").
					Return(nil, errs.NewAmountMismatchError("SAUKI-2", 50000, 30000)).Once()
			},
			outcome: portuse.OutcomeRejected,
			wantErr: true,
		},
		{
			name:  "Unknown reference is rejected",
			event: portuse.PaymentEvent{ProviderEventID: "9003", Reference: "SAUKI-404", Status: "successful", Amount: 100},
			setup: func(tx *muse.MockTransactionUseCase, _ *muse.MockAgentUseCase) {
				tx.On("ConfirmPayment", mock.Anything, "SAUKI-404", int64(100), "9003").
					Return(nil, errs.ErrTransactionNotFound).Once()
			},
			outcome: portuse.OutcomeRejected,
			wantErr: true,
		},
		{
			name:  "Store outage is an error",
			event: portuse.PaymentEvent{ProviderEventID: "9004", Reference: "SAUKI-4", Status: "successful", Amount: 100},
			setup: func(tx *muse.MockTransactionUseCase, _ *muse.MockAgentUseCase) {
				tx.On("ConfirmPayment", mock.Anything, "SAUKI-4", int64(100), "9004").
					Return(nil, errors.New("connection refused")).Once()
			},
			outcome: portuse.OutcomeError,
			wantErr: true,
		},
		{
			name:  "Agent reference funds the wallet",
			event: portuse.PaymentEvent{ProviderEventID: "9005", Reference: "AGENT-7", Status: "completed", Amount: 100000},
			setup: func(_ *muse.MockTransactionUseCase, agents *muse.MockAgentUseCase) {
				agents.On("FundWallet", mock.Anything, portuse.FundingRequest{
					AgentReference: "AGENT-7", ProviderEventID: "9005", Amount: 100000,
				}).Return(&entity.Transaction{Reference: "FUND-9005"}, true, nil).Once()
			},
			outcome: portuse.OutcomeFunded,
		},
		{
			name:  "Replayed funding is a duplicate",
			event: portuse.PaymentEvent{ProviderEventID: "9005", Reference: "AGENT-7", Status: "successful", Amount: 100000},
			setup: func(_ *muse.MockTransactionUseCase, agents *muse.MockAgentUseCase) {
				agents.On("FundWallet", mock.Anything, mock.Anything).
					Return(&entity.Transaction{Reference: "FUND-9005"}, false, nil).Once()
			},
			outcome: portuse.OutcomeDuplicate,
		},
		{
			name:  "Funding without an event id is rejected",
			event: portuse.PaymentEvent{Reference: "AGENT-7", Status: "successful", Amount: 100000},
			setup: func(_ *muse.MockTransactionUseCase, agents *muse.MockAgentUseCase) {
				agents.On("FundWallet", mock.Anything, mock.Anything).
					Return(nil, false, errs.NewValidationError("id", "funding event has no provider id", nil)).Once()
			},
			outcome: portuse.OutcomeRejected,
			wantErr: true,
		},
		{
			name:    "Missing reference is rejected",
			event:   portuse.PaymentEvent{ProviderEventID: "9006", Status: "successful", Amount: 100},
			outcome: portuse.OutcomeRejected,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, transactions, agents, metrics := setupService(t)
			if tc.setup != nil {
				tc.setup(transactions, agents)
			}
			metrics.On("WebhookHandled", string(tc.outcome)).Once()

			outcome, err := service.HandlePaymentEvent(ctx, tc.event)

			assert.Equal(t, tc.outcome, outcome)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
