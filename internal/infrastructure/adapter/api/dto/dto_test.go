package dto

import (
	"encoding/json"
	"testing"

	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookPayload_ToEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want usecase.PaymentEvent
	}{
		{
			name: "v3 envelope",
			body: `{"event":"charge.completed","data":{"id":285959875,"tx_ref":"SAUKI-0A1B","flw_ref":"FLW-MOCK","amount":500,"status":"successful"}}`,
			want: usecase.PaymentEvent{
				Event:           "charge.completed",
				ProviderEventID: "285959875",
				Reference:       "SAUKI-0A1B",
				Status:          "successful",
				Amount:          50000,
			},
		},
		{
			name: "legacy flat layout",
			body: `{"event.type":"BANK_TRANSFER_TRANSACTION","id":"9988","txRef":"AGENT-4","amount":"1500.50","status":"successful"}`,
			want: usecase.PaymentEvent{
				Event:           "BANK_TRANSFER_TRANSACTION",
				ProviderEventID: "9988",
				Reference:       "AGENT-4",
				Status:          "successful",
				Amount:          150050,
			},
		},
		{
			name: "missing amount",
			body: `{"event":"charge.completed","data":{"id":1,"tx_ref":"SAUKI-0A1B","status":"failed"}}`,
			want: usecase.PaymentEvent{
				Event:           "charge.completed",
				ProviderEventID: "1",
				Reference:       "SAUKI-0A1B",
				Status:          "failed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload WebhookPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &payload))
			assert.Equal(t, tt.want, payload.ToEvent())
		})
	}
}

func TestProviderID_RejectsObjects(t *testing.T) {
	var id ProviderID
	assert.Error(t, json.Unmarshal([]byte(`{"nested":1}`), &id))
}

func TestPlanRequest_ToEntity_DefaultsActive(t *testing.T) {
	plan := PlanRequest{NetworkID: 1, PlanID: 1001, Name: "1GB SME", Price: 29000}.ToEntity(7)
	assert.True(t, plan.Active)
	assert.Equal(t, uint64(7), plan.ID)

	inactive := false
	plan = PlanRequest{NetworkID: 1, PlanID: 1001, Name: "1GB SME", Price: 29000, Active: &inactive}.ToEntity(7)
	assert.False(t, plan.Active)
}
