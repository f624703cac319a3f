package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/shopspring/decimal"
)

// ProviderID accepts an id sent either as a JSON number or a string
type ProviderID string

// UnmarshalJSON implements json.Unmarshaler
func (id *ProviderID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProviderID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProviderID(n.String())
	return nil
}

// WebhookData is the "data" object of a v3 notification
type WebhookData struct {
	ID     ProviderID      `json:"id"`
	TxRef  string          `json:"tx_ref"`
	FlwRef string          `json:"flw_ref"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

// WebhookPayload accepts both the v3 envelope {"event", "data": {...}} and
// the legacy flat layout {"id", "txRef", "amount", "status"}
type WebhookPayload struct {
	Event     string       `json:"event"`
	EventType string       `json:"event.type"`
	Data      *WebhookData `json:"data"`

	ID     ProviderID      `json:"id"`
	TxRef  string          `json:"txRef"`
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
}

// ToEvent normalizes the payload to a kobo-denominated payment event
func (p WebhookPayload) ToEvent() usecase.PaymentEvent {
	event := p.Event
	if event == "" {
		event = p.EventType
	}
	if p.Data != nil && (p.Data.TxRef != "" || p.Data.ID != "") {
		return usecase.PaymentEvent{
			Event:           event,
			ProviderEventID: string(p.Data.ID),
			Reference:       p.Data.TxRef,
			Status:          p.Data.Status,
			Amount:          entity.NairaToKobo(p.Data.Amount),
		}
	}
	return usecase.PaymentEvent{
		Event:           event,
		ProviderEventID: string(p.ID),
		Reference:       p.TxRef,
		Status:          p.Status,
		Amount:          entity.NairaToKobo(p.Amount),
	}
}
