package repository

import (
	"encoding/json"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/model"
	"gorm.io/datatypes"
)

func transactionToModel(tx *entity.Transaction) model.Transaction {
	state, providerRef, reason := entity.DeliveryColumns(tx.Delivery)
	return model.Transaction{
		ID:                    tx.ID,
		Reference:             tx.Reference,
		Type:                  string(tx.Type),
		Status:                string(tx.Status),
		Amount:                tx.Amount,
		CustomerName:          tx.Customer.Name,
		CustomerPhone:         tx.Customer.Phone,
		CustomerEmail:         tx.Customer.Email,
		NetworkID:             tx.NetworkID,
		PlanReference:         tx.PlanReference,
		DataPlanID:            tx.DataPlanID,
		ProductID:             tx.ProductID,
		AgentID:               tx.AgentID,
		Description:           tx.Description,
		PaymentProviderRef:    tx.PaymentProviderRef,
		DeliveryState:         string(state),
		DeliveryProviderRef:   providerRef,
		DeliveryFailureReason: reason,
		DeliveryResponse:      jsonColumn(tx.DeliveryResponse),
		DeliveryAttempts:      tx.DeliveryAttempts,
		PaidAt:                tx.PaidAt,
		DeliveredAt:           tx.DeliveredAt,
		CreatedAt:             tx.CreatedAt,
		UpdatedAt:             tx.UpdatedAt,
	}
}

func transactionToEntity(m *model.Transaction) *entity.Transaction {
	tx := &entity.Transaction{
		ID:        m.ID,
		Reference: m.Reference,
		Type:      entity.TransactionType(m.Type),
		Status:    entity.TransactionStatus(m.Status),
		Amount:    m.Amount,
		Customer: entity.Customer{
			Name:  m.CustomerName,
			Phone: m.CustomerPhone,
			Email: m.CustomerEmail,
		},
		NetworkID:          m.NetworkID,
		PlanReference:      m.PlanReference,
		DataPlanID:         m.DataPlanID,
		ProductID:          m.ProductID,
		AgentID:            m.AgentID,
		Description:        m.Description,
		PaymentProviderRef: m.PaymentProviderRef,
		Delivery: entity.RestoreDeliveryOutcome(
			entity.DeliveryState(m.DeliveryState), m.DeliveryProviderRef, m.DeliveryFailureReason),
		DeliveryAttempts: m.DeliveryAttempts,
		PaidAt:           m.PaidAt,
		DeliveredAt:      m.DeliveredAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if len(m.DeliveryResponse) > 0 {
		tx.DeliveryResponse = json.RawMessage(m.DeliveryResponse)
	}
	return tx
}

// jsonColumn keeps NULL for absent payloads; invalid JSON is stored as a JSON string
func jsonColumn(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return nil
	}
	if !json.Valid(raw) {
		quoted, _ := json.Marshal(string(raw))
		return datatypes.JSON(quoted)
	}
	return datatypes.JSON(raw)
}

func agentToModel(a *entity.Agent) model.Agent {
	m := model.Agent{
		ID:        a.ID,
		Name:      a.Name,
		Phone:     a.Phone,
		Email:     a.Email,
		PinHash:   a.PinHash,
		Status:    string(a.Status),
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.VirtualAccount != nil {
		m.VirtualAccountBank = a.VirtualAccount.BankName
		m.VirtualAccountNumber = a.VirtualAccount.AccountNumber
		m.VirtualAccountName = a.VirtualAccount.AccountName
	}
	return m
}

func agentToEntity(m *model.Agent) *entity.Agent {
	a := &entity.Agent{
		ID:        m.ID,
		Name:      m.Name,
		Phone:     m.Phone,
		Email:     m.Email,
		PinHash:   m.PinHash,
		Status:    entity.AgentStatus(m.Status),
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.VirtualAccountNumber != "" {
		a.VirtualAccount = &entity.VirtualAccount{
			BankName:      m.VirtualAccountBank,
			AccountNumber: m.VirtualAccountNumber,
			AccountName:   m.VirtualAccountName,
		}
	}
	return a
}

func planToModel(p *entity.DataPlan) model.DataPlan {
	return model.DataPlan{
		ID:        p.ID,
		Network:   p.Network,
		NetworkID: p.NetworkID,
		PlanID:    p.PlanID,
		Name:      p.Name,
		Validity:  p.Validity,
		Price:     p.Price,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func planToEntity(m *model.DataPlan) *entity.DataPlan {
	return &entity.DataPlan{
		ID:        m.ID,
		Network:   m.Network,
		NetworkID: m.NetworkID,
		PlanID:    m.PlanID,
		Name:      m.Name,
		Validity:  m.Validity,
		Price:     m.Price,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func productToModel(p *entity.Product) model.Product {
	return model.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func productToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		InStock:     m.InStock,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
