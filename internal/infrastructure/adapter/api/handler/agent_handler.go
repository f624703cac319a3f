package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saukimart/sauki-backend/internal/domain/entity"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
)

// AgentHandler serves reseller self-service and the admin agent endpoints
type AgentHandler struct {
	agents usecase.AgentUseCase
	logger coreport.Logger
}

// NewAgentHandler creates a new agent handler instance
func NewAgentHandler(agents usecase.AgentUseCase, logger coreport.Logger) *AgentHandler {
	return &AgentHandler{
		agents: agents,
		logger: logger,
	}
}

// Register handles POST /api/agent/register
func (h *AgentHandler) Register(c *gin.Context) {
	var req dto.RegisterAgentRequest
	if !bindJSON(c, &req) {
		return
	}

	agent, err := h.agents.Register(c.Request.Context(), usecase.RegisterAgentRequest{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Pin:   req.Pin,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Agent registered", map[string]any{"agent_id": agent.ID})
	c.JSON(http.StatusCreated, dto.NewAgentResponse(agent))
}

// Login handles POST /api/agent/login
func (h *AgentHandler) Login(c *gin.Context) {
	var req dto.AgentLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	agent, err := h.agents.Login(c.Request.Context(), req.Phone, req.Pin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAgentResponse(agent))
}

// CreateAccount handles POST /api/agent/create-account
func (h *AgentHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	agent, err := h.agents.CreateWalletAccount(c.Request.Context(), req.AgentID, req.Pin)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAgentResponse(agent))
}

// Buy handles POST /api/agent/buy. A failed delivery still answers 200 with
// the FAILED transaction; the wallet debit stands until an admin retries.
func (h *AgentHandler) Buy(c *gin.Context) {
	var req dto.AgentBuyRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.agents.Purchase(c.Request.Context(), usecase.AgentPurchaseRequest{
		AgentID: req.AgentID,
		Pin:     req.Pin,
		PlanID:  req.PlanID,
		Phone:   req.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}

// List handles GET /api/admin/agents with an optional ?status filter
func (h *AgentHandler) List(c *gin.Context) {
	agents, err := h.agents.List(c.Request.Context(), entity.AgentStatus(c.Query("status")))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAgentResponses(agents))
}

// Approve handles POST /api/admin/agents/:id/approve
func (h *AgentHandler) Approve(c *gin.Context) {
	h.review(c, h.agents.Approve)
}

// Reject handles POST /api/admin/agents/:id/reject
func (h *AgentHandler) Reject(c *gin.Context) {
	h.review(c, h.agents.Reject)
}

func (h *AgentHandler) review(c *gin.Context, action func(ctx context.Context, id uint64) (*entity.Agent, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	agent, err := action(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Agent reviewed", map[string]any{
		"agent_id": agent.ID,
		"status":   string(agent.Status),
		"admin":    c.GetString(middleware.AdminEmailKey),
	})
	c.JSON(http.StatusOK, dto.NewAgentResponse(agent))
}
