package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saukimart/sauki-backend/internal/domain/entity"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
)

// AdminHandler serves admin sessions, the dashboard and transaction operations
type AdminHandler struct {
	admin        usecase.AdminUseCase
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	admin usecase.AdminUseCase,
	transactions usecase.TransactionUseCase,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		admin:        admin,
		transactions: transactions,
		logger:       logger,
	}
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.admin.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Admin login failed", map[string]any{"client_ip": c.ClientIP()})
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.admin.Logout(c.Request.Context(), c.GetString(middleware.AdminTokenKey)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(stats))
}

// ListTransactions handles GET /api/admin/transactions?status=&type=&limit=
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	txs, err := h.admin.ListTransactions(c.Request.Context(), persistence.TransactionFilter{
		Status: entity.TransactionStatus(c.Query("status")),
		Type:   entity.TransactionType(c.Query("type")),
		Limit:  limit,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(txs))
}

// RetryDelivery handles POST /api/admin/transactions/:id/retry
func (h *AdminHandler) RetryDelivery(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactions.RetryDelivery(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Delivery retried by admin", map[string]any{
		"transaction_id": tx.ID,
		"status":         string(tx.Status),
		"attempts":       tx.DeliveryAttempts,
		"admin":          c.GetString(middleware.AdminEmailKey),
	})
	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx))
}
