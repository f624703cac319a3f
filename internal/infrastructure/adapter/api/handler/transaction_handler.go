package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
)

// TransactionHandler serves the guest checkout, status polling and tracking endpoints
type TransactionHandler struct {
	transactions usecase.TransactionUseCase
	logger       coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(transactions usecase.TransactionUseCase, logger coreport.Logger) *TransactionHandler {
	return &TransactionHandler{
		transactions: transactions,
		logger:       logger,
	}
}

// Checkout handles POST /api/buy/init
func (h *TransactionHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.transactions.Checkout(c.Request.Context(), req.ToUseCase())
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.logger.Info("Checkout initialised", map[string]any{
		"reference": result.Transaction.Reference,
		"type":      string(result.Transaction.Type),
		"amount":    result.Transaction.Amount,
	})
	c.JSON(http.StatusOK, dto.NewCheckoutResponse(result))
}

// Check handles GET /api/transaction/check/:reference. A still pending
// transaction is verified with the payment provider before answering.
func (h *TransactionHandler) Check(c *gin.Context) {
	tx, err := h.transactions.VerifyPayment(c.Request.Context(), c.Param("reference"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionStatusResponse(tx))
}

// Track handles GET /api/track/:phone
func (h *TransactionHandler) Track(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	txs, err := h.transactions.Track(c.Request.Context(), c.Param("phone"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewTransactionResponses(txs))
}
