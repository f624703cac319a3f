package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
)

const (
	// SignatureHeader carries the shared webhook secret
	SignatureHeader = "verif-hash"

	// MaxWebhookBody caps the notification body read after authentication
	MaxWebhookBody = 64 << 10
)

// WebhookHandler receives payment provider notifications
type WebhookHandler struct {
	webhooks usecase.WebhookUseCase
	logger   coreport.Logger
}

// NewWebhookHandler creates a new webhook handler instance
func NewWebhookHandler(webhooks usecase.WebhookUseCase, logger coreport.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		logger:   logger,
	}
}

// Handle handles POST /api/webhook. Only a bad signature is refused; every
// authenticated notification is acknowledged so the provider stops retrying.
func (h *WebhookHandler) Handle(c *gin.Context) {
	if err := h.webhooks.VerifySignature(c.GetHeader(SignatureHeader)); err != nil {
		h.logger.Warn("Webhook signature rejected", map[string]any{
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(middleware.RequestIDKey),
		})
		c.JSON(http.StatusUnauthorized, gin.H{})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxWebhookBody)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("Webhook body too large", map[string]any{"limit": tooLarge.Limit})
		} else {
			h.logger.Error("Failed to read webhook body", map[string]any{"error": err.Error()})
		}
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
		return
	}

	var payload dto.WebhookPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Malformed webhook payload", map[string]any{
			"error": err.Error(),
			"size":  len(raw),
		})
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
		return
	}

	event := payload.ToEvent()
	outcome, err := h.webhooks.HandlePaymentEvent(c.Request.Context(), event)
	fields := map[string]any{
		"event":             event.Event,
		"reference":         event.Reference,
		"provider_event_id": event.ProviderEventID,
		"outcome":           string(outcome),
	}
	if err != nil {
		fields["error"] = err.Error()
		h.logger.Error("Webhook processing failed", fields)
	} else {
		h.logger.Info("Webhook processed", fields)
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: "ok"})
}
