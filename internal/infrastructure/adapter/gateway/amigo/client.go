package amigo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBaseURL = "https://amigo.ng/api"
	defaultTimeout = 30 * time.Second
	maxResponse    = 64 << 10
)

var tracer = otel.Tracer("sauki/amigo")

// Client submits data top-ups to the Amigo API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     core.Logger
}

var _ gateway.DeliveryGateway = (*Client)(nil)

// NewClient creates an Amigo client from the delivery config
func NewClient(cfg config.DeliveryConfig, logger core.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(map[string]any{"component": "amigo"}),
	}
}

type dataRequest struct {
	Network      int    `json:"network"`
	MobileNumber string `json:"mobile_number"`
	Plan         int    `json:"plan"`
	PortedNumber bool   `json:"Ported_number"`
}

type dataResponse struct {
	Success   *bool           `json:"success"`
	Reference json.RawMessage `json:"reference"`
	ID        json.RawMessage `json:"id"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
}

// Deliver submits one attempt. Every failure mode, including timeouts, is reported
// as an unsuccessful result carrying whatever the provider said.
func (c *Client) Deliver(ctx context.Context, req gateway.DeliveryRequest) gateway.DeliveryResult {
	ctx, span := tracer.Start(ctx, "Amigo.Deliver", trace.WithAttributes(
		attribute.Int("network", req.NetworkID),
		attribute.String("plan", req.PlanReference),
		attribute.String("idempotency_key", req.IdempotencyKey),
	))
	defer span.End()

	result := c.deliver(ctx, req)
	span.SetAttributes(attribute.Bool("success", result.Success))
	if !result.Success {
		span.SetStatus(codes.Error, result.Reason)
		c.logger.Warn("Data delivery rejected", map[string]any{
			"idempotency_key": req.IdempotencyKey,
			"network":         req.NetworkID,
			"plan":            req.PlanReference,
			"reason":          result.Reason,
		})
		return result
	}

	c.logger.Info("Data delivered", map[string]any{
		"idempotency_key": req.IdempotencyKey,
		"provider_ref":    result.ProviderRef,
	})
	return result
}

func (c *Client) deliver(ctx context.Context, req gateway.DeliveryRequest) gateway.DeliveryResult {
	plan, err := strconv.Atoi(strings.TrimSpace(req.PlanReference))
	if err != nil {
		return failure(fmt.Sprintf("invalid plan reference %q", req.PlanReference), nil)
	}

	payload, err := json.Marshal(dataRequest{
		Network:      req.NetworkID,
		MobileNumber: req.Phone,
		Plan:         plan,
		PortedNumber: req.Ported,
	})
	if err != nil {
		return failure("encode request: "+err.Error(), nil)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/data/", bytes.NewReader(payload))
	if err != nil {
		return failure("build request: "+err.Error(), nil)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-API-Key", c.apiKey)
	if req.IdempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failure(transportReason(err), nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return failure("read response: "+err.Error(), nil)
	}
	body := asJSON(raw)

	var parsed dataResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return failure(fmt.Sprintf("provider returned status %d%s", resp.StatusCode, detail(parsed)), body)
	}
	if decodeErr != nil {
		return failure("malformed provider response", body)
	}
	if parsed.Success != nil && !*parsed.Success {
		return failure("provider reported failure"+detail(parsed), body)
	}

	return gateway.DeliveryResult{
		Success:     true,
		ProviderRef: providerRef(parsed),
		Response:    body,
	}
}

func failure(reason string, response json.RawMessage) gateway.DeliveryResult {
	if response == nil {
		response, _ = json.Marshal(map[string]string{"error": reason})
	}
	return gateway.DeliveryResult{Success: false, Reason: reason, Response: response}
}

// providerRef prefers "reference" over "id"; both may be strings or numbers
func providerRef(resp dataResponse) string {
	for _, raw := range []json.RawMessage{resp.Reference, resp.ID} {
		if ref := scalar(raw); ref != "" {
			return ref
		}
	}
	return ""
}

func scalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func detail(resp dataResponse) string {
	switch {
	case resp.Message != "":
		return ": " + resp.Message
	case resp.Error != "":
		return ": " + resp.Error
	default:
		return ""
	}
}

// asJSON keeps valid JSON bodies as they are and wraps anything else as a string
func asJSON(raw []byte) json.RawMessage {
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	wrapped, _ := json.Marshal(map[string]string{"raw": string(raw)})
	return wrapped
}

func transportReason(err error) string {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "delivery request timed out"
	}
	if errors.Is(err, context.Canceled) {
		return "delivery request cancelled"
	}
	return "delivery request failed: " + err.Error()
}
