package flutterwave

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/saukimart/sauki-backend/internal/domain/entity"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	providerName   = "flutterwave"
	defaultBaseURL = "https://api.flutterwave.com"
	defaultTimeout = 20 * time.Second
	defaultEmail   = "guest@saukimart.com"
	currencyNGN    = "NGN"

	// keep error bodies short in logs and error messages
	maxErrorBody = 512
)

var tracer = otel.Tracer("sauki/flutterwave")

// Client talks to the Flutterwave v3 REST API
type Client struct {
	baseURL      string
	secretKey    string
	bvn          string
	defaultEmail string
	httpClient   *http.Client
	logger       core.Logger
}

var _ gateway.PaymentGateway = (*Client)(nil)

// NewClient creates a Flutterwave client from the payment config
func NewClient(cfg config.PaymentConfig, logger core.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	email := cfg.DefaultEmail
	if email == "" {
		email = defaultEmail
	}
	return &Client{
		baseURL:      baseURL,
		secretKey:    cfg.SecretKey,
		bvn:          cfg.BVN,
		defaultEmail: email,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger.With(map[string]any{"component": "flutterwave"}),
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
}

type chargeRequest struct {
	TxRef       string      `json:"tx_ref"`
	Amount      json.Number `json:"amount"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	Currency    string      `json:"currency"`
	FullName    string      `json:"fullname"`
	IsPermanent bool        `json:"is_permanent"`
	Narration   string      `json:"narration"`
}

type chargeMeta struct {
	Authorization struct {
		TransferReference string          `json:"transfer_reference"`
		TransferAccount   string          `json:"transfer_account"`
		TransferBank      string          `json:"transfer_bank"`
		TransferAmount    decimal.Decimal `json:"transfer_amount"`
		ExpiresAt         string          `json:"expires_at"`
		Mode              string          `json:"mode"`
	} `json:"authorization"`
}

type virtualAccountRequest struct {
	Email       string `json:"email"`
	IsPermanent bool   `json:"is_permanent"`
	BVN         string `json:"bvn"`
	TxRef       string `json:"tx_ref"`
	PhoneNumber string `json:"phonenumber"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	Narration   string `json:"narration"`
}

type virtualAccountData struct {
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	Note          string `json:"note"`
	ExpiryDate    string `json:"expiry_date"`
	FlwRef        string `json:"flw_ref"`
	OrderRef      string `json:"order_ref"`
}

type verifyData struct {
	ID       json.Number     `json:"id"`
	TxRef    string          `json:"tx_ref"`
	FlwRef   string          `json:"flw_ref"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
}

// CreateVirtualAccount issues a one-time transfer account for a checkout, or a
// permanent account when the request asks for one
func (c *Client) CreateVirtualAccount(ctx context.Context, req gateway.VirtualAccountRequest) (*gateway.VirtualAccount, error) {
	operation := "charge"
	if req.Permanent {
		operation = "virtual_account"
	}
	ctx, span := tracer.Start(ctx, "Flutterwave.CreateVirtualAccount", trace.WithAttributes(
		attribute.String("reference", req.Reference),
		attribute.Bool("permanent", req.Permanent),
	))
	defer span.End()

	var (
		account *gateway.VirtualAccount
		err     error
	)
	if req.Permanent {
		account, err = c.createStaticAccount(ctx, req)
	} else {
		account, err = c.createChargeAccount(ctx, req)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("Virtual account request failed", mergeFields(errs.LogFields(err), map[string]any{
			"reference": req.Reference,
			"operation": operation,
		}))
		return nil, err
	}

	c.logger.Info("Virtual account issued", map[string]any{
		"reference": req.Reference,
		"operation": operation,
		"bank":      account.BankName,
	})
	return account, nil
}

func (c *Client) createChargeAccount(ctx context.Context, req gateway.VirtualAccountRequest) (*gateway.VirtualAccount, error) {
	body := chargeRequest{
		TxRef:       req.Reference,
		Amount:      json.Number(entity.KoboToNaira(req.Amount).String()),
		Email:       c.emailFor(req.Email),
		PhoneNumber: req.Phone,
		Currency:    currencyNGN,
		FullName:    req.Name,
		IsPermanent: false,
		Narration:   narration(req),
	}

	env, err := c.do(ctx, "charge", http.MethodPost, "/v3/charges?type=bank_transfer", body)
	if err != nil {
		return nil, err
	}

	var meta chargeMeta
	if len(env.Meta) == 0 || json.Unmarshal(env.Meta, &meta) != nil {
		return nil, errs.NewProviderError(providerName, "charge", http.StatusOK, "response has no transfer details", nil)
	}
	auth := meta.Authorization
	if auth.TransferAccount == "" {
		return nil, errs.NewProviderError(providerName, "charge", http.StatusOK, "response has no transfer account", nil)
	}

	amount := req.Amount
	if auth.TransferAmount.IsPositive() {
		amount = entity.NairaToKobo(auth.TransferAmount)
	}
	return &gateway.VirtualAccount{
		BankName:      auth.TransferBank,
		AccountNumber: auth.TransferAccount,
		AccountName:   auth.TransferReference,
		Amount:        amount,
		ExpiresAt:     parseTime(auth.ExpiresAt),
	}, nil
}

func (c *Client) createStaticAccount(ctx context.Context, req gateway.VirtualAccountRequest) (*gateway.VirtualAccount, error) {
	if c.bvn == "" {
		return nil, errs.NewProviderError(providerName, "virtual_account", 0, "BVN is not configured", nil)
	}
	first, last := splitName(req.Name)
	body := virtualAccountRequest{
		Email:       c.emailFor(req.Email),
		IsPermanent: true,
		BVN:         c.bvn,
		TxRef:       req.Reference,
		PhoneNumber: req.Phone,
		FirstName:   first,
		LastName:    last,
		Narration:   narration(req),
	}

	env, err := c.do(ctx, "virtual_account", http.MethodPost, "/v3/virtual-account-numbers", body)
	if err != nil {
		return nil, err
	}

	var data virtualAccountData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccountNumber == "" {
		return nil, errs.NewProviderError(providerName, "virtual_account", http.StatusOK, "response has no account number", err)
	}
	accountName := data.Note
	if accountName == "" {
		accountName = req.Name
	}
	return &gateway.VirtualAccount{
		BankName:      data.BankName,
		AccountNumber: data.AccountNumber,
		AccountName:   accountName,
		ExpiresAt:     parseTime(data.ExpiryDate),
	}, nil
}

// Verify asks Flutterwave whether a reference has been paid
func (c *Client) Verify(ctx context.Context, reference string) (*gateway.Verification, error) {
	ctx, span := tracer.Start(ctx, "Flutterwave.Verify", trace.WithAttributes(attribute.String("reference", reference)))
	defer span.End()

	path := "/v3/transactions/verify_by_reference?tx_ref=" + url.QueryEscape(reference)
	env, err := c.do(ctx, "verify", http.MethodGet, path, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		err = errs.NewProviderError(providerName, "verify", http.StatusOK, "malformed transaction data", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if data.TxRef != reference {
		err := errs.NewProviderError(providerName, "verify", http.StatusOK, "response is for reference "+strconv.Quote(data.TxRef), nil)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	paid := entity.IsPaymentSuccessStatus(data.Status)
	if paid && !strings.EqualFold(data.Currency, currencyNGN) {
		c.logger.Warn("Payment settled in unexpected currency", map[string]any{
			"reference": reference,
			"currency":  data.Currency,
		})
		paid = false
	}

	verification := &gateway.Verification{
		Paid:           paid,
		AmountObserved: entity.NairaToKobo(data.Amount),
		ProviderRef:    data.ID.String(),
		Status:         data.Status,
	}
	span.SetAttributes(attribute.Bool("paid", verification.Paid))
	c.logger.Debug("Payment verified", map[string]any{
		"reference": reference,
		"status":    data.Status,
		"paid":      verification.Paid,
		"amount":    verification.AmountObserved,
	})
	return verification, nil
}

// do sends one JSON request and decodes the standard Flutterwave envelope.
// Transport errors, non-2xx responses and status != "success" become ProviderErrors.
func (c *Client) do(ctx context.Context, operation, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errs.NewProviderError(providerName, operation, 0, "encode request", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errs.NewProviderError(providerName, operation, 0, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errs.NewProviderError(providerName, operation, 0, transportMessage(err), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewProviderError(providerName, operation, resp.StatusCode, "read response", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = truncate(string(raw))
		}
		return nil, errs.NewProviderError(providerName, operation, resp.StatusCode, msg, nil)
	}
	if decodeErr != nil {
		return nil, errs.NewProviderError(providerName, operation, resp.StatusCode, "malformed response", decodeErr)
	}
	if !strings.EqualFold(env.Status, "success") {
		return nil, errs.NewProviderError(providerName, operation, resp.StatusCode, env.Message, nil)
	}
	return &env, nil
}

func (c *Client) emailFor(email string) string {
	if strings.TrimSpace(email) == "" {
		return c.defaultEmail
	}
	return email
}

func narration(req gateway.VirtualAccountRequest) string {
	if req.Narration != "" {
		return req.Narration
	}
	return "Sauki Mart " + req.Reference
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "Sauki", "Customer"
	case 1:
		return parts[0], "Customer"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

var expiryLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 3:04:05 PM",
}

// parseTime accepts the expiry formats Flutterwave has been seen to send; unknown formats give nil
func parseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" || value == "N/A" {
		return nil
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func transportMessage(err error) string {
	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "request timed out"
	}
	return "request failed"
}

func truncate(s string) string {
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

func mergeFields(base, extra map[string]any) map[string]any {
	for k, v := range extra {
		base[k] = v
	}
	return base
}
