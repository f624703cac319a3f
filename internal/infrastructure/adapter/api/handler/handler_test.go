package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/saukimart/sauki-backend/internal/domain/entity"
	domainerr "github.com/saukimart/sauki-backend/internal/domain/error"
	"github.com/saukimart/sauki-backend/internal/domain/port/gateway"
	"github.com/saukimart/sauki-backend/internal/domain/port/persistence"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/dto"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/logger"
	mockusecase "github.com/saukimart/sauki-backend/mocks/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.ErrorHandler(logger.NewNoopLogger()))
	return router
}

func perform(router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func pendingTransaction() *entity.Transaction {
	planID := uint64(3)
	return &entity.Transaction{
		ID:            7,
		Reference:     "SAUKI-0A1B",
		Type:          entity.TypeDataPurchase,
		Status:        entity.StatusPending,
		Amount:        50000,
		Customer:      entity.Customer{Name: "Aisha Bello", Phone: "08031234567"},
		NetworkID:     1,
		PlanReference: "1001",
		DataPlanID:    &planID,
		CreatedAt:     testNow,
		UpdatedAt:     testNow,
	}
}

func TestTransactionHandler_Checkout(t *testing.T) {
	t.Run("returns the account to pay into", func(t *testing.T) {
		txs := mockusecase.NewMockTransactionUseCase(t)
		router := newRouter()
		router.POST("/api/buy/init", NewTransactionHandler(txs, logger.NewNoopLogger()).Checkout)

		expires := testNow.Add(30 * time.Minute)
		txs.On("Checkout", mock.Anything, mock.MatchedBy(func(req usecase.CheckoutRequest) bool {
			return req.Type == entity.TypeDataPurchase && req.PlanID != nil && *req.PlanID == 3 && req.Phone == "08031234567"
		})).Return(&usecase.CheckoutResult{
			Transaction: pendingTransaction(),
			Account: &gateway.VirtualAccount{
				BankName:      "Mock Bank",
				AccountNumber: "0067100155",
				AccountName:   "SAUKI MART",
				Amount:        50000,
				ExpiresAt:     &expires,
			},
		}, nil).Once()

		w := perform(router, http.MethodPost, "/api/buy/init",
			`{"name":"Aisha Bello","phone":"08031234567","type":"DATA_PURCHASE","planId":3}`, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.CheckoutResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "SAUKI-0A1B", resp.Reference)
		assert.Equal(t, int64(50000), resp.Amount)
		assert.Equal(t, "0067100155", resp.AccountNumber)
		assert.Equal(t, "Mock Bank", resp.BankName)
	})

	t.Run("rejects an unknown type before the use case", func(t *testing.T) {
		txs := mockusecase.NewMockTransactionUseCase(t)
		router := newRouter()
		router.POST("/api/buy/init", NewTransactionHandler(txs, logger.NewNoopLogger()).Checkout)

		w := perform(router, http.MethodPost, "/api/buy/init",
			`{"name":"Aisha","phone":"08031234567","type":"AIRTIME"}`, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeValidation, decodeError(t, w).Code)
	})

	t.Run("provider failure is a bad gateway", func(t *testing.T) {
		txs := mockusecase.NewMockTransactionUseCase(t)
		router := newRouter()
		router.POST("/api/buy/init", NewTransactionHandler(txs, logger.NewNoopLogger()).Checkout)

		txs.On("Checkout", mock.Anything, mock.Anything).
			Return(nil, domainerr.NewProviderError("flutterwave", "create_account", 500, "boom", nil)).Once()

		w := perform(router, http.MethodPost, "/api/buy/init",
			`{"name":"Aisha","phone":"08031234567","type":"DEVICE","productId":2}`, nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestTransactionHandler_Check(t *testing.T) {
	tests := []struct {
		name        string
		tx          *entity.Transaction
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "pending",
			tx:          pendingTransaction(),
			wantStatus:  http.StatusOK,
			wantMessage: "payment not yet confirmed",
		},
		{
			name: "delivered",
			tx: func() *entity.Transaction {
				tx := pendingTransaction()
				tx.Status = entity.StatusDelivered
				tx.Delivery = entity.Delivered{ProviderRef: "AMG-1"}
				return tx
			}(),
			wantStatus:  http.StatusOK,
			wantMessage: "data delivered",
		},
		{
			name:       "unknown reference",
			err:        domainerr.ErrTransactionNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txs := mockusecase.NewMockTransactionUseCase(t)
			router := newRouter()
			router.GET("/api/transaction/check/:reference", NewTransactionHandler(txs, logger.NewNoopLogger()).Check)

			if tt.err != nil {
				txs.On("VerifyPayment", mock.Anything, "SAUKI-0A1B").Return(nil, tt.err).Once()
			} else {
				txs.On("VerifyPayment", mock.Anything, "SAUKI-0A1B").Return(tt.tx, nil).Once()
			}

			w := perform(router, http.MethodGet, "/api/transaction/check/SAUKI-0A1B", "", nil)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.err != nil {
				assert.Equal(t, domainerr.CodeTransactionNotFound, decodeError(t, w).Code)
				return
			}
			var resp dto.TransactionStatusResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "SAUKI-0A1B", resp.Reference)
			assert.Equal(t, tt.wantMessage, resp.Message)
		})
	}
}

func TestTransactionHandler_Track(t *testing.T) {
	txs := mockusecase.NewMockTransactionUseCase(t)
	router := newRouter()
	router.GET("/api/track/:phone", NewTransactionHandler(txs, logger.NewNoopLogger()).Track)

	txs.On("Track", mock.Anything, "08031234567", 5).
		Return([]*entity.Transaction{pendingTransaction()}, nil).Once()

	w := perform(router, http.MethodGet, "/api/track/08031234567?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "₦500.00", resp[0].AmountDisplay)

	w = perform(router, http.MethodGet, "/api/track/08031234567?limit=ten", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_Handle(t *testing.T) {
	const body = `{"event":"charge.completed","data":{"id":887766,"tx_ref":"SAUKI-0A1B","amount":500,"status":"successful"}}`

	t.Run("bad signature is refused without processing", func(t *testing.T) {
		webhooks := mockusecase.NewMockWebhookUseCase(t)
		router := newRouter()
		router.POST("/api/webhook", NewWebhookHandler(webhooks, logger.NewNoopLogger()).Handle)

		webhooks.On("VerifySignature", "wrong").Return(domainerr.ErrInvalidSignature).Once()

		w := perform(router, http.MethodPost, "/api/webhook", body, map[string]string{SignatureHeader: "wrong"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{}`, w.Body.String())
		webhooks.AssertNotCalled(t, "HandlePaymentEvent", mock.Anything, mock.Anything)
	})

	t.Run("authenticated event is normalized and acknowledged", func(t *testing.T) {
		webhooks := mockusecase.NewMockWebhookUseCase(t)
		router := newRouter()
		router.POST("/api/webhook", NewWebhookHandler(webhooks, logger.NewNoopLogger()).Handle)

		webhooks.On("VerifySignature", "secret").Return(nil).Once()
		webhooks.On("HandlePaymentEvent", mock.Anything, usecase.PaymentEvent{
			Event:           "charge.completed",
			ProviderEventID: "887766",
			Reference:       "SAUKI-0A1B",
			Status:          "successful",
			Amount:          50000,
		}).Return(usecase.OutcomeConfirmed, nil).Once()

		w := perform(router, http.MethodPost, "/api/webhook", body, map[string]string{SignatureHeader: "secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("processing errors are still acknowledged", func(t *testing.T) {
		webhooks := mockusecase.NewMockWebhookUseCase(t)
		router := newRouter()
		router.POST("/api/webhook", NewWebhookHandler(webhooks, logger.NewNoopLogger()).Handle)

		webhooks.On("VerifySignature", "secret").Return(nil).Once()
		webhooks.On("HandlePaymentEvent", mock.Anything, mock.Anything).
			Return(usecase.OutcomeRejected, domainerr.NewAmountMismatchError("SAUKI-0A1B", 50000, 30000)).Once()

		w := perform(router, http.MethodPost, "/api/webhook", body, map[string]string{SignatureHeader: "secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	})

	t.Run("malformed body is acknowledged and dropped", func(t *testing.T) {
		webhooks := mockusecase.NewMockWebhookUseCase(t)
		router := newRouter()
		router.POST("/api/webhook", NewWebhookHandler(webhooks, logger.NewNoopLogger()).Handle)

		webhooks.On("VerifySignature", "secret").Return(nil).Once()

		w := perform(router, http.MethodPost, "/api/webhook", `{"event":`, map[string]string{SignatureHeader: "secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		webhooks.AssertNotCalled(t, "HandlePaymentEvent", mock.Anything, mock.Anything)
	})

	t.Run("oversized body is acknowledged and dropped", func(t *testing.T) {
		webhooks := mockusecase.NewMockWebhookUseCase(t)
		router := newRouter()
		router.POST("/api/webhook", NewWebhookHandler(webhooks, logger.NewNoopLogger()).Handle)

		webhooks.On("VerifySignature", "secret").Return(nil).Once()
		body := `{"event":"charge.completed","data":{"tx_ref":"SAUKI-0A1B","narration":"` +
			strings.Repeat("x", MaxWebhookBody) + `"}}`

		w := perform(router, http.MethodPost, "/api/webhook", body, map[string]string{SignatureHeader: "secret"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
		webhooks.AssertNotCalled(t, "HandlePaymentEvent", mock.Anything, mock.Anything)
	})
}

func activeAgent() *entity.Agent {
	return &entity.Agent{
		ID:        4,
		Name:      "Musa Ibrahim",
		Phone:     "08031234567",
		PinHash:   "$2a$10$hash",
		Status:    entity.AgentActive,
		Balance:   100000,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestAgentHandler(t *testing.T) {
	setup := func(t *testing.T) (*mockusecase.MockAgentUseCase, *gin.Engine) {
		agents := mockusecase.NewMockAgentUseCase(t)
		h := NewAgentHandler(agents, logger.NewNoopLogger())
		router := newRouter()
		router.POST("/api/agent/register", h.Register)
		router.POST("/api/agent/login", h.Login)
		router.POST("/api/agent/buy", h.Buy)
		router.GET("/api/admin/agents", h.List)
		router.POST("/api/admin/agents/:id/approve", h.Approve)
		return agents, router
	}

	t.Run("register hides the pin hash", func(t *testing.T) {
		agents, router := setup(t)
		pending := activeAgent()
		pending.Status = entity.AgentPending
		agents.On("Register", mock.Anything, usecase.RegisterAgentRequest{
			Name: "Musa Ibrahim", Phone: "08031234567", Pin: "1234",
		}).Return(pending, nil).Once()

		w := perform(router, http.MethodPost, "/api/agent/register",
			`{"name":"Musa Ibrahim","phone":"08031234567","pin":"1234"}`, nil)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "$2a$")
		assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
	})

	t.Run("login of an inactive agent is forbidden", func(t *testing.T) {
		agents, router := setup(t)
		agents.On("Login", mock.Anything, "08031234567", "1234").Return(nil, domainerr.ErrAgentNotActive).Once()

		w := perform(router, http.MethodPost, "/api/agent/login", `{"phone":"08031234567","pin":"1234"}`, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, domainerr.CodeAgentNotActive, decodeError(t, w).Code)
	})

	t.Run("buy with insufficient funds", func(t *testing.T) {
		agents, router := setup(t)
		agents.On("Purchase", mock.Anything, usecase.AgentPurchaseRequest{
			AgentID: 4, Pin: "1234", PlanID: 3, Phone: "08030000000",
		}).Return(nil, domainerr.NewInsufficientFundsError(4, 150000, 100000)).Once()

		w := perform(router, http.MethodPost, "/api/agent/buy",
			`{"agentId":4,"pin":"1234","planId":3,"phone":"08030000000"}`, nil)

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, domainerr.CodeInsufficientFunds, decodeError(t, w).Code)
	})

	t.Run("list passes the status filter", func(t *testing.T) {
		agents, router := setup(t)
		agents.On("List", mock.Anything, entity.AgentPending).Return([]*entity.Agent{activeAgent()}, nil).Once()

		w := perform(router, http.MethodGet, "/api/admin/agents?status=PENDING", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("approve rejects a malformed id", func(t *testing.T) {
		_, router := setup(t)

		w := perform(router, http.MethodPost, "/api/admin/agents/abc/approve", "", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("approve", func(t *testing.T) {
		agents, router := setup(t)
		agents.On("Approve", mock.Anything, uint64(4)).Return(activeAgent(), nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/agents/4/approve", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ACTIVE"`)
	})
}

func TestAdminHandler(t *testing.T) {
	setup := func(t *testing.T) (*mockusecase.MockAdminUseCase, *mockusecase.MockTransactionUseCase, *gin.Engine) {
		admin := mockusecase.NewMockAdminUseCase(t)
		txs := mockusecase.NewMockTransactionUseCase(t)
		h := NewAdminHandler(admin, txs, logger.NewNoopLogger())

		router := newRouter()
		router.POST("/api/admin/login", h.Login)
		protected := router.Group("/api/admin", middleware.AdminAuth(admin))
		protected.POST("/logout", h.Logout)
		protected.GET("/stats", h.Stats)
		protected.GET("/transactions", h.ListTransactions)
		protected.POST("/transactions/:id/retry", h.RetryDelivery)
		return admin, txs, router
	}
	bearer := map[string]string{"Authorization": "Bearer tok"}

	t.Run("login issues a session", func(t *testing.T) {
		admin, _, router := setup(t)
		admin.On("Login", mock.Anything, "admin@saukimart.com", "pw").
			Return(&usecase.Session{Token: "tok", ExpiresAt: testNow.Add(time.Hour)}, nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/login", `{"email":"admin@saukimart.com","password":"pw"}`, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "tok", resp.Token)
	})

	t.Run("login failure gives no hint", func(t *testing.T) {
		admin, _, router := setup(t)
		admin.On("Login", mock.Anything, "admin@saukimart.com", "bad").Return(nil, domainerr.ErrInvalidCredentials).Once()

		w := perform(router, http.MethodPost, "/api/admin/login", `{"email":"admin@saukimart.com","password":"bad"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decodeError(t, w).Message)
	})

	t.Run("protected routes need a bearer token", func(t *testing.T) {
		_, _, router := setup(t)

		w := perform(router, http.MethodGet, "/api/admin/stats", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout revokes the presented token", func(t *testing.T) {
		admin, _, router := setup(t)
		admin.On("Authenticate", mock.Anything, "tok").Return("admin@saukimart.com", nil).Once()
		admin.On("Logout", mock.Anything, "tok").Return(nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/logout", "", bearer)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("stats", func(t *testing.T) {
		admin, _, router := setup(t)
		admin.On("Authenticate", mock.Anything, "tok").Return("admin@saukimart.com", nil).Once()
		admin.On("Stats", mock.Anything).Return(&usecase.DashboardStats{
			TransactionStats: persistence.TransactionStats{Revenue: 87000, PaidCount: 1, DeliveredCount: 2},
			PendingAgents:    3,
			Recent:           []*entity.Transaction{pendingTransaction()},
		}, nil).Once()

		w := perform(router, http.MethodGet, "/api/admin/stats", "", bearer)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.StatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(87000), resp.Revenue)
		assert.Equal(t, int64(3), resp.PendingAgents)
		assert.Len(t, resp.Recent, 1)
	})

	t.Run("transactions are filtered", func(t *testing.T) {
		admin, _, router := setup(t)
		admin.On("Authenticate", mock.Anything, "tok").Return("admin@saukimart.com", nil).Once()
		admin.On("ListTransactions", mock.Anything, persistence.TransactionFilter{
			Status: entity.StatusFailed,
			Type:   entity.TypeDataPurchase,
			Limit:  20,
		}).Return([]*entity.Transaction{}, nil).Once()

		w := perform(router, http.MethodGet, "/api/admin/transactions?status=FAILED&type=DATA_PURCHASE&limit=20", "", bearer)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("retry of an unpaid transaction", func(t *testing.T) {
		admin, txs, router := setup(t)
		admin.On("Authenticate", mock.Anything, "tok").Return("admin@saukimart.com", nil).Once()
		txs.On("RetryDelivery", mock.Anything, uint64(7)).
			Return(nil, domainerr.NewValidationError("status", "payment not yet confirmed", domainerr.ErrPaymentNotConfirmed)).Once()

		w := perform(router, http.MethodPost, "/api/admin/transactions/7/retry", "", bearer)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodePaymentNotConfirmed, decodeError(t, w).Code)
	})
}

func TestCatalogHandler(t *testing.T) {
	setup := func(t *testing.T) (*mockusecase.MockCatalogUseCase, *gin.Engine) {
		catalog := mockusecase.NewMockCatalogUseCase(t)
		h := NewCatalogHandler(catalog)
		router := newRouter()
		router.GET("/api/plans", h.ListActivePlans)
		router.GET("/api/products", h.ListAvailableProducts)
		router.POST("/api/admin/plans", h.CreatePlan)
		router.DELETE("/api/admin/plans/:id", h.DeletePlan)
		return catalog, router
	}

	t.Run("public plans are active only", func(t *testing.T) {
		catalog, router := setup(t)
		catalog.On("ListPlans", mock.Anything, persistence.PlanFilter{ActiveOnly: true, NetworkID: 1}).
			Return([]*entity.DataPlan{{ID: 1, Network: "MTN", NetworkID: 1, PlanID: 1001, Name: "1GB SME", Price: 29000, Active: true}}, nil).Once()

		w := perform(router, http.MethodGet, "/api/plans?network=1", "", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var resp []dto.PlanResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "₦290.00", resp[0].PriceDisplay)
	})

	t.Run("public products are available only", func(t *testing.T) {
		catalog, router := setup(t)
		catalog.On("ListProducts", mock.Anything, true).Return([]*entity.Product{}, nil).Once()

		w := perform(router, http.MethodGet, "/api/products", "", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("create plan defaults to active", func(t *testing.T) {
		catalog, router := setup(t)
		catalog.On("CreatePlan", mock.Anything, mock.MatchedBy(func(p *entity.DataPlan) bool {
			return p.Active && p.Price == 58000 && p.PlanID == 1002
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entity.DataPlan).ID = 9
		}).Return(nil).Once()

		w := perform(router, http.MethodPost, "/api/admin/plans",
			`{"networkId":1,"planId":1002,"name":"2GB SME","price":58000}`, nil)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":9`)
	})

	t.Run("delete of a missing plan", func(t *testing.T) {
		catalog, router := setup(t)
		catalog.On("DeletePlan", mock.Anything, uint64(42)).Return(domainerr.ErrPlanNotFound).Once()

		w := perform(router, http.MethodDelete, "/api/admin/plans/42", "", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error {
	return p.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
	}{
		{name: "no database", wantStatus: http.StatusOK},
		{name: "database up", db: stubPinger{}, wantStatus: http.StatusOK},
		{name: "database down", db: stubPinger{err: errors.New("refused")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(tt.db).Health)

			w := perform(router, http.MethodGet, "/health", "", nil)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
