package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	coreport "github.com/saukimart/sauki-backend/internal/domain/port/core"
	"github.com/saukimart/sauki-backend/internal/domain/port/usecase"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/handler"
	"github.com/saukimart/sauki-backend/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups every HTTP handler the API exposes
type Handlers struct {
	Transaction *handler.TransactionHandler
	Catalog     *handler.CatalogHandler
	Agent       *handler.AgentHandler
	Admin       *handler.AdminHandler
	Webhook     *handler.WebhookHandler
	Health      *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API. metrics may be nil
// when the Prometheus endpoint is disabled.
func SetupRoutes(router *gin.Engine, h Handlers, admin usecase.AdminUseCase, metrics http.Handler) {
	router.GET("/health", h.Health.Health)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/api")
	{
		// Guest checkout and payment status
		api.POST("/buy/init", h.Transaction.Checkout)
		api.GET("/transaction/check/:reference", h.Transaction.Check)
		api.GET("/track/:phone", h.Transaction.Track)
		api.POST("/webhook", h.Webhook.Handle)

		api.GET("/plans", h.Catalog.ListActivePlans)
		api.GET("/products", h.Catalog.ListAvailableProducts)
	}

	agentRoutes := api.Group("/agent")
	{
		agentRoutes.POST("/register", h.Agent.Register)
		agentRoutes.POST("/login", h.Agent.Login)
		agentRoutes.POST("/create-account", h.Agent.CreateAccount)
		agentRoutes.POST("/buy", h.Agent.Buy)
	}

	api.POST("/admin/login", h.Admin.Login)

	adminRoutes := api.Group("/admin", middleware.AdminAuth(admin))
	{
		adminRoutes.POST("/logout", h.Admin.Logout)
		adminRoutes.GET("/stats", h.Admin.Stats)

		adminRoutes.GET("/transactions", h.Admin.ListTransactions)
		adminRoutes.POST("/transactions/:id/retry", h.Admin.RetryDelivery)

		adminRoutes.GET("/agents", h.Agent.List)
		adminRoutes.POST("/agents/:id/approve", h.Agent.Approve)
		adminRoutes.POST("/agents/:id/reject", h.Agent.Reject)

		adminRoutes.GET("/plans", h.Catalog.ListAllPlans)
		adminRoutes.POST("/plans", h.Catalog.CreatePlan)
		adminRoutes.PUT("/plans/:id", h.Catalog.UpdatePlan)
		adminRoutes.DELETE("/plans/:id", h.Catalog.DeletePlan)

		adminRoutes.GET("/products", h.Catalog.ListAllProducts)
		adminRoutes.POST("/products", h.Catalog.CreateProduct)
		adminRoutes.PUT("/products/:id", h.Catalog.UpdateProduct)
		adminRoutes.DELETE("/products/:id", h.Catalog.DeleteProduct)
	}
}

// SetupMiddlewares configures global middlewares for the API. observer may be
// nil when metrics are disabled.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.HTTPObserver, allowedOrigins []string) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
	router.Use(middleware.CORS(allowedOrigins))
}
