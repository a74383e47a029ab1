package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sweeply/internal/auth"
	"sweeply/internal/handler/api"
	"sweeply/internal/middleware"
	"sweeply/internal/repository"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	tokens *auth.Manager,
	services *api.Services,
	deduper middleware.RequestDeduper,
	logger *zap.Logger,
) {
	// Global middleware
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	// Repositories
	repos := &api.Repos{
		Account:     repository.NewAccountRepository(db),
		Client:      repository.NewClientRepository(db),
		Job:         repository.NewJobRepository(db),
		Invoice:     repository.NewInvoiceRepository(db),
		ServiceRate: repository.NewServiceRateRepository(db),
	}
	apiLogs := repository.NewAPILogRepository(db)

	// Handlers
	authHandler := api.NewAuthHandler(repos, tokens, logger)
	jobHandler := api.NewJobHandler(services.Series, logger)
	clientHandler := api.NewClientHandler(repos, logger)
	invoiceHandler := api.NewInvoiceHandler(repos, services.Invoices, logger)
	estimateHandler := api.NewEstimateHandler(repos, services.Estimator, logger)

	// Public auth routes
	authGroup := e.Group("/api/v1/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Authenticated API group with logging + idempotency middleware
	v1 := e.Group("/api/v1")
	v1.Use(middleware.JWTAuth(tokens))
	v1.Use(middleware.APILogger(apiLogs))
	v1.Use(middleware.Idempotency(deduper))

	// Jobs
	v1.GET("/jobs", jobHandler.List)
	v1.POST("/jobs", jobHandler.Create)
	v1.POST("/jobs/recurring", jobHandler.CreateRecurring)
	v1.GET("/jobs/conflicts", jobHandler.Conflicts)
	v1.GET("/jobs/:id", jobHandler.Get)
	v1.PATCH("/jobs/:id", jobHandler.Update)
	v1.PATCH("/jobs/:id/status", jobHandler.UpdateStatus)
	v1.POST("/jobs/:id/cancel-series", jobHandler.CancelSeries)

	// Clients
	v1.GET("/clients", clientHandler.List)
	v1.POST("/clients", clientHandler.Create)
	v1.GET("/clients/:id", clientHandler.Get)
	v1.PATCH("/clients/:id", clientHandler.Update)
	v1.DELETE("/clients/:id", clientHandler.Delete)

	// Invoices
	v1.GET("/invoices", invoiceHandler.List)
	v1.GET("/invoices/:id", invoiceHandler.Get)
	v1.POST("/invoices/from-job/:job_id", invoiceHandler.GenerateFromJob)
	v1.POST("/invoices/:id/pay", invoiceHandler.MarkPaid)
	v1.POST("/invoices/:id/send", invoiceHandler.Send)

	// Estimates
	v1.POST("/estimates", estimateHandler.Quote)
	v1.GET("/estimates/rates", estimateHandler.Rates)

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
