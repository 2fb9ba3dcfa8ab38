package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"veeloway/internal/handler"
	"veeloway/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CustomerHandler  *handler.CustomerHandler
	ScooterHandler   *handler.ScooterHandler
	ContractHandler  *handler.ContractHandler
	CashFlowHandler  *handler.CashFlowHandler
	DashboardHandler *handler.DashboardHandler
	ReportHandler    *handler.ReportHandler
	AuthHandler      *handler.AuthHandler
	SessionGuard     gin.HandlerFunc
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
	Logger           *zap.Logger
}

// NewRouter creates a new Gin router with all routes registered. When
// AuthHandler and SessionGuard are set, the console routes require a live
// session; the auth routes themselves stay open.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient, deps.Logger))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")

	if deps.AuthHandler != nil {
		sessions := v1.Group("/auth")
		{
			sessions.POST("/login", deps.AuthHandler.Login)
			sessions.POST("/logout", deps.AuthHandler.Logout)
			sessions.GET("/session", deps.AuthHandler.Session)
		}
		if deps.SessionGuard != nil {
			v1.Use(deps.SessionGuard)
		}
	}

	{
		// Customer routes.
		customers := v1.Group("/customers")
		{
			customers.POST("", deps.CustomerHandler.Register)
			customers.GET("", deps.CustomerHandler.GetAll)
			customers.GET("/:id", deps.CustomerHandler.Get)
			customers.PUT("/:id", deps.CustomerHandler.Update)
			customers.DELETE("/:id", deps.CustomerHandler.Delete)
		}

		// Scooter routes.
		scooters := v1.Group("/scooters")
		{
			scooters.POST("", deps.ScooterHandler.Register)
			scooters.GET("", deps.ScooterHandler.GetAll)
			scooters.GET("/nearby", deps.ScooterHandler.Nearby)
			scooters.GET("/:id", deps.ScooterHandler.Get)
			scooters.PUT("/:id", deps.ScooterHandler.Update)
			scooters.DELETE("/:id", deps.ScooterHandler.Delete)
			scooters.POST("/:id/location", deps.ScooterHandler.UpdateLocation)
		}

		// Contract lifecycle routes.
		contracts := v1.Group("/contracts")
		{
			contracts.POST("", deps.ContractHandler.Create)
			contracts.GET("", deps.ContractHandler.GetAll)
			contracts.GET("/:id", deps.ContractHandler.Get)
			contracts.POST("/:id/accept", deps.ContractHandler.Accept)
			contracts.POST("/:id/reject", deps.ContractHandler.Reject)
			contracts.POST("/:id/start", deps.ContractHandler.Start)
			contracts.POST("/:id/finalize", deps.ContractHandler.Finalize)
			contracts.POST("/:id/cancel", deps.ContractHandler.Cancel)
			contracts.DELETE("/:id", deps.ContractHandler.Delete)
		}

		// Direct rental shortcut: create and activate in one step.
		v1.POST("/rentals", deps.ContractHandler.StartRental)

		// Ledger routes.
		cashflow := v1.Group("/cashflow")
		{
			cashflow.POST("", deps.CashFlowHandler.Create)
			cashflow.GET("", deps.CashFlowHandler.GetAll)
			cashflow.GET("/summary", deps.CashFlowHandler.Summary)
			cashflow.PUT("/:id", deps.CashFlowHandler.Update)
			cashflow.DELETE("/:id", deps.CashFlowHandler.Delete)
		}

		// Dashboard and reports.
		v1.GET("/dashboard", deps.DashboardHandler.Stats)
		reports := v1.Group("/reports")
		{
			reports.GET("/daily", deps.ReportHandler.Daily)
			reports.GET("/finalized", deps.ReportHandler.Finalized)
		}
	}

	return router
}
