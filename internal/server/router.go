// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"optionlab/internal/auth"
	_ "optionlab/internal/docs" // Import swagger docs
	apperrors "optionlab/internal/errors"
	"optionlab/internal/events"
	"optionlab/internal/handlers"
	"optionlab/internal/metrics"
	"optionlab/internal/middleware"
	"optionlab/internal/services"
	"optionlab/internal/session"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	DB          *gorm.DB
	Sessions    *session.Manager
	Provider    auth.Provider
	States      *auth.StateSigner
	Users       services.UserServicer
	Strategies  services.StrategyServicer
	Quotes      services.QuoteServicer
	Alerts      services.AlertServicer
	Audit       services.AuditServicer
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
	Events      *events.Server

	CORSOrigins []string
	FrontendURL string
}

// NewRouter builds the Gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	authHandler := handlers.NewAuthHandler(d.Provider, d.States, d.Sessions, d.Users, d.Audit, d.FrontendURL)
	strategyHandler := handlers.NewStrategyHandler(d.Strategies, d.Audit)
	quoteHandler := handlers.NewQuoteHandler(d.Quotes)
	alertHandler := handlers.NewAlertHandler(d.Alerts)
	analysisHandler := handlers.NewAnalysisHandler()
	healthHandler := handlers.NewHealthHandler(d.DB)
	auditHandler := handlers.NewAuditHandler(d.Users, d.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	if d.Metrics != nil {
		router.Use(middleware.Metrics(d.Metrics))
	}
	router.Use(middleware.CORS(d.CORSOrigins))
	router.Use(middleware.ErrorHandler())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: handlers.ErrorDetail{
			Code:    apperrors.ErrNotFound.Code,
			Message: apperrors.ErrNotFound.Message,
		}})
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := router.Group("/api")

	// Public routes
	api.GET("/health", healthHandler.Health)
	api.GET("/google-login", authHandler.BeginLogin)
	api.GET("/google-oauth-redirect", authHandler.CompleteLogin)
	api.POST("/analysis", analysisHandler.Analyze)
	api.GET("/presets", analysisHandler.Presets)
	if d.RateLimiter != nil {
		api.GET("/get-price", d.RateLimiter.Middleware(), quoteHandler.GetPrice)
	} else {
		api.GET("/get-price", quoteHandler.GetPrice)
	}
	if d.Events != nil {
		api.GET("/ws", d.Events.Handle)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.RequireSession(d.Sessions))

	protected.GET("/me", authHandler.Me)
	protected.POST("/logout", authHandler.Logout)
	protected.POST("/alerts", alertHandler.CreateAlert)
	protected.GET("/audit-logs", auditHandler.ListAuditLogs)

	strategies := protected.Group("/strategies")
	strategies.POST("", strategyHandler.CreateStrategy)
	strategies.GET("", strategyHandler.ListStrategies)
	strategies.GET("/:id", strategyHandler.GetStrategy)
	strategies.DELETE("/:id", strategyHandler.DeleteStrategy)
	strategies.GET("/:id/analysis", strategyHandler.AnalyzeStrategy)

	return router
}
