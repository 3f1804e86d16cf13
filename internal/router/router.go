package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"ledgerbook/internal/domain"
	"ledgerbook/internal/handler"
	"ledgerbook/internal/middleware"
	"ledgerbook/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Business  *handler.BusinessHandler
	User      *handler.UserHandler
	Document  *handler.DocumentHandler
	Inventory *handler.InventoryHandler
	Export    *handler.ExportHandler
	Draft     *handler.DraftHandler
	Health    *handler.HealthHandler
}

// Options holds router-wide settings.
type Options struct {
	AllowedOrigins []string
	// RateLimiter throttles authenticated requests per business. Nil disables it.
	RateLimiter *middleware.BusinessRateLimiter
	Swagger     bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/signup", h.Auth.Signup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))
	if opts.RateLimiter != nil {
		protected.Use(opts.RateLimiter.Middleware())
	}

	protected.POST("/calculate", handler.Calculate)

	// Business profile
	protected.GET("/business", h.Business.Get)
	protected.PUT("/business", middleware.RequireRole(domain.RoleAdmin), h.Business.Update)

	// User management (business-scoped, admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(domain.RoleAdmin))
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)

	// Documents
	docs := protected.Group("/documents")
	docs.POST("", h.Document.Create)
	docs.GET("", h.Document.List)
	docs.GET("/export", h.Document.Export)
	docs.GET("/:id", h.Document.GetByID)
	docs.PUT("/:id", h.Document.Update)
	docs.DELETE("/:id", h.Document.Delete)

	// Inventory
	inv := protected.Group("/inventory")
	inv.POST("", h.Inventory.Create)
	inv.GET("", h.Inventory.List)
	inv.POST("/import", h.Inventory.Import)
	inv.GET("/export", h.Inventory.Export)
	inv.GET("/:id", h.Inventory.GetByID)
	inv.PUT("/:id", h.Inventory.Update)
	inv.DELETE("/:id", h.Inventory.Delete)

	// Asynchronous exports
	exports := protected.Group("/exports")
	exports.POST("", h.Export.Create)
	exports.GET("/:id", h.Export.GetByID)

	// Wizard drafts
	drafts := protected.Group("/drafts")
	drafts.POST("", h.Draft.Create)
	drafts.GET("/:id", h.Draft.Get)
	drafts.PUT("/:id", h.Draft.UpdateStep)
	drafts.DELETE("/:id", h.Draft.Delete)
	drafts.POST("/:id/next", h.Draft.Next)
	drafts.POST("/:id/back", h.Draft.Back)
	drafts.POST("/:id/submit", h.Draft.Submit)

	return r
}
