// Package server assembles the HTTP API from its services and handlers.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"finance/internal/config"
	_ "finance/internal/docs" // Import swagger docs
	"finance/internal/handlers"
	"finance/internal/middleware"
	"finance/internal/services"
	"finance/internal/storage"
)

// Options configures NewRouter.
type Options struct {
	Config *config.Config
	DB     *gorm.DB
	// Now overrides the clock used to decide today's date. Defaults to
	// Config.Now.
	Now func() time.Time
	// RequestLogging enables the per-request access log.
	RequestLogging bool
}

// NewRouter wires storage, services and handlers into a gin engine serving
// the /api/v1 routes, the health check and the Swagger UI.
func NewRouter(opts Options) *gin.Engine {
	now := opts.Now
	if now == nil {
		now = opts.Config.Now
	}

	// Initialize services
	gw := storage.NewGormGateway(opts.DB)
	userService := services.NewUserService(gw)
	categoryService := services.NewCategoryService(gw)
	transactionService := services.NewTransactionService(gw, now)
	goalService := services.NewSavingsGoalService(gw, now)
	reportService := services.NewReportService(gw)
	auditService := services.NewAuditService(gw)

	sessions := middleware.NewSessionManager(opts.Config)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, sessions)
	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService, now)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	if opts.RequestLogging {
		router.Use(middleware.RequestLogging())
	}
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(sessions, userService))

	protected.GET("/users/profile", authHandler.GetProfile)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.DELETE("/:name", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	reports := protected.Group("/reports")
	reports.GET("/monthly/:year/:month", reportHandler.GetMonthlyReport)
	reports.GET("/yearly/:year", reportHandler.GetYearlyReport)

	return router
}
