package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ZaighumCheema47/klap-closing-app/internal/config"
	domainRepo "github.com/ZaighumCheema47/klap-closing-app/internal/domain/repository"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/handler"
	"github.com/ZaighumCheema47/klap-closing-app/internal/presentation/http/middleware"
	"github.com/ZaighumCheema47/klap-closing-app/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Closing *handler.ClosingHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *logrus.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Closing workflow
	closings := protected.Group("/closings")
	{
		closings.POST("", h.Closing.StartClosing)
		closings.GET("", h.Closing.ListClosings)
		closings.GET("/:id", h.Closing.GetClosing)
		closings.PUT("/:id/sales", h.Closing.UpdateSales)
		closings.POST("/:id/expenses", h.Closing.AddExpense)
		closings.DELETE("/:id/expenses/:index", h.Closing.RemoveExpense)

		// Submit replays through the idempotency cache so a retried
		// request does not hit the sheet twice.
		submit := closings.Group("")
		submit.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))
		submit.POST("/:id/submit", h.Closing.SubmitClosing)
	}

	// Archive reads
	protected.GET("/archive/closings/:closingID", h.Closing.GetArchivedClosing)

	// Monthly reports, managers only
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireManager())
	{
		reports.GET("/monthly", h.Report.MonthlySales)
		reports.GET("/monthly/export", h.Report.ExportMonthlySales)
	}

	// Printer
	protected.GET("/printer/status", h.Printer.GetStatus)
	protected.POST("/printer/test", h.Printer.TestPrint)
}
