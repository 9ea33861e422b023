package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/config"
	"github.com/shopbill/billing-api/internal/presentation/http/handler"
	"github.com/shopbill/billing-api/internal/presentation/http/middleware"
	"github.com/shopbill/billing-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Bill     *handler.BillHandler
	Customer *handler.CustomerHandler
	Item     *handler.ItemHandler
	Report   *handler.ReportHandler
	Voice    *handler.VoiceHandler
	Vision   *handler.VisionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Log        *logrus.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
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
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerBillRoutes(protected, h)
		registerCustomerRoutes(protected, h)
		registerItemRoutes(protected, h)
		registerReportRoutes(protected, h)
		registerVoiceRoutes(protected, h)
		registerVisionRoutes(protected, h)
	}

	return router
}

func registerBillRoutes(rg *gin.RouterGroup, h *Handlers) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Bill.Create)
		bills.GET("", h.Bill.List)
		bills.GET("/:id", h.Bill.Get)
		bills.POST("/:id/items", h.Bill.AddItem)
		bills.POST("/:id/finalize", h.Bill.Finalize)
		bills.POST("/:id/pay", h.Bill.Pay)
		bills.POST("/:id/adjust", h.Bill.Adjust)
		bills.GET("/:id/pdf", h.Bill.ExportPDF)
		bills.GET("/:id/pdf/download", h.Bill.DownloadPDF)
	}
}

func registerCustomerRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("/search", h.Customer.Search)
		customers.GET("/udhar-dashboard", h.Customer.UdharDashboard)
		customers.GET("/:id", h.Customer.Get)
		customers.GET("/:id/summary", h.Customer.Summary)
		customers.GET("/:id/ledger", h.Customer.Ledger)
		customers.GET("/:id/ledger/pdf", h.Customer.LedgerPDF)
	}
}

func registerItemRoutes(rg *gin.RouterGroup, h *Handlers) {
	items := rg.Group("/items")
	{
		items.POST("", h.Item.Create)
		items.GET("", h.Item.List)
		items.GET("/search", h.Item.Search)
		items.PUT("/:id", h.Item.Update)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/daily-summary", h.Report.DailySummary)
		reports.GET("/range-summary", h.Report.RangeSummary)
		reports.GET("/monthly", h.Report.Monthly)
	}
}

func registerVoiceRoutes(rg *gin.RouterGroup, h *Handlers) {
	voice := rg.Group("/parse-voice")
	{
		voice.GET("/test", h.Voice.Test)
		voice.POST("", h.Voice.Parse)
		voice.POST("/confirm-items", h.Voice.ConfirmItems)
		voice.POST("/create-bill", h.Voice.CreateBill)
		voice.POST("/correct-bill", h.Voice.CorrectBill)
		voice.POST("/finalize-bill", h.Voice.FinalizeBill)
		voice.POST("/pay-bill", h.Voice.PayBill)
	}
}

func registerVisionRoutes(rg *gin.RouterGroup, h *Handlers) {
	vision := rg.Group("/vision")
	{
		vision.POST("/detect", h.Vision.Detect)
		vision.POST("/detect-text", h.Vision.DetectText)
		vision.POST("/normalize-text", h.Vision.NormalizeText)
		vision.POST("/resolve-product", h.Vision.ResolveProduct)
	}
}
