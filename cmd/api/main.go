package main

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopbill/billing-api/internal/application/service"
	"github.com/shopbill/billing-api/internal/config"
	"github.com/shopbill/billing-api/internal/infrastructure/database"
	"github.com/shopbill/billing-api/internal/infrastructure/repository"
	"github.com/shopbill/billing-api/internal/presentation/http/handler"
	"github.com/shopbill/billing-api/internal/presentation/http/routes"
	"github.com/shopbill/billing-api/pkg/gemini"
	"github.com/shopbill/billing-api/pkg/logger"
	"github.com/shopbill/billing-api/pkg/ocr"
	"github.com/shopbill/billing-api/pkg/pdf"
	"github.com/shopbill/billing-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.App.LogLevel)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize repositories
	txManager := repository.NewTxManager(db)
	billRepo := repository.NewBillRepository(db)
	billItemRepo := repository.NewBillItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	adjustmentRepo := repository.NewAdjustmentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	itemRepo := repository.NewItemRepository(db)

	// Initialize AI clients; the service keeps running without them and the
	// voice and vision endpoints answer 503 until they are configured.
	ctx := context.Background()

	var intentParser service.IntentParser
	var classifier service.ProductClassifier
	if cfg.AI.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, voice and vision normalization disabled")
		intentParser = disabledGemini{}
		classifier = disabledGemini{}
	} else {
		geminiClient, err := gemini.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		if err != nil {
			log.WithError(err).Warn("Gemini client init failed, voice parsing disabled")
			intentParser = disabledGemini{}
			classifier = disabledGemini{}
		} else {
			intentParser = geminiClient
			classifier = geminiClient
		}
	}

	var annotator service.ImageAnnotator
	visionClient, err := ocr.NewClient(ctx, cfg.Vision.CredentialsJSON)
	if err != nil {
		log.WithError(err).Warn("Vision client init failed, image detection disabled")
		annotator = disabledVision{}
	} else {
		annotator = visionClient
	}

	// Initialize services
	sequencer := service.NewInvoiceSequencer(billRepo)
	billService := service.NewBillService(
		txManager, billRepo, billItemRepo, paymentRepo, adjustmentRepo,
		itemRepo, customerRepo, sequencer, cfg.GST.RatePercent,
	)
	itemService := service.NewItemService(itemRepo)
	customerService := service.NewCustomerService(customerRepo)
	ledgerService := service.NewLedgerService(customerRepo, paymentRepo)
	reportService := service.NewReportService(billRepo, paymentRepo)
	authService := service.NewAuthService(cfg.Owner, jwtManager)
	voiceService := service.NewVoiceService(
		intentParser, txManager, billRepo, billItemRepo, itemRepo, customerRepo,
		billService, itemService,
	)
	visionService := service.NewVisionService(annotator, classifier, itemService)

	pdfGenerator := pdf.NewGenerator(cfg.Storage.PDFDir, pdf.Seller{
		Name:    cfg.Seller.Name,
		Address: cfg.Seller.Address,
		GSTIN:   cfg.Seller.GSTIN,
	})
	pdfService := service.NewPDFService(billRepo, customerRepo, ledgerService, pdfGenerator)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Bill:     handler.NewBillHandler(billService, pdfService),
		Customer: handler.NewCustomerHandler(customerService, ledgerService, pdfService),
		Item:     handler.NewItemHandler(itemService),
		Report:   handler.NewReportHandler(reportService),
		Voice:    handler.NewVoiceHandler(voiceService),
		Vision:   handler.NewVisionHandler(visionService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Log:        log,
	})

	log.WithField("port", cfg.App.Port).Info("starting server")
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

var errAINotConfigured = errors.New("AI service not configured")

// disabledGemini stands in for the Gemini client when no API key is set.
type disabledGemini struct{}

func (disabledGemini) ParseBillingIntent(ctx context.Context, text string) (*gemini.Intent, error) {
	return nil, errAINotConfigured
}

func (disabledGemini) Ping(ctx context.Context) (string, error) {
	return "", errAINotConfigured
}

func (disabledGemini) Model() string { return "disabled" }

func (disabledGemini) ClassifyProductType(ctx context.Context, lines []string) (string, error) {
	return "", errAINotConfigured
}

// disabledVision stands in for the Cloud Vision client when it cannot start.
type disabledVision struct{}

func (disabledVision) DetectLabels(ctx context.Context, content []byte) ([]ocr.Annotation, []ocr.Annotation, error) {
	return nil, nil, errAINotConfigured
}

func (disabledVision) DetectText(ctx context.Context, content []byte) (string, []string, error) {
	return "", nil, errAINotConfigured
}
