package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/ridgeline-exteriors/deal-api/docs"
	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/config"
	"github.com/ridgeline-exteriors/deal-api/internal/database"
	"github.com/ridgeline-exteriors/deal-api/internal/http/handler"
	"github.com/ridgeline-exteriors/deal-api/internal/http/middleware"
	"github.com/ridgeline-exteriors/deal-api/internal/http/router"
	"github.com/ridgeline-exteriors/deal-api/internal/jobs"
	"github.com/ridgeline-exteriors/deal-api/internal/logger"
	"github.com/ridgeline-exteriors/deal-api/internal/notify"
	"github.com/ridgeline-exteriors/deal-api/internal/reporting"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/storage"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
	"go.uber.org/zap"
)

// Background job timeouts. The reporting sync pages through every deal,
// so it gets a wider window than the stale-deal scan.
const (
	staleDealJobTimeout  = 5 * time.Minute
	reportSyncJobTimeout = 15 * time.Minute
)

// @title Ridgeline Deal API
// @version 1.0
// @description Deal workflow API for roofing sales pipeline and commission management
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@ridgelineexteriors.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for office system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "ridgeline-deal-api-staging.wittyfield-4c7b20d9.eastus2.azurecontainerapps.io"
	case "production":
		docs.SwaggerInfo.Host = "deals.ridgelineexteriors.com"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database with retry logic
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize reporting connection (optional, push-only)
	// The app continues without it if not configured or unreachable
	reportingClient, err := reporting.NewClient(&cfg.Reporting, log)
	if err != nil {
		log.Warn("Reporting connection failed, continuing without it", zap.Error(err))
		reportingClient = nil
	}

	// Mail relay for notification fan-out
	var mailer *notify.Mailer
	if cfg.SMTP.Enabled {
		mailer = notify.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
		log.Info("Mail notifications enabled", zap.String("smtp_host", cfg.SMTP.Host))
	} else {
		log.Info("Mail notifications disabled, in-app only")
	}

	// Admin accounts that receive awaiting-admin and stale-deal alerts
	adminUserIDs := make([]uuid.UUID, 0, len(cfg.Notifications.AdminUserIDs))
	for _, raw := range cfg.Notifications.AdminUserIDs {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			log.Warn("Ignoring invalid admin user ID", zap.String("value", raw))
			continue
		}
		adminUserIDs = append(adminUserIDs, id)
	}

	// Workflow definition shared by services and handlers
	pipeline := workflow.DefaultPipeline()
	engine := workflow.NewEngine(pipeline)
	calculator := workflow.NewCalculator(nil)

	// Initialize repositories
	dealRepo := repository.NewDealRepository(db)
	repRepo := repository.NewRepRepository(db)
	historyRepo := repository.NewDealStatusHistoryRepository(db)
	fileRepo := repository.NewDealFileRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	dealService := service.NewDealService(dealRepo, repRepo, historyRepo, notificationRepo, engine, calculator, adminUserIDs, log)
	repService := service.NewRepService(repRepo, dealRepo, log)
	fileService := service.NewFileService(fileRepo, dealRepo, notificationRepo, engine, fileStorage, cfg.Storage.SignedURLTTL(), adminUserIDs, log)
	notificationService := service.NewNotificationService(notificationRepo, mailer, cfg.Notifications.EmailTo, log)
	dashboardService := service.NewDashboardService(dealRepo, engine, log)
	auditLogService := service.NewAuditLogService(auditLogRepo, log)
	reminderService := service.NewReminderService(dealRepo, notificationRepo, pipeline, mailer, adminUserIDs, cfg.Notifications.EmailTo, cfg.Jobs.StaleDealAfter(), log)
	reportSyncService := service.NewReportSyncService(dealRepo, calculator, pipeline, reportingClient, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)
	auditMiddleware := middleware.NewAuditMiddleware(auditLogService, nil, log)

	// Initialize handlers
	dealHandler := handler.NewDealHandler(dealService, log)
	repHandler := handler.NewRepHandler(repService, log)
	fileHandler := handler.NewFileHandler(fileService, cfg.Storage.MaxUploadSizeMB, log)
	pipelineHandler := handler.NewPipelineHandler(pipeline)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)
	notificationHandler := handler.NewNotificationHandler(notificationService, log)
	authHandler := handler.NewAuthHandler(authMiddleware.TokenManager(), log)
	auditHandler := handler.NewAuditHandler(auditLogService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		auditMiddleware,
		dealHandler,
		repHandler,
		fileHandler,
		pipelineHandler,
		dashboardHandler,
		notificationHandler,
		authHandler,
		auditHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.Enabled {
		scheduler = jobs.NewScheduler(log)

		if err := jobs.RegisterStaleDealJob(scheduler, reminderService, log, cfg.Jobs.StaleDealCron, staleDealJobTimeout); err != nil {
			log.Error("Failed to register stale deal job", zap.Error(err))
		}

		if reportingClient.IsEnabled() {
			if err := jobs.RegisterReportSyncJob(scheduler, reportSyncService, log, cfg.Jobs.ReportingSyncCron, reportSyncJobTimeout); err != nil {
				log.Error("Failed to register reporting sync job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.String("stale_deal_cron", cfg.Jobs.StaleDealCron),
			zap.Duration("stale_after", cfg.Jobs.StaleDealAfter()),
			zap.Bool("reporting_sync", reportingClient.IsEnabled()),
		)
	} else {
		log.Info("Background jobs disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close reporting connection if initialized
		if reportingClient != nil {
			if err := reportingClient.Close(); err != nil {
				log.Warn("Error closing reporting connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
