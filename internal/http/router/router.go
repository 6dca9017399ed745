package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/config"
	"github.com/ridgeline-exteriors/deal-api/internal/database"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/http/handler"
	"github.com/ridgeline-exteriors/deal-api/internal/http/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/ridgeline-exteriors/deal-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                 *config.Config
	logger              *zap.Logger
	db                  *gorm.DB
	authMiddleware      *auth.Middleware
	rateLimiter         *middleware.RateLimiter
	auditMiddleware     *middleware.AuditMiddleware
	dealHandler         *handler.DealHandler
	repHandler          *handler.RepHandler
	fileHandler         *handler.FileHandler
	pipelineHandler     *handler.PipelineHandler
	dashboardHandler    *handler.DashboardHandler
	notificationHandler *handler.NotificationHandler
	authHandler         *handler.AuthHandler
	auditHandler        *handler.AuditHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	auditMiddleware *middleware.AuditMiddleware,
	dealHandler *handler.DealHandler,
	repHandler *handler.RepHandler,
	fileHandler *handler.FileHandler,
	pipelineHandler *handler.PipelineHandler,
	dashboardHandler *handler.DashboardHandler,
	notificationHandler *handler.NotificationHandler,
	authHandler *handler.AuthHandler,
	auditHandler *handler.AuditHandler,
) *Router {
	return &Router{
		cfg:                 cfg,
		logger:              logger,
		db:                  db,
		authMiddleware:      authMiddleware,
		rateLimiter:         rateLimiter,
		auditMiddleware:     auditMiddleware,
		dealHandler:         dealHandler,
		repHandler:          repHandler,
		fileHandler:         fileHandler,
		pipelineHandler:     pipelineHandler,
		dashboardHandler:    dashboardHandler,
		notificationHandler: notificationHandler,
		authHandler:         authHandler,
		auditHandler:        auditHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check (checks all dependencies)
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Signed download links carry their own credentials in the
		// query string, so the route stays outside the auth group.
		r.Get("/files/download", rt.fileHandler.SignedDownload)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.rateLimiter.Limit)     // Per-user limit once identity is known
			r.Use(rt.auditMiddleware.Audit) // Audit all modifications

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)
			r.With(rt.authMiddleware.RequireAdmin).Post("/auth/tokens", rt.authHandler.MintToken)

			// Pipeline definition (static, any role)
			r.Get("/pipeline", rt.pipelineHandler.Get)

			// Crew accounts are read-only; route-level gate on top of the
			// ownership checks in the services
			canEdit := rt.authMiddleware.RequireRole(domain.RoleRep, domain.RoleAdmin)

			// Deals
			r.Route("/deals", func(r chi.Router) {
				r.Get("/", rt.dealHandler.List)
				r.With(canEdit).Post("/", rt.dealHandler.Create)
				r.Get("/{id}", rt.dealHandler.GetByID)
				r.With(canEdit).Patch("/{id}", rt.dealHandler.Update)

				// Workflow endpoints
				r.With(canEdit).Post("/{id}/advance", rt.dealHandler.Advance)
				r.With(rt.authMiddleware.RequireAdmin).Post("/{id}/transitions", rt.dealHandler.AdminTransition)
				r.Get("/{id}/workflow", rt.dealHandler.GetWorkflow)
				r.Get("/{id}/history", rt.dealHandler.GetHistory)

				// Commission
				r.Get("/{id}/commission", rt.dealHandler.GetCommission)
				r.With(rt.authMiddleware.RequireAdmin).Put("/{id}/commission", rt.dealHandler.UpsertCommission)

				// Files
				r.Get("/{id}/files", rt.fileHandler.List)
				r.With(canEdit).Post("/{id}/files", rt.fileHandler.Upload)
				r.With(canEdit).Delete("/{id}/files/{fileID}", rt.fileHandler.Delete)
			})

			// Reps
			r.Route("/reps", func(r chi.Router) {
				r.Get("/", rt.repHandler.List)
				r.With(rt.authMiddleware.RequireAdmin).Post("/", rt.repHandler.Create)
				r.Get("/{id}", rt.repHandler.GetByID)
				r.With(rt.authMiddleware.RequireAdmin).Patch("/{id}", rt.repHandler.Update)
			})

			// Dashboard
			r.With(rt.authMiddleware.RequireAdmin).Get("/dashboard/pipeline", rt.dashboardHandler.GetPipelineSummary)

			// Notifications
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", rt.notificationHandler.List)
				r.Get("/count", rt.notificationHandler.GetUnreadCount)
				r.Put("/read-all", rt.notificationHandler.MarkAllAsRead)
				r.Put("/{id}/read", rt.notificationHandler.MarkAsRead)
			})

			// Audit logs
			r.Route("/audit", func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)
				r.Get("/", rt.auditHandler.List)
				r.Get("/{entityType}/{entityID}", rt.auditHandler.ListByEntity)
			})
		})
	})

	return r
}
