package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

// auditWriteTimeout bounds the detached insert so a slow database cannot
// pile up goroutines behind the request path.
const auditWriteTimeout = 5 * time.Second

// AuditConfig holds configuration for audit middleware
type AuditConfig struct {
	// SkipPaths contains path prefixes that should not be audited
	SkipPaths []string
}

// DefaultAuditConfig returns default audit configuration
func DefaultAuditConfig() *AuditConfig {
	return &AuditConfig{
		SkipPaths: []string{
			"/health",
			"/swagger",
		},
	}
}

// AuditMiddleware records successful mutating requests in the audit log
type AuditMiddleware struct {
	auditService *service.AuditLogService
	config       *AuditConfig
	logger       *zap.Logger
}

// NewAuditMiddleware creates a new audit middleware
func NewAuditMiddleware(auditService *service.AuditLogService, config *AuditConfig, logger *zap.Logger) *AuditMiddleware {
	if config == nil {
		config = DefaultAuditConfig()
	}
	return &AuditMiddleware{
		auditService: auditService,
		config:       config,
		logger:       logger,
	}
}

// Audit returns middleware that logs modifications to the audit log.
// Reads are never audited; failed requests are not either.
func (m *AuditMiddleware) Audit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.shouldAudit(r) {
			next.ServeHTTP(w, r)
			return
		}

		rw := &responseCapture{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode < 200 || rw.statusCode >= 300 {
			return
		}

		// The request context is canceled once the handler returns, so
		// everything the entry needs is collected here and the write
		// happens on a detached context.
		entry := m.buildEntry(r, rw.statusCode)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
			defer cancel()
			m.auditService.Record(ctx, entry)
		}()
	})
}

// shouldAudit determines if a request should be audited
func (m *AuditMiddleware) shouldAudit(r *http.Request) bool {
	if m.auditService == nil {
		return false
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		return false
	}

	path := r.URL.Path
	for _, skipPath := range m.config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return false
		}
	}

	return true
}

// buildEntry assembles the audit row from the request and auth context
func (m *AuditMiddleware) buildEntry(r *http.Request, statusCode int) *domain.AuditLog {
	entry := &domain.AuditLog{
		Method:     r.Method,
		Path:       r.URL.Path,
		StatusCode: statusCode,
		RequestID:  r.Header.Get("X-Request-ID"),
		IPAddress:  clientIP(r),
	}

	if userCtx, ok := auth.FromContext(r.Context()); ok {
		entry.UserID = userCtx.UserID.String()
		entry.UserName = userCtx.DisplayName
		entry.UserRole = userCtx.Role
	}

	entry.EntityType, entry.EntityID = extractEntityInfo(r)
	return entry
}

// extractEntityInfo extracts entity type and ID from the request route
func extractEntityInfo(r *http.Request) (string, *uuid.UUID) {
	routeCtx := chi.RouteContext(r.Context())
	if routeCtx == nil {
		return entityTypeFromPath(r.URL.Path), nil
	}

	var entityID *uuid.UUID
	if idStr := routeCtx.URLParam("id"); idStr != "" {
		if id, err := uuid.Parse(idStr); err == nil {
			entityID = &id
		}
	}

	return entityTypeFromPath(routeCtx.RoutePattern()), entityID
}

// entityTypeFromPath maps the first recognized path segment to an entity
// type, so nested routes like /deals/{id}/files attribute to the deal.
func entityTypeFromPath(path string) string {
	entityMap := map[string]string{
		"deals":         "deal",
		"reps":          "rep",
		"files":         "file",
		"notifications": "notification",
		"auth":          "auth",
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if entityType, ok := entityMap[part]; ok {
			return entityType
		}
	}

	return ""
}

// responseCapture wraps ResponseWriter to capture the status code
type responseCapture struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseCapture) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
