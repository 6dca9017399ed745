package auth

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

// Middleware authenticates requests. Two credentials are accepted: the
// office system's API key, which yields a synthetic System admin context,
// and per-user bearer tokens minted through the auth handler.
type Middleware struct {
	tokens *TokenManager
	apiKey string
	logger *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, logger *zap.Logger) *Middleware {
	return &Middleware{
		tokens: NewTokenManager(&cfg.Auth),
		apiKey: cfg.Auth.APIKey,
		logger: logger,
	}
}

// Authenticate resolves the caller identity and stores it in the request
// context. The API key is checked before the Authorization header so the
// office system keeps working even when it forwards a stale user token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				m.respondUnauthorized(w, "Invalid API key")
				return
			}

			userCtx := systemContext()
			m.logger.Debug("request authenticated",
				zap.String("auth_type", "api_key"),
				zap.String("path", r.URL.Path),
			)

			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			m.respondUnauthorized(w, "Missing or malformed authorization header")
			return
		}

		userCtx, err := m.tokens.ValidateToken(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			m.respondUnauthorized(w, "Invalid or expired token")
			return
		}

		m.logger.Debug("request authenticated",
			zap.String("auth_type", "jwt"),
			zap.String("path", r.URL.Path),
			zap.String("user_id", userCtx.UserID.String()),
			zap.String("role", string(userCtx.Role)),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

// RequireRole gates a route group to the given roles
func (m *Middleware) RequireRole(roles ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok || !userCtx.HasAnyRole(roles...) {
				m.respondForbidden(w, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates a route group to office admins
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userCtx, ok := FromContext(r.Context())
		if !ok || !userCtx.IsAdmin() {
			m.respondForbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenManager exposes the underlying token manager so the auth handler
// can mint tokens with the same secret and issuer.
func (m *Middleware) TokenManager() *TokenManager {
	return m.tokens
}

// systemContext is the identity API-key callers act as
func systemContext() *UserContext {
	return &UserContext{
		UserID:      uuid.Nil,
		DisplayName: "System",
		Email:       "system@ridgelineexteriors.com",
		Role:        domain.RoleAdmin,
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	// Constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}

func (m *Middleware) respondUnauthorized(w http.ResponseWriter, detail string) {
	writeAuthError(w, domain.APIError{
		Type:   domain.ErrorTypeUnauthorized,
		Title:  "Unauthorized",
		Status: http.StatusUnauthorized,
		Detail: detail,
	})
}

func (m *Middleware) respondForbidden(w http.ResponseWriter, detail string) {
	writeAuthError(w, domain.APIError{
		Type:   domain.ErrorTypeForbidden,
		Title:  "Forbidden",
		Status: http.StatusForbidden,
		Detail: detail,
	})
}

func writeAuthError(w http.ResponseWriter, apiErr domain.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(apiErr)
}
