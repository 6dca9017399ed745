package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/config"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

func createTestMiddleware(apiKey string) *auth.Middleware {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       testSigningSecret,
			JWTIssuer:       testIssuer,
			TokenTTLMinutes: 60,
			APIKey:          apiKey,
		},
	}
	return auth.NewMiddleware(cfg, zap.NewNop())
}

func TestMiddleware_Authenticate_WithAPIKey(t *testing.T) {
	apiKey := "test-api-key-12345"
	middleware := createTestMiddleware(apiKey)

	handlerCalled := false
	var capturedUserCtx *auth.UserContext

	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		capturedUserCtx, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set("x-api-key", apiKey)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, capturedUserCtx)
	assert.Equal(t, "System", capturedUserCtx.DisplayName)
	assert.True(t, capturedUserCtx.IsAdmin())
	assert.Nil(t, capturedUserCtx.RepID)
}

func TestMiddleware_Authenticate_WithInvalidAPIKey(t *testing.T) {
	middleware := createTestMiddleware("correct-key")

	handlerCalled := false
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set("x-api-key", "wrong-key")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_Authenticate_EmptyConfiguredAPIKey(t *testing.T) {
	// An empty configured key must never match, even an empty header value
	middleware := createTestMiddleware("")

	handlerCalled := false
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set("x-api-key", "anything")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_Authenticate_WithJWT(t *testing.T) {
	middleware := createTestMiddleware("")

	repID := uuid.New()
	tokenString, err := middleware.TokenManager().GenerateToken(&auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "Casey Morgan",
		Email:       "casey@ridgeline.example",
		Role:        domain.RoleRep,
		RepID:       &repID,
	})
	require.NoError(t, err)

	handlerCalled := false
	var capturedUserCtx *auth.UserContext

	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		capturedUserCtx, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, capturedUserCtx)
	assert.Equal(t, "Casey Morgan", capturedUserCtx.DisplayName)
	assert.Equal(t, domain.RoleRep, capturedUserCtx.Role)
	require.NotNil(t, capturedUserCtx.RepID)
	assert.Equal(t, repID, *capturedUserCtx.RepID)
}

func TestMiddleware_Authenticate_MissingAuth(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_Authenticate_InvalidBearerFormat(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	tests := []struct {
		name       string
		authHeader string
	}{
		{"no bearer prefix", "some-token"},
		{"basic auth", "Basic dXNlcjpwYXNz"},
		{"empty bearer", "Bearer "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
			req.Header.Set("Authorization", tt.authHeader)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.False(t, handlerCalled)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestMiddleware_APIKeyPriority(t *testing.T) {
	apiKey := "test-api-key"
	middleware := createTestMiddleware(apiKey)

	tokenString, err := middleware.TokenManager().GenerateToken(&auth.UserContext{
		UserID:      uuid.New(),
		DisplayName: "JWT User",
		Email:       "jwt@example.com",
		Role:        domain.RoleRep,
	})
	require.NoError(t, err)

	var capturedUserCtx *auth.UserContext

	handler := middleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUserCtx, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Send request with BOTH API key and JWT - API key should take priority
	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, capturedUserCtx)
	assert.Equal(t, "System", capturedUserCtx.DisplayName)
}

func TestMiddleware_RequireRole_HasRole(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.RequireRole(domain.RoleAdmin, domain.RoleRep)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	userCtx := &auth.UserContext{Role: domain.RoleRep}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequireRole_MissingRole(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	userCtx := &auth.UserContext{Role: domain.RoleCrew}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/pipeline", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddleware_RequireRole_NoUserContext(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.RequireRole(domain.RoleRep)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/deals", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddleware_RequireAdmin_IsAdmin(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	}))

	userCtx := &auth.UserContext{Role: domain.RoleAdmin}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/pipeline", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.True(t, handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequireAdmin_NotAdmin(t *testing.T) {
	middleware := createTestMiddleware("test-key")

	handlerCalled := false
	handler := middleware.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	}))

	userCtx := &auth.UserContext{Role: domain.RoleRep}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/pipeline", nil)
	req = req.WithContext(auth.WithUserContext(req.Context(), userCtx))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.False(t, handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
