package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

type AuthHandler struct {
	tokens *auth.TokenManager
	logger *zap.Logger
}

func NewAuthHandler(tokens *auth.TokenManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		logger: logger,
	}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the identity the API resolved from the bearer token or API key
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	respondJSON(w, http.StatusOK, domain.AuthUserDTO{
		ID:      userCtx.UserID,
		Name:    userCtx.DisplayName,
		Email:   userCtx.Email,
		Role:    userCtx.Role,
		RepID:   userCtx.RepID,
		IsAdmin: userCtx.IsAdmin(),
	})
}

// MintToken godoc
// @Summary Mint a bearer token
// @Description Issue a token for a user. The office system calls this with its API key after its own login flow; admins can mint for testing. Rep tokens must carry the rep record they act as.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.MintTokenRequest true "Token subject"
// @Success 201 {object} domain.TokenResponse
// @Failure 403 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/tokens [post]
func (h *AuthHandler) MintToken(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !caller.IsAdmin() {
		respondWithError(w, http.StatusForbidden, "Only the office system can mint tokens")
		return
	}

	var req domain.MintTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	if req.Role == domain.RoleRep && req.RepID == nil {
		respondWithError(w, http.StatusBadRequest, "rep_id is required for rep tokens")
		return
	}

	subject := &auth.UserContext{
		UserID:      req.UserID,
		DisplayName: req.Name,
		Email:       req.Email,
		Role:        req.Role,
		RepID:       req.RepID,
	}

	token, err := h.tokens.GenerateToken(subject)
	if err != nil {
		h.logger.Error("failed to mint token", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to mint token")
		return
	}

	respondJSON(w, http.StatusCreated, domain.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.TTL()).UTC().Format(time.RFC3339),
	})
}
