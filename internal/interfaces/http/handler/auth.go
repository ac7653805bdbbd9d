package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/auth"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/paperfi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// AuthHandler serves token introspection and revocation. Tokens are issued
// by the identity provider, or by paperfictl in development.
type AuthHandler struct {
	BaseHandler
	blacklist auth.TokenBlacklist
	clock     shared.Clock
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(blacklist auth.TokenBlacklist, clock shared.Clock) *AuthHandler {
	return &AuthHandler{blacklist: blacklist, clock: clock}
}

// SessionResponse describes the presented token
type SessionResponse struct {
	Identity  string `json:"identity"`
	Name      string `json:"name,omitempty"`
	TokenID   string `json:"token_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// Me returns the caller behind the presented token
// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Caller(c)
		return
	}
	resp := SessionResponse{
		Identity: claims.Subject,
		Name:     claims.Name,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	h.Success(c, resp)
}

// Revoke blacklists the presented token until it would have expired
// POST /auth/revoke
func (h *AuthHandler) Revoke(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Caller(c)
		return
	}
	if claims.ID == "" {
		h.BadRequest(c, "Token has no id and cannot be revoked")
		return
	}

	ctx := c.Request.Context()
	if err := h.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL(h.clock.Now())); err != nil {
		h.HandleError(c, err)
		return
	}
	logger.L(ctx).Info("Token revoked", zap.String("jti", claims.ID))
	h.Success(c, gin.H{"revoked": true})
}
