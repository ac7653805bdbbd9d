package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/application/achievement"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
)

// BadgeHandler serves badge collections and achievement mints
type BadgeHandler struct {
	BaseHandler
	badges *achievement.Service
}

// NewBadgeHandler creates a new BadgeHandler
func NewBadgeHandler(badges *achievement.Service) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

// CreateCollection registers a badge collection
// POST /badges/collections
func (h *BadgeHandler) CreateCollection(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.CreateCollectionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	col, err := h.badges.CreateCollection(c.Request.Context(), caller, req.Name, req.URI)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, col)
}

// Mint issues a badge to the caller when their record meets the threshold
// POST /badges/mint
func (h *BadgeHandler) Mint(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.MintBadgeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	b, err := h.badges.Mint(c.Request.Context(), caller, achievement.MintRequest{
		Collection:  req.Collection,
		Name:        req.Name,
		URI:         req.URI,
		Achievement: req.Achievement,
		Record:      req.Record,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, b)
}

// ListBadges returns the badges held by an identity
// GET /badges/:owner
func (h *BadgeHandler) ListBadges(c *gin.Context) {
	owner, ok := h.IdentityParam(c, "owner")
	if !ok {
		return
	}
	badges, err := h.badges.ListBadges(c.Request.Context(), owner)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, badges)
}
