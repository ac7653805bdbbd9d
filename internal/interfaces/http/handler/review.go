package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/application/review"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
)

// ReviewHandler serves paper reviews
type ReviewHandler struct {
	BaseHandler
	reviews *review.Service
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviews *review.Service) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Submit records the caller's verdict on a purchased paper
// POST /papers/:owner/:id/reviews
func (h *ReviewHandler) Submit(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	var req dto.SubmitReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	verdict, err := paper.ParseVerdict(req.Verdict)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	r, err := h.reviews.Submit(c.Request.Context(), caller, owner, id, review.SubmitRequest{
		Verdict: verdict,
		URI:     req.URI,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// Edit changes the caller's verdict
// PATCH /papers/:owner/:id/reviews/me
func (h *ReviewHandler) Edit(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	var req dto.EditReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	verdict, err := paper.ParseVerdict(req.Verdict)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	r, err := h.reviews.Edit(c.Request.Context(), caller, owner, id, verdict)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}
