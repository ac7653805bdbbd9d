package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/application/publishing"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
	"github.com/paperfi/backend/internal/interfaces/http/middleware"
)

// PaperHandler serves paper publishing and co-authorship
type PaperHandler struct {
	BaseHandler
	papers *publishing.Service
}

// NewPaperHandler creates a new PaperHandler
func NewPaperHandler(papers *publishing.Service) *PaperHandler {
	return &PaperHandler{papers: papers}
}

// Publish creates an unlisted paper owned by the caller
// POST /papers
func (h *PaperHandler) Publish(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.PublishPaperRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.papers.Publish(c.Request.Context(), caller, publishing.PublishRequest{
		ID:      req.ID,
		InfoURL: req.InfoURL,
		Price:   req.Price,
		URI:     req.URI,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Edit applies the supplied fields of an edit
// PATCH /papers/:owner/:id
func (h *PaperHandler) Edit(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	var req dto.EditPaperRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.papers.Edit(c.Request.Context(), caller, owner, id, publishing.EditRequest{
		InfoURL: req.InfoURL,
		Listed:  req.Listed,
		Price:   req.Price,
		Version: req.Version,
		URI:     req.URI,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// GetPaper returns one paper
// GET /papers/:owner/:id
func (h *PaperHandler) GetPaper(c *gin.Context) {
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	p, err := h.papers.GetPaper(c.Request.Context(), owner, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// ListPapers returns a page of an owner's papers
// GET /papers/:owner?listed=&page=&page_size=
func (h *PaperHandler) ListPapers(c *gin.Context) {
	owner, ok := h.IdentityParam(c, "owner")
	if !ok {
		return
	}
	var req dto.ListPapersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.papers.ListByOwner(c.Request.Context(), owner, publishing.ListFilter{
		Listed:   req.Listed,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// AddAuthor names a co-author of the caller's paper
// POST /papers/:owner/:id/authors
func (h *PaperHandler) AddAuthor(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	var req dto.AddAuthorRequest
	if !h.BindJSON(c, &req) {
		return
	}
	author, err := shared.ParseIdentity(req.Author)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	a, err := h.papers.AddAuthor(c.Request.Context(), caller, owner, id, author)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, a)
}

// VerifyAuthor confirms the caller's co-authorship
// POST /papers/:owner/:id/authors/verify
func (h *PaperHandler) VerifyAuthor(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}
	a, err := h.papers.VerifyAuthor(c.Request.Context(), caller, owner, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, a)
}
