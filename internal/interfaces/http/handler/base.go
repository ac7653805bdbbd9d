// Package handler exposes the ledger operations over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/logger"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
	"github.com/paperfi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the status its code maps to
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleError converts an operation error into a response. Domain errors
// keep their code, anything else is logged and reported as internal.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message)
		return
	}
	logger.L(c.Request.Context()).Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, dto.ErrCodeInternal, "An internal error occurred")
}

// BindJSON binds and validates the body, writing the 400 itself on failure
func (h *BaseHandler) BindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// Caller returns the authenticated identity, writing a 401 when absent
func (h *BaseHandler) Caller(c *gin.Context) (shared.Identity, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthenticated, "Authentication required")
		return "", false
	}
	return caller, true
}

// IdentityParam parses a path parameter holding an identity
func (h *BaseHandler) IdentityParam(c *gin.Context, name string) (shared.Identity, bool) {
	id, err := shared.ParseIdentity(c.Param(name))
	if err != nil {
		h.HandleError(c, err)
		return "", false
	}
	return id, true
}

// PaperParams parses the :owner and :id parameters naming a paper
func (h *BaseHandler) PaperParams(c *gin.Context) (shared.Identity, uint64, bool) {
	owner, ok := h.IdentityParam(c, "owner")
	if !ok {
		return "", 0, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Paper id must be an unsigned integer")
		return "", 0, false
	}
	return owner, id, true
}
