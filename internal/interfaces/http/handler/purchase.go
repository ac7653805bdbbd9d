package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/paperfi/backend/internal/application/purchase"
)

// PurchaseHandler serves paper purchases
type PurchaseHandler struct {
	BaseHandler
	purchases *purchase.Service
	currency  Currency
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchases *purchase.Service, currency Currency) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases, currency: currency}
}

// PurchaseView is a settled purchase with the buyer's outlay formatted
type PurchaseView struct {
	purchase.PurchaseResponse
	OutlayDisplay string `json:"outlay_display"`
}

// Buy settles the caller's purchase of a listed paper
// POST /papers/:owner/:id/purchase
func (h *PurchaseHandler) Buy(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	owner, id, ok := h.PaperParams(c)
	if !ok {
		return
	}

	p, err := h.purchases.Buy(c.Request.Context(), caller, owner, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, PurchaseView{
		PurchaseResponse: *p,
		OutlayDisplay:    h.currency.Format(p.Outlay),
	})
}
