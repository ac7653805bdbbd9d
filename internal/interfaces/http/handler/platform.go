package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/paperfi/backend/internal/application/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
)

// PlatformHandler serves platform administration and vault withdrawals
type PlatformHandler struct {
	BaseHandler
	platform *identityapp.PlatformService
	currency Currency
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(platform *identityapp.PlatformService, currency Currency) *PlatformHandler {
	return &PlatformHandler{platform: platform, currency: currency}
}

// WithdrawView is a withdrawal with its amounts formatted for display
type WithdrawView struct {
	identityapp.WithdrawResponse
	AmountDisplay string `json:"amount_display"`
	WalletDisplay string `json:"wallet_display"`
}

func (h *PlatformHandler) withdrawView(w *identityapp.WithdrawResponse) WithdrawView {
	return WithdrawView{
		WithdrawResponse: *w,
		AmountDisplay:    h.currency.Format(w.Amount),
		WalletDisplay:    h.currency.Format(w.WalletBalance),
	}
}

// GetPlatform returns the fee, the admins and the platform vault balance
// GET /platform
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	p, err := h.platform.GetPlatform(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// AddAdmin bootstraps the platform or adds an admin
// POST /platform/admins
func (h *PlatformHandler) AddAdmin(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.AddAdminRequest
	if !h.BindJSON(c, &req) {
		return
	}
	admin, err := shared.ParseIdentity(req.Admin)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	p, err := h.platform.BootstrapAdmin(c.Request.Context(), caller, admin)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// SetFee changes the purchase fee percentage
// PUT /platform/fee
func (h *PlatformHandler) SetFee(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.SetFeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.platform.SetFee(c.Request.Context(), caller, *req.FeePercent)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Withdraw drains the caller's vault into their wallet
// POST /vaults/withdraw
func (h *PlatformHandler) Withdraw(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	w, err := h.platform.Withdraw(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.withdrawView(w))
}

// AdminWithdraw drains the platform vault into the calling admin's wallet
// POST /platform/withdraw
func (h *PlatformHandler) AdminWithdraw(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	w, err := h.platform.AdminWithdraw(c.Request.Context(), caller)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.withdrawView(w))
}
