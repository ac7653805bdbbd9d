package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/paperfi/backend/internal/application/identity"
	"github.com/paperfi/backend/internal/interfaces/http/dto"
)

// AccountHandler serves user accounts
type AccountHandler struct {
	BaseHandler
	accounts *identityapp.AccountService
	currency Currency
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts *identityapp.AccountService, currency Currency) *AccountHandler {
	return &AccountHandler{accounts: accounts, currency: currency}
}

// AccountView is an account with its balances formatted for display
type AccountView struct {
	identityapp.AccountResponse
	WalletDisplay string `json:"wallet_display"`
	VaultDisplay  string `json:"vault_display"`
}

func (h *AccountHandler) view(a *identityapp.AccountResponse) AccountView {
	return AccountView{
		AccountResponse: *a,
		WalletDisplay:   h.currency.Format(a.WalletBalance),
		VaultDisplay:    h.currency.Format(a.VaultBalance),
	}
}

// Signup creates the caller's account
// POST /accounts
func (h *AccountHandler) Signup(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.SignupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account, err := h.accounts.Signup(c.Request.Context(), caller, req.Name, req.Title)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, h.view(account))
}

// EditUser changes the caller's name or title
// PATCH /accounts/me
func (h *AccountHandler) EditUser(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	var req dto.EditUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	account, err := h.accounts.EditUser(c.Request.Context(), caller, req.Name, req.Title)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view(account))
}

// GetAccount returns an account by identity
// GET /accounts/:identity
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := h.IdentityParam(c, "identity")
	if !ok {
		return
	}
	account, err := h.accounts.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, h.view(account))
}
