package finance

import (
	"context"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
)

// VaultKind distinguishes the value-holding accounts of the ledger
type VaultKind string

const (
	// VaultKindWallet holds an identity's spendable funds
	VaultKindWallet VaultKind = "WALLET"
	// VaultKindUser collects a user's sale proceeds
	VaultKindUser VaultKind = "USER_VAULT"
	// VaultKindPlatform collects platform fees
	VaultKindPlatform VaultKind = "PLATFORM_VAULT"
)

// PlatformOwner owns the platform vault
const PlatformOwner shared.Identity = "paperfi"

var (
	ErrVaultNotFound = shared.NewDomainError("VAULT_NOT_FOUND", "Vault account not found")
	ErrInvalidAmount = shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
)

// IsValid checks if the kind is known
func (k VaultKind) IsValid() bool {
	switch k {
	case VaultKindWallet, VaultKindUser, VaultKindPlatform:
		return true
	}
	return false
}

// String returns the string representation of VaultKind
func (k VaultKind) String() string {
	return string(k)
}

// VaultRef identifies a vault account
type VaultRef struct {
	Kind  VaultKind
	Owner shared.Identity
}

// Key returns the ledger key of the referenced vault
func (r VaultRef) Key() string {
	return shared.VaultKey(string(r.Kind), r.Owner)
}

// Wallet references an identity's wallet
func Wallet(owner shared.Identity) VaultRef {
	return VaultRef{Kind: VaultKindWallet, Owner: owner}
}

// UserVault references an identity's proceeds vault
func UserVault(owner shared.Identity) VaultRef {
	return VaultRef{Kind: VaultKindUser, Owner: owner}
}

// PlatformVault references the fee vault
func PlatformVault() VaultRef {
	return VaultRef{Kind: VaultKindPlatform, Owner: PlatformOwner}
}

// VaultAccount holds a balance in smallest currency units
type VaultAccount struct {
	shared.BaseAggregateRoot
	Kind    VaultKind
	Owner   shared.Identity
	Balance uint64
}

// NewVaultAccount creates an empty vault
func NewVaultAccount(ref VaultRef, now time.Time) *VaultAccount {
	return &VaultAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(ref.Key(), now),
		Kind:              ref.Kind,
		Owner:             ref.Owner,
	}
}

// Ref returns the reference of the vault
func (v *VaultAccount) Ref() VaultRef {
	return VaultRef{Kind: v.Kind, Owner: v.Owner}
}

// Credit adds amount to the balance
func (v *VaultAccount) Credit(amount valueobject.Money, now time.Time) error {
	next, err := valueobject.NewMoney(v.Balance).Add(amount)
	if err != nil {
		return err
	}
	v.Balance = next.Units()
	v.Touch(now)
	return nil
}

// Debit removes amount from the balance
func (v *VaultAccount) Debit(amount valueobject.Money, now time.Time) error {
	next, err := valueobject.NewMoney(v.Balance).Subtract(amount)
	if err != nil {
		return err
	}
	v.Balance = next.Units()
	v.Touch(now)
	return nil
}

// VaultRepository defines the interface for vault persistence
type VaultRepository interface {
	// Get finds a vault by its ledger key
	Get(ctx context.Context, key string) (*VaultAccount, bool, error)

	// Create inserts a new vault. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, v *VaultAccount) error

	// Save updates a vault with optimistic locking
	Save(ctx context.Context, v *VaultAccount) error
}
