package finance

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
)

// TransferService moves value between vault accounts. Implementations run
// inside the caller's transaction so a failed transfer aborts the operation.
type TransferService interface {
	// Transfer debits from and credits to by amount
	Transfer(ctx context.Context, from, to VaultRef, amount valueobject.Money) error

	// Deposit credits to with value entering the ledger from outside
	Deposit(ctx context.Context, to VaultRef, amount valueobject.Money) error

	// Balance returns the current balance of ref
	Balance(ctx context.Context, ref VaultRef) (valueobject.Money, error)
}

// VaultTransferService implements TransferService on vault records
type VaultTransferService struct {
	vaults VaultRepository
	clock  shared.Clock
}

// NewVaultTransferService creates a transfer service over repo
func NewVaultTransferService(vaults VaultRepository, clock shared.Clock) *VaultTransferService {
	return &VaultTransferService{vaults: vaults, clock: clock}
}

// Transfer moves amount from one vault to another. A zero amount is a no-op.
func (s *VaultTransferService) Transfer(ctx context.Context, from, to VaultRef, amount valueobject.Money) error {
	if amount.IsZero() {
		return nil
	}
	if from == to {
		return nil
	}
	src, err := s.load(ctx, from)
	if err != nil {
		return err
	}
	dst, err := s.load(ctx, to)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	if err := src.Debit(amount, now); err != nil {
		return err
	}
	if err := dst.Credit(amount, now); err != nil {
		return err
	}
	if err := s.vaults.Save(ctx, src); err != nil {
		return fmt.Errorf("failed to save source vault: %w", err)
	}
	if err := s.vaults.Save(ctx, dst); err != nil {
		return fmt.Errorf("failed to save destination vault: %w", err)
	}
	return nil
}

// Deposit credits to, creating the vault when it does not exist yet
func (s *VaultTransferService) Deposit(ctx context.Context, to VaultRef, amount valueobject.Money) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	now := s.clock.Now()
	v, found, err := s.vaults.Get(ctx, to.Key())
	if err != nil {
		return fmt.Errorf("failed to load vault: %w", err)
	}
	if !found {
		v = NewVaultAccount(to, now)
		if err := v.Credit(amount, now); err != nil {
			return err
		}
		return s.vaults.Create(ctx, v)
	}
	if err := v.Credit(amount, now); err != nil {
		return err
	}
	return s.vaults.Save(ctx, v)
}

// Balance returns the balance of ref, zero when the vault does not exist
func (s *VaultTransferService) Balance(ctx context.Context, ref VaultRef) (valueobject.Money, error) {
	v, found, err := s.vaults.Get(ctx, ref.Key())
	if err != nil {
		return valueobject.Money{}, fmt.Errorf("failed to load vault: %w", err)
	}
	if !found {
		return valueobject.Zero(), nil
	}
	return valueobject.NewMoney(v.Balance), nil
}

func (s *VaultTransferService) load(ctx context.Context, ref VaultRef) (*VaultAccount, error) {
	v, found, err := s.vaults.Get(ctx, ref.Key())
	if err != nil {
		return nil, fmt.Errorf("failed to load vault: %w", err)
	}
	if !found {
		return nil, shared.NewDomainError(ErrVaultNotFound.Code, fmt.Sprintf("%s vault of %s not found", ref.Kind, ref.Owner))
	}
	return v, nil
}
