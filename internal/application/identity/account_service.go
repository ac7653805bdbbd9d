package identity

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// AccountResponse represents a user account in API responses
type AccountResponse struct {
	Key           string `json:"key"`
	Identity      string `json:"identity"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	Papers        uint32 `json:"papers"`
	Reviews       uint32 `json:"reviews"`
	Purchases     uint32 `json:"purchases"`
	Timestamp     int64  `json:"timestamp"`
	WalletBalance uint64 `json:"wallet_balance"`
	VaultBalance  uint64 `json:"vault_balance"`
}

func toAccountResponse(u *identity.UserAccount) AccountResponse {
	return AccountResponse{
		Key:       u.Key,
		Identity:  u.Identity.String(),
		Name:      u.Name,
		Title:     u.Title,
		Papers:    u.Papers,
		Reviews:   u.Reviews,
		Purchases: u.Purchases,
		Timestamp: u.Timestamp.Unix(),
	}
}

// AccountService handles user account operations
type AccountService struct {
	scope          ledger.TransactionScope
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewAccountService creates a new AccountService
func NewAccountService(scope ledger.TransactionScope, clock shared.Clock, logger *zap.Logger) *AccountService {
	return &AccountService{
		scope:  scope,
		clock:  clock,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AccountService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Signup creates caller's account together with its wallet and proceeds vault
func (s *AccountService) Signup(ctx context.Context, caller shared.Identity, name, title string) (*AccountResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "signup")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrCaller, caller.String())

	var collector ledger.EventCollector
	var result AccountResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		now := s.clock.Now()
		u, err := identity.NewUserAccount(caller, name, title, now)
		if err != nil {
			return err
		}
		if err := repos.Users().Create(ctx, u); err != nil {
			return err
		}
		if err := ensureVault(ctx, repos, finance.Wallet(caller), s.clock); err != nil {
			return err
		}
		if err := ensureVault(ctx, repos, finance.UserVault(caller), s.clock); err != nil {
			return err
		}
		collector.Collect(u)
		result = toAccountResponse(u)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "signup", err, zap.String("caller", caller.String()))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Account created", zap.String("identity", result.Identity), zap.String("name", result.Name))
	return &result, nil
}

// EditUser applies the present profile fields of caller's account
func (s *AccountService) EditUser(ctx context.Context, caller shared.Identity, name, title *string) (*AccountResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "account", "edit")
	defer span.End()

	var result AccountResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		u, err := ledger.RequireUser(ctx, repos, caller)
		if err != nil {
			return err
		}
		if err := u.Edit(name, title, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.Users().Save(ctx, u); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		result = toAccountResponse(u)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "edit_user", err, zap.String("caller", caller.String()))
		return nil, err
	}
	return &result, nil
}

// GetAccount returns an account with its wallet and vault balances
func (s *AccountService) GetAccount(ctx context.Context, id shared.Identity) (*AccountResponse, error) {
	var result AccountResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		u, err := ledger.RequireUser(ctx, repos, id)
		if err != nil {
			return err
		}
		transfers := ledger.Transfers(repos, s.clock)
		wallet, err := transfers.Balance(ctx, finance.Wallet(id))
		if err != nil {
			return err
		}
		vault, err := transfers.Balance(ctx, finance.UserVault(id))
		if err != nil {
			return err
		}
		result = toAccountResponse(u)
		result.WalletBalance = wallet.Units()
		result.VaultBalance = vault.Units()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func ensureVault(ctx context.Context, repos ledger.TransactionalRepositories, ref finance.VaultRef, clock shared.Clock) error {
	_, found, err := repos.Vaults().Get(ctx, ref.Key())
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return repos.Vaults().Create(ctx, finance.NewVaultAccount(ref, clock.Now()))
}
