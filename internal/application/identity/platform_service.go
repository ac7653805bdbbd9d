package identity

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PlatformResponse represents the platform configuration in API responses
type PlatformResponse struct {
	FeePercent   uint8    `json:"fee_percent"`
	Admins       []string `json:"admins"`
	VaultBalance uint64   `json:"vault_balance"`
}

// WithdrawResponse reports the amount moved into the caller's wallet
type WithdrawResponse struct {
	Amount        uint64 `json:"amount"`
	WalletBalance uint64 `json:"wallet_balance"`
}

// PlatformService handles platform administration and vault withdrawals
type PlatformService struct {
	scope             ledger.TransactionScope
	clock             shared.Clock
	logger            *zap.Logger
	eventPublisher    shared.EventPublisher
	defaultFeePercent uint8
}

// NewPlatformService creates a new PlatformService. defaultFeePercent is the
// fee applied when the platform is bootstrapped.
func NewPlatformService(scope ledger.TransactionScope, clock shared.Clock, defaultFeePercent uint8, logger *zap.Logger) *PlatformService {
	return &PlatformService{
		scope:             scope,
		clock:             clock,
		logger:            logger,
		defaultFeePercent: defaultFeePercent,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PlatformService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// BootstrapAdmin adds admin to the platform. The first call creates the
// platform configuration and fee vault with the caller as its only admin,
// so admin must equal caller; every later call must come from an existing
// admin.
func (s *PlatformService) BootstrapAdmin(ctx context.Context, caller, admin shared.Identity) (*PlatformResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "platform", "bootstrap_admin")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		"admin", admin.String(),
	)

	var collector ledger.EventCollector
	var result PlatformResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		now := s.clock.Now()
		cfg, found, err := repos.Platform().Get(ctx)
		if err != nil {
			return err
		}

		if !found {
			if admin != caller {
				return identity.ErrNotSelfBootstrap
			}
			cfg, err = identity.NewPlatformConfig(caller, s.defaultFeePercent, now)
			if err != nil {
				return err
			}
			if err := repos.Platform().Create(ctx, cfg); err != nil {
				return err
			}
			if err := ensureVault(ctx, repos, finance.PlatformVault(), s.clock); err != nil {
				return err
			}
		} else {
			if err := cfg.AddAdmin(caller, admin, now); err != nil {
				return err
			}
			if err := repos.Platform().Save(ctx, cfg); err != nil {
				return fmt.Errorf("failed to save platform config: %w", err)
			}
		}

		collector.Collect(cfg)
		result = toPlatformResponse(cfg)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "bootstrap_admin", err,
			zap.String("caller", caller.String()),
			zap.String("admin", admin.String()))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Platform admin added", zap.String("admin", admin.String()), zap.Int("admins", len(result.Admins)))
	return &result, nil
}

// SetFee changes the platform fee percent
func (s *PlatformService) SetFee(ctx context.Context, caller shared.Identity, percent uint8) (*PlatformResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "platform", "set_fee")
	defer span.End()

	var result PlatformResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		cfg, err := ledger.RequirePlatform(ctx, repos)
		if err != nil {
			return err
		}
		if err := cfg.SetFee(caller, percent, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.Platform().Save(ctx, cfg); err != nil {
			return fmt.Errorf("failed to save platform config: %w", err)
		}
		result = toPlatformResponse(cfg)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "set_fee", err, zap.String("caller", caller.String()))
		return nil, err
	}

	s.logger.Info("Platform fee changed", zap.Uint8("fee_percent", percent), zap.String("admin", caller.String()))
	return &result, nil
}

// GetPlatform returns the platform configuration and fee vault balance
func (s *PlatformService) GetPlatform(ctx context.Context) (*PlatformResponse, error) {
	var result PlatformResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		cfg, err := ledger.RequirePlatform(ctx, repos)
		if err != nil {
			return err
		}
		balance, err := ledger.Transfers(repos, s.clock).Balance(ctx, finance.PlatformVault())
		if err != nil {
			return err
		}
		result = toPlatformResponse(cfg)
		result.VaultBalance = balance.Units()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Withdraw moves caller's whole proceeds vault into their wallet
func (s *PlatformService) Withdraw(ctx context.Context, caller shared.Identity) (*WithdrawResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vault", "withdraw")
	defer span.End()

	result, err := s.drain(ctx, caller, finance.UserVault(caller), false)
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "withdraw", err, zap.String("caller", caller.String()))
		return nil, err
	}
	s.logger.Info("Vault withdrawn", zap.String("identity", caller.String()), zap.Uint64("amount", result.Amount))
	return result, nil
}

// AdminWithdraw moves the platform fee vault into the calling admin's wallet
func (s *PlatformService) AdminWithdraw(ctx context.Context, caller shared.Identity) (*WithdrawResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vault", "admin_withdraw")
	defer span.End()

	result, err := s.drain(ctx, caller, finance.PlatformVault(), true)
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "admin_withdraw", err, zap.String("caller", caller.String()))
		return nil, err
	}
	s.logger.Info("Platform vault withdrawn", zap.String("admin", caller.String()), zap.Uint64("amount", result.Amount))
	return result, nil
}

// Fund credits amount to id's wallet from outside the ledger
func (s *PlatformService) Fund(ctx context.Context, id shared.Identity, amount valueobject.Money) (*WithdrawResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "vault", "fund")
	defer span.End()

	var result WithdrawResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		transfers := ledger.Transfers(repos, s.clock)
		if err := transfers.Deposit(ctx, finance.Wallet(id), amount); err != nil {
			return err
		}
		balance, err := transfers.Balance(ctx, finance.Wallet(id))
		if err != nil {
			return err
		}
		result = WithdrawResponse{Amount: amount.Units(), WalletBalance: balance.Units()}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "fund", err, zap.String("identity", id.String()))
		return nil, err
	}
	s.logger.Info("Wallet funded", zap.String("identity", id.String()), zap.Uint64("amount", amount.Units()))
	return &result, nil
}

func (s *PlatformService) drain(ctx context.Context, caller shared.Identity, source finance.VaultRef, adminOnly bool) (*WithdrawResponse, error) {
	var result WithdrawResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		if adminOnly {
			cfg, err := ledger.RequirePlatform(ctx, repos)
			if err != nil {
				return err
			}
			if err := cfg.RequireAdmin(caller); err != nil {
				return err
			}
		} else if _, err := ledger.RequireUser(ctx, repos, caller); err != nil {
			return err
		}

		if err := ensureVault(ctx, repos, finance.Wallet(caller), s.clock); err != nil {
			return err
		}
		transfers := ledger.Transfers(repos, s.clock)
		amount, err := transfers.Balance(ctx, source)
		if err != nil {
			return err
		}
		if err := transfers.Transfer(ctx, source, finance.Wallet(caller), amount); err != nil {
			return err
		}
		balance, err := transfers.Balance(ctx, finance.Wallet(caller))
		if err != nil {
			return err
		}
		result = WithdrawResponse{Amount: amount.Units(), WalletBalance: balance.Units()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func toPlatformResponse(cfg *identity.PlatformConfig) PlatformResponse {
	admins := make([]string, 0, len(cfg.Admins))
	for _, a := range cfg.Admins {
		admins = append(admins, a.String())
	}
	return PlatformResponse{FeePercent: cfg.FeePercent, Admins: admins}
}
