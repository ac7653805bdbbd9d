// Package purchase implements the atomic settlement of a paper purchase.
package purchase

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/finance"
	domainpurchase "github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// PurchaseResponse represents a settled purchase in API responses
type PurchaseResponse struct {
	Key      string `json:"key"`
	Buyer    string `json:"buyer"`
	PaperKey string `json:"paper_key"`
	Price    uint64 `json:"price"`
	Fee      uint64 `json:"fee"`
	Outlay   uint64 `json:"outlay"`
	Sales    uint32 `json:"paper_sales"`
}

// Service handles purchase settlement
type Service struct {
	scope          ledger.TransactionScope
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewService creates a new purchase service
func NewService(scope ledger.TransactionScope, clock shared.Clock, logger *zap.Logger) *Service {
	return &Service{
		scope:  scope,
		clock:  clock,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Buy settles caller's purchase of a paper. The purchase record, the
// price and fee transfers and both counters are written together or not
// at all.
func (s *Service) Buy(ctx context.Context, caller, owner shared.Identity, id uint64) (*PurchaseResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "purchase", "buy")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrPaperKey, shared.PaperKey(owner, id),
	)

	var collector ledger.EventCollector
	var result PurchaseResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		buyer, err := ledger.RequireUser(ctx, repos, caller)
		if err != nil {
			return err
		}
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}
		if err := domainpurchase.CheckBuyer(p, caller); err != nil {
			return err
		}
		isAuthor, err := ledger.HasAuthorRecord(ctx, repos, caller, p)
		if err != nil {
			return err
		}

		var feePercent uint8
		if p.Price > 0 && !isAuthor {
			platform, err := ledger.RequirePlatform(ctx, repos)
			if err != nil {
				return err
			}
			feePercent = platform.FeePercent
		}
		settlement, err := domainpurchase.Quote(p, feePercent, isAuthor)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		record := domainpurchase.NewRecord(caller, p, settlement, now)
		if err := repos.Purchases().Create(ctx, record); err != nil {
			return err
		}

		if !settlement.IsFree() {
			transfers := ledger.Transfers(repos, s.clock)
			if err := transfers.Transfer(ctx, finance.Wallet(caller), finance.UserVault(p.Owner), settlement.Price); err != nil {
				return err
			}
			if err := transfers.Transfer(ctx, finance.Wallet(caller), finance.PlatformVault(), settlement.Fee); err != nil {
				return err
			}
		}

		if err := p.RecordSale(now); err != nil {
			return err
		}
		if err := repos.Papers().Save(ctx, p); err != nil {
			return fmt.Errorf("failed to save paper: %w", err)
		}
		if err := buyer.RecordPurchase(now); err != nil {
			return err
		}
		if err := repos.Users().Save(ctx, buyer); err != nil {
			return fmt.Errorf("failed to save buyer account: %w", err)
		}

		outlay, err := settlement.Outlay()
		if err != nil {
			return err
		}
		collector.Add(domainpurchase.NewPaperPurchasedEvent(record))
		collector.Collect(p, buyer)
		result = PurchaseResponse{
			Key:      record.Key,
			Buyer:    caller.String(),
			PaperKey: p.Key,
			Price:    record.Price,
			Fee:      record.Fee,
			Outlay:   outlay.Units(),
			Sales:    p.Sales,
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "buy_paper", err,
			zap.String("caller", caller.String()),
			zap.String("paper_key", shared.PaperKey(owner, id)))
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrAmount, result.Outlay)
	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Paper purchased",
		zap.String("paper_key", result.PaperKey),
		zap.String("buyer", result.Buyer),
		zap.Uint64("price", result.Price),
		zap.Uint64("fee", result.Fee))
	return &result, nil
}
