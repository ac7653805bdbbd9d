// Package achievement implements badge collections and achievement minting.
package achievement

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	domain "github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// MinterFactory returns the minter to use inside a transaction
type MinterFactory func(repos ledger.TransactionalRepositories) domain.AssetMinter

// MintRequest carries a badge mint
type MintRequest struct {
	Collection  string
	Name        string
	URI         string
	Achievement string
	Record      uint32
}

// CollectionResponse represents a badge collection in API responses
type CollectionResponse struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	URI       string `json:"uri"`
	CreatedBy string `json:"created_by"`
}

// BadgeResponse represents a minted badge in API responses
type BadgeResponse struct {
	AssetID    string             `json:"asset_id"`
	Owner      string             `json:"owner"`
	Collection string             `json:"collection"`
	Name       string             `json:"name"`
	URI        string             `json:"uri"`
	Attributes []domain.Attribute `json:"attributes"`
	MintedAt   int64              `json:"minted_at"`
}

// ToBadgeResponse converts a badge to its response
func ToBadgeResponse(b *domain.Badge) BadgeResponse {
	return BadgeResponse{
		AssetID:    b.AssetID.String(),
		Owner:      b.Owner.String(),
		Collection: b.CollectionKey,
		Name:       b.Name,
		URI:        b.URI,
		Attributes: b.Attributes,
		MintedAt:   b.MintedAt.Unix(),
	}
}

// Service handles badge operations
type Service struct {
	scope          ledger.TransactionScope
	clock          shared.Clock
	minters        MinterFactory
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewService creates a new achievement service
func NewService(scope ledger.TransactionScope, clock shared.Clock, minters MinterFactory, logger *zap.Logger) *Service {
	return &Service{
		scope:   scope,
		clock:   clock,
		minters: minters,
		logger:  logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateCollection creates a named badge collection. Admin only.
func (s *Service) CreateCollection(ctx context.Context, caller shared.Identity, name, uri string) (*CollectionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "badge", "create_collection")
	defer span.End()

	var result CollectionResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		cfg, err := ledger.RequirePlatform(ctx, repos)
		if err != nil {
			return err
		}
		if err := cfg.RequireAdmin(caller); err != nil {
			return err
		}
		c, err := domain.NewCollection(name, uri, caller, s.clock.Now())
		if err != nil {
			return err
		}
		if err := repos.Collections().Create(ctx, c); err != nil {
			return err
		}
		result = CollectionResponse{Key: c.Key, Name: c.Name, URI: c.URI, CreatedBy: caller.String()}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "create_collection", err, zap.String("caller", caller.String()))
		return nil, err
	}

	s.logger.Info("Badge collection created", zap.String("name", result.Name))
	return &result, nil
}

// Mint checks caller's achievement against the required record and mints
// the badge when the gate passes.
func (s *Service) Mint(ctx context.Context, caller shared.Identity, req MintRequest) (*BadgeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "badge", "mint")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrAchievement, req.Achievement,
		"record", int64(req.Record),
	)

	var collector ledger.EventCollector
	var result BadgeResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		account, err := ledger.RequireUser(ctx, repos, caller)
		if err != nil {
			return err
		}
		c, found, err := repos.Collections().Get(ctx, shared.BadgeCollectionKey(req.Collection))
		if err != nil {
			return err
		}
		if !found {
			return domain.ErrCollectionNotFound
		}

		if err := domain.Check(req.Achievement, req.Record, account); err != nil {
			return err
		}
		kind, err := domain.ParseKind(req.Achievement)
		if err != nil {
			return err
		}

		badge, err := domain.NewBadge(caller, c, req.Name, req.URI, kind, req.Record, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.minters(repos).Mint(ctx, badge); err != nil {
			return fmt.Errorf("failed to mint badge: %w", err)
		}

		collector.Add(domain.NewBadgeMintedEvent(badge))
		result = ToBadgeResponse(badge)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "mint_badge", err,
			zap.String("caller", caller.String()),
			zap.String("achievement", req.Achievement))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Badge minted",
		zap.String("owner", result.Owner),
		zap.String("asset_id", result.AssetID),
		zap.String("achievement", req.Achievement))
	return &result, nil
}

// ListBadges returns the badges held by owner
func (s *Service) ListBadges(ctx context.Context, owner shared.Identity) ([]BadgeResponse, error) {
	var result []BadgeResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		badges, err := repos.Badges().ListByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("failed to list badges: %w", err)
		}
		result = make([]BadgeResponse, 0, len(badges))
		for i := range badges {
			result = append(result, ToBadgeResponse(&badges[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
