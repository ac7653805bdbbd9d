// Package publishing implements the paper registry operations: publishing,
// editing and co-author registration.
package publishing

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Service handles paper registry operations
type Service struct {
	scope          ledger.TransactionScope
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewService creates a new publishing service
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

// Publish creates a paper owned by caller and counts it on the caller's account
func (s *Service) Publish(ctx context.Context, caller shared.Identity, req PublishRequest) (*PaperResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "paper", "publish")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrPaperID, req.ID,
	)

	var collector ledger.EventCollector
	var result PaperResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		owner, err := ledger.RequireUser(ctx, repos, caller)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		p, err := paper.NewPaper(caller, req.ID, req.InfoURL, req.Price, req.URI, now)
		if err != nil {
			return err
		}
		if err := repos.Papers().Create(ctx, p); err != nil {
			return err
		}
		if err := owner.RecordPaper(now); err != nil {
			return err
		}
		if err := repos.Users().Save(ctx, owner); err != nil {
			return fmt.Errorf("failed to save owner account: %w", err)
		}

		collector.Collect(p, owner)
		result = ToPaperResponse(p)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "publish_paper", err, zap.String("caller", caller.String()))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Paper published",
		zap.String("paper_key", result.Key),
		zap.String("owner", result.Owner),
		zap.Uint64("price", result.Price))
	return &result, nil
}

// Edit applies an owner's changes to a paper. A rejected edit leaves the
// paper untouched.
func (s *Service) Edit(ctx context.Context, caller, owner shared.Identity, id uint64, req EditRequest) (*PaperResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "paper", "edit")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrPaperKey, shared.PaperKey(owner, id),
	)

	var collector ledger.EventCollector
	var result PaperResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}
		params := paper.EditParams{
			InfoURL: req.InfoURL,
			Listed:  req.Listed,
			Price:   req.Price,
			Version: req.Version,
			URI:     req.URI,
		}
		if err := p.Edit(caller, params, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.Papers().Save(ctx, p); err != nil {
			return fmt.Errorf("failed to save paper: %w", err)
		}

		collector.Collect(p)
		result = ToPaperResponse(p)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "edit_paper", err,
			zap.String("caller", caller.String()),
			zap.String("paper_key", shared.PaperKey(owner, id)))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Paper edited", zap.String("paper_key", result.Key), zap.Bool("listed", result.Listed))
	return &result, nil
}

// AddAuthor registers author as an unverified co-author of the caller's paper
func (s *Service) AddAuthor(ctx context.Context, caller, owner shared.Identity, id uint64, author shared.Identity) (*AuthorResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "paper", "add_author")
	defer span.End()

	var result AuthorResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}
		a, err := paper.NewAuthorRecord(p, caller, author, s.clock.Now())
		if err != nil {
			return err
		}
		if err := repos.Authors().Create(ctx, a); err != nil {
			return err
		}
		result = ToAuthorResponse(a)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "add_author", err, zap.String("caller", caller.String()))
		return nil, err
	}

	s.logger.Info("Author added", zap.String("paper_key", result.PaperKey), zap.String("author", result.Author))
	return &result, nil
}

// VerifyAuthor lets the named author confirm their authorship. Repeating it
// changes nothing.
func (s *Service) VerifyAuthor(ctx context.Context, caller, owner shared.Identity, id uint64) (*AuthorResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "paper", "verify_author")
	defer span.End()

	var collector ledger.EventCollector
	var result AuthorResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		a, found, err := repos.Authors().Get(ctx, shared.AuthorKey(caller, shared.PaperKey(owner, id)))
		if err != nil {
			return err
		}
		if !found {
			return paper.ErrAuthorNotFound
		}
		if a.Verified {
			result = ToAuthorResponse(a)
			return nil
		}
		if err := a.Verify(caller, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.Authors().Save(ctx, a); err != nil {
			return fmt.Errorf("failed to save author record: %w", err)
		}
		collector.Add(paper.NewAuthorVerifiedEvent(a))
		result = ToAuthorResponse(a)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "verify_author", err, zap.String("caller", caller.String()))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	return &result, nil
}

// GetPaper returns a single paper
func (s *Service) GetPaper(ctx context.Context, owner shared.Identity, id uint64) (*PaperResponse, error) {
	var result PaperResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}
		result = ToPaperResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByOwner returns one page of an owner's papers
func (s *Service) ListByOwner(ctx context.Context, owner shared.Identity, filter ListFilter) (*shared.Paginated[PaperResponse], error) {
	domainFilter := filter.toDomain()

	var page shared.Paginated[PaperResponse]
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		papers, total, err := repos.Papers().ListByOwner(ctx, owner, domainFilter)
		if err != nil {
			return fmt.Errorf("failed to list papers: %w", err)
		}
		items := make([]PaperResponse, 0, len(papers))
		for i := range papers {
			items = append(items, ToPaperResponse(&papers[i]))
		}
		page = shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}
