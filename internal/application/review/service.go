// Package review implements verdict submission and revision with the
// listing policy coupled to the paper's verdict counters.
package review

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/paper"
	domainreview "github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// SubmitRequest carries a new verdict
type SubmitRequest struct {
	Verdict paper.Verdict
	URI     string
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	Key       string `json:"key"`
	Reviewer  string `json:"reviewer"`
	PaperKey  string `json:"paper_key"`
	Verdict   string `json:"verdict"`
	URI       string `json:"uri"`
	Timestamp int64  `json:"timestamp"`
	Listed    bool   `json:"paper_listed"`
}

func toResponse(r *domainreview.Review, p *paper.Paper) ReviewResponse {
	return ReviewResponse{
		Key:       r.Key,
		Reviewer:  r.Reviewer.String(),
		PaperKey:  r.PaperKey,
		Verdict:   r.Verdict.String(),
		URI:       r.URI,
		Timestamp: r.Timestamp.Unix(),
		Listed:    p.Listed,
	}
}

// Service handles review operations
type Service struct {
	scope          ledger.TransactionScope
	clock          shared.Clock
	logger         *zap.Logger
	eventPublisher shared.EventPublisher
}

// NewService creates a new review service
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

// Submit records caller's verdict on a paper, updates the paper's counters
// and delists it when the rejection ratio exceeds the limit.
func (s *Service) Submit(ctx context.Context, caller, owner shared.Identity, id uint64, req SubmitRequest) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "submit")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrPaperKey, shared.PaperKey(owner, id),
		telemetry.SpanAttrVerdict, req.Verdict.String(),
	)

	var collector ledger.EventCollector
	var result ReviewResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		reviewer, err := ledger.RequireUser(ctx, repos, caller)
		if err != nil {
			return err
		}
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}

		isAuthor, err := ledger.HasAuthorRecord(ctx, repos, caller, p)
		if err != nil {
			return err
		}
		_, hasPurchase, err := repos.Purchases().Get(ctx, shared.PurchaseKey(caller, p.Key))
		if err != nil {
			return err
		}
		eligibility := domainreview.Eligibility{IsAuthor: isAuthor, HasPurchase: hasPurchase}
		if err := domainreview.CheckEligibility(p, caller, eligibility); err != nil {
			return err
		}

		now := s.clock.Now()
		r, err := domainreview.NewReview(caller, p, req.Verdict, req.URI, now)
		if err != nil {
			return err
		}
		if err := repos.Reviews().Create(ctx, r); err != nil {
			return err
		}

		delisted, err := p.RecordReview(req.Verdict, now)
		if err != nil {
			return err
		}
		if err := repos.Papers().Save(ctx, p); err != nil {
			return fmt.Errorf("failed to save paper: %w", err)
		}
		if err := reviewer.RecordReview(now); err != nil {
			return err
		}
		if err := repos.Users().Save(ctx, reviewer); err != nil {
			return fmt.Errorf("failed to save reviewer account: %w", err)
		}

		if delisted {
			telemetry.AddEvent(span, "paper_delisted", "rejection_ratio", int64(p.ReviewStatus.RejectionRatio()))
		}
		collector.Add(domainreview.NewReviewSubmittedEvent(r))
		collector.Collect(p, reviewer)
		result = toResponse(r, p)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "submit_review", err,
			zap.String("caller", caller.String()),
			zap.String("paper_key", shared.PaperKey(owner, id)))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Review submitted",
		zap.String("paper_key", result.PaperKey),
		zap.String("reviewer", result.Reviewer),
		zap.String("verdict", result.Verdict),
		zap.Bool("paper_listed", result.Listed))
	return &result, nil
}

// Edit replaces caller's verdict on a paper. A withdrawn review request is
// uncounted, an approval lists the paper, and any other verdict rechecks
// the rejection ratio.
func (s *Service) Edit(ctx context.Context, caller, owner shared.Identity, id uint64, verdict paper.Verdict) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "edit")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCaller, caller.String(),
		telemetry.SpanAttrPaperKey, shared.PaperKey(owner, id),
		telemetry.SpanAttrVerdict, verdict.String(),
	)

	var collector ledger.EventCollector
	var result ReviewResponse
	err := s.scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		paperKey := shared.PaperKey(owner, id)
		r, found, err := repos.Reviews().Get(ctx, shared.ReviewKey(caller, paperKey))
		if err != nil {
			return err
		}
		if !found {
			return domainreview.ErrReviewNotFound
		}
		p, err := ledger.RequirePaper(ctx, repos, owner, id)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		previous, err := r.Revise(verdict, now)
		if err != nil {
			return err
		}
		if err := p.ReviseVerdict(previous, verdict, now); err != nil {
			return err
		}
		if err := repos.Reviews().Save(ctx, r); err != nil {
			return fmt.Errorf("failed to save review: %w", err)
		}
		if err := repos.Papers().Save(ctx, p); err != nil {
			return fmt.Errorf("failed to save paper: %w", err)
		}

		collector.Add(domainreview.NewReviewEditedEvent(r, previous))
		collector.Collect(p)
		result = toResponse(r, p)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		ledger.LogRejected(s.logger, "edit_review", err,
			zap.String("caller", caller.String()),
			zap.String("paper_key", shared.PaperKey(owner, id)))
		return nil, err
	}

	collector.Publish(ctx, s.eventPublisher, s.logger)
	s.logger.Info("Review edited",
		zap.String("paper_key", result.PaperKey),
		zap.String("verdict", result.Verdict),
		zap.Bool("paper_listed", result.Listed))
	return &result, nil
}
