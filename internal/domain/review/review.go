// Package review holds reviewer verdicts and the rules that decide who may
// review a paper.
package review

import (
	"context"
	"time"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/validation"
)

var (
	ErrReviewNotFound   = shared.NewDomainError("REVIEW_NOT_FOUND", "Review not found")
	ErrReviewExists     = shared.NewDomainError("ALREADY_EXISTS", "Reviewer has already reviewed this paper")
	ErrOwnPaper         = shared.NewDomainError("UNAUTHORIZED", "Paper owners cannot review their own paper")
	ErrAuthorCantReview = shared.NewDomainError("UNAUTHORIZED", "Co-authors cannot review the paper")
	ErrPurchaseRequired = shared.NewDomainError("PURCHASE_REQUIRED", "Reviewer must purchase the paper first")
)

// Eligibility describes the reviewer's relation to the paper
type Eligibility struct {
	IsAuthor    bool
	HasPurchase bool
}

// CheckEligibility enforces who may review p, in order: not the owner,
// not a co-author, holder of a purchase record.
func CheckEligibility(p *paper.Paper, reviewer shared.Identity, e Eligibility) error {
	if p.IsOwnedBy(reviewer) {
		return ErrOwnPaper
	}
	if e.IsAuthor {
		return ErrAuthorCantReview
	}
	if !e.HasPurchase {
		return ErrPurchaseRequired
	}
	return nil
}

// Review is one reviewer's verdict on one paper
type Review struct {
	shared.BaseEntity
	Reviewer  shared.Identity
	PaperKey  string
	Verdict   paper.Verdict
	URI       string
	Timestamp time.Time
}

// NewReview creates a review of p
func NewReview(reviewer shared.Identity, p *paper.Paper, verdict paper.Verdict, uri string, now time.Time) (*Review, error) {
	if !verdict.IsValid() {
		return nil, paper.ErrInvalidVerdict
	}
	if err := validation.CheckField(uri, validation.MaxURILength); err != nil {
		return nil, err
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(shared.ReviewKey(reviewer, p.Key), now),
		Reviewer:   reviewer,
		PaperKey:   p.Key,
		Verdict:    verdict,
		URI:        uri,
		Timestamp:  now,
	}, nil
}

// Revise replaces the verdict and returns the previous one
func (r *Review) Revise(verdict paper.Verdict, now time.Time) (paper.Verdict, error) {
	if !verdict.IsValid() {
		return "", paper.ErrInvalidVerdict
	}
	previous := r.Verdict
	r.Verdict = verdict
	r.Timestamp = now
	r.Touch(now)
	return previous, nil
}

// Repository defines the interface for review persistence
type Repository interface {
	// Get finds a review by its ledger key
	Get(ctx context.Context, key string) (*Review, bool, error)

	// Create inserts a new review. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, r *Review) error

	// Save updates a review
	Save(ctx context.Context, r *Review) error
}
