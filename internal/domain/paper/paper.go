// Package paper holds the paper registry: paper records, their verdict
// counters and the co-author records attached to them.
package paper

import (
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/validation"
)

// MinPrice is the smallest non-zero price, in smallest currency units
const MinPrice uint64 = 1_000_000

// Paper is the aggregate root of the registry. Papers are never deleted.
type Paper struct {
	shared.BaseAggregateRoot
	Owner        shared.Identity
	ID           uint64
	InfoURL      string
	URI          string
	PaperVersion uint32
	Price        uint64
	Listed       bool
	Sales        uint32
	Reviews      uint32
	Timestamp    time.Time
	ReviewStatus ReviewStatus
}

// EditParams carries the optional fields of an edit. Nil means unchanged.
type EditParams struct {
	InfoURL *string
	Listed  *bool
	Price   *uint64
	Version *uint32
	URI     *string
}

// CheckPrice enforces the price floor
func CheckPrice(price uint64) error {
	if price != 0 && price < MinPrice {
		return ErrIncorrectPricing
	}
	return nil
}

// NewPaper creates an unlisted paper with zeroed counters
func NewPaper(owner shared.Identity, id uint64, infoURL string, price uint64, uri string, now time.Time) (*Paper, error) {
	if err := validation.CheckField(infoURL, validation.MaxURILength); err != nil {
		return nil, err
	}
	if err := validation.CheckField(uri, validation.MaxURILength); err != nil {
		return nil, err
	}
	if err := CheckPrice(price); err != nil {
		return nil, err
	}

	p := &Paper{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.PaperKey(owner, id), now),
		Owner:             owner,
		ID:                id,
		InfoURL:           infoURL,
		URI:               uri,
		PaperVersion:      1,
		Price:             price,
		Timestamp:         now,
	}
	p.AddDomainEvent(NewPaperPublishedEvent(p))
	return p, nil
}

// IsOwnedBy reports whether id owns the paper
func (p *Paper) IsOwnedBy(id shared.Identity) bool {
	return p.Owner == id
}

// Edit applies params on behalf of caller. Text and numeric fields are
// applied first, then the resulting record is checked against the price
// floor and the symbol filter; the listing flag is applied last. On any
// error the paper is left untouched.
func (p *Paper) Edit(caller shared.Identity, params EditParams, now time.Time) error {
	if !p.IsOwnedBy(caller) {
		return ErrNotPaperOwner
	}

	infoURL, uri := p.InfoURL, p.URI
	price, version := p.Price, p.PaperVersion
	listed := p.Listed

	if err := validation.UpdateOptionalText(&infoURL, params.InfoURL, validation.MaxURILength); err != nil {
		return err
	}
	validation.UpdateOptionalNumeric(&price, params.Price)
	validation.UpdateOptionalNumeric(&version, params.Version)
	if err := validation.UpdateOptionalText(&uri, params.URI, validation.MaxURILength); err != nil {
		return err
	}

	if err := CheckPrice(price); err != nil {
		return err
	}
	if err := validation.CheckSymbols(infoURL, uri); err != nil {
		return err
	}
	validation.UpdateOptionalBool(&listed, params.Listed)

	wasListed := p.Listed
	p.InfoURL, p.URI = infoURL, uri
	p.Price, p.PaperVersion = price, version
	p.Listed = listed
	p.Timestamp = now
	p.Touch(now)

	p.AddDomainEvent(NewPaperEditedEvent(p))
	if wasListed != listed {
		p.AddDomainEvent(NewListingChangedEvent(p))
	}
	return nil
}

// RecordReview counts a newly submitted verdict. It returns true when the
// paper was delisted by this review.
func (p *Paper) RecordReview(v Verdict, now time.Time) (bool, error) {
	if p.Reviews == ^uint32(0) {
		return false, ErrCounterOverflowed
	}
	status := p.ReviewStatus
	if err := status.Update(v); err != nil {
		return false, err
	}

	p.Reviews++
	p.ReviewStatus = status
	p.Timestamp = now
	p.Touch(now)
	return p.applyRejectionLimit(), nil
}

// ReviseVerdict moves one counted verdict from previous to next. A withdrawn
// ReviewRequested verdict is uncounted; other previous verdicts stay counted.
// An approving revision lists an unlisted paper; any other revision
// recomputes the rejection ratio and may delist it.
func (p *Paper) ReviseVerdict(previous, next Verdict, now time.Time) error {
	status := p.ReviewStatus
	if previous == VerdictReviewRequested {
		if err := status.WithdrawReviewRequest(); err != nil {
			return err
		}
	}
	if err := status.Update(next); err != nil {
		return err
	}

	p.ReviewStatus = status
	p.Timestamp = now
	p.Touch(now)

	if next == VerdictApproved {
		if !p.Listed {
			p.Listed = true
			p.AddDomainEvent(NewListingChangedEvent(p))
		}
		return nil
	}
	p.applyRejectionLimit()
	return nil
}

// RecordSale counts one more sale
func (p *Paper) RecordSale(now time.Time) error {
	if p.Sales == ^uint32(0) {
		return ErrCounterOverflowed
	}
	p.Sales++
	p.Touch(now)
	p.AddDomainEvent(NewPaperSoldEvent(p))
	return nil
}

func (p *Paper) applyRejectionLimit() bool {
	if !p.ReviewStatus.ExceedsRejectionLimit() || !p.Listed {
		return false
	}
	p.Listed = false
	p.AddDomainEvent(NewPaperDelistedEvent(p))
	return true
}
