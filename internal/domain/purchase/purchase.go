// Package purchase holds purchase proofs and the settlement arithmetic.
package purchase

import (
	"context"
	"time"

	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
)

var (
	ErrPublisherCantBuy = shared.NewDomainError("PUBLISHER_CANT_BUY", "The paper owner cannot buy their own paper")
	ErrAlreadyPurchased = shared.NewDomainError("ALREADY_EXISTS", "Buyer already owns this paper")
)

// Record proves that Buyer owns the paper. It is never modified.
type Record struct {
	shared.BaseEntity
	Buyer     shared.Identity
	PaperKey  string
	Price     uint64
	Fee       uint64
	Timestamp time.Time
}

// Settlement is the amount a buyer pays to the owner and to the platform
type Settlement struct {
	Price valueobject.Money
	Fee   valueobject.Money
}

// Outlay returns the total the buyer pays
func (s Settlement) Outlay() (valueobject.Money, error) {
	return s.Price.Add(s.Fee)
}

// IsFree reports whether no funds move
func (s Settlement) IsFree() bool {
	return s.Price.IsZero() && s.Fee.IsZero()
}

// Quote computes what buyer pays for p. Free papers and co-authors pay
// nothing; otherwise the fee is price*feePercent/100 on top of the price.
func Quote(p *paper.Paper, feePercent uint8, buyerIsAuthor bool) (Settlement, error) {
	if p.Price == 0 || buyerIsAuthor {
		return Settlement{}, nil
	}
	price := valueobject.NewMoney(p.Price)
	fee, err := price.Percent(feePercent)
	if err != nil {
		return Settlement{}, err
	}
	return Settlement{Price: price, Fee: fee}, nil
}

// CheckBuyer rejects owners buying their own paper
func CheckBuyer(p *paper.Paper, buyer shared.Identity) error {
	if p.IsOwnedBy(buyer) {
		return ErrPublisherCantBuy
	}
	return nil
}

// NewRecord creates the purchase proof for buyer
func NewRecord(buyer shared.Identity, p *paper.Paper, s Settlement, now time.Time) *Record {
	return &Record{
		BaseEntity: shared.NewBaseEntity(shared.PurchaseKey(buyer, p.Key), now),
		Buyer:      buyer,
		PaperKey:   p.Key,
		Price:      s.Price.Units(),
		Fee:        s.Fee.Units(),
		Timestamp:  now,
	}
}

// EventTypePaperPurchased is the event type of PaperPurchasedEvent
const EventTypePaperPurchased = "PaperPurchased"

// PaperPurchasedEvent is raised when a purchase settles
type PaperPurchasedEvent struct {
	shared.BaseDomainEvent
	Buyer    shared.Identity `json:"buyer"`
	PaperKey string          `json:"paper_key"`
	Price    uint64          `json:"price"`
	Fee      uint64          `json:"fee"`
}

// NewPaperPurchasedEvent creates a new PaperPurchasedEvent
func NewPaperPurchasedEvent(r *Record) *PaperPurchasedEvent {
	return &PaperPurchasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaperPurchased, "PurchaseRecord", r.Key, r.Timestamp),
		Buyer:           r.Buyer,
		PaperKey:        r.PaperKey,
		Price:           r.Price,
		Fee:             r.Fee,
	}
}

// Repository defines the interface for purchase record persistence
type Repository interface {
	// Get finds a purchase record by its ledger key
	Get(ctx context.Context, key string) (*Record, bool, error)

	// Create inserts a new record. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, r *Record) error
}
