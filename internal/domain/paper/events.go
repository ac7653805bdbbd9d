package paper

import "github.com/paperfi/backend/internal/domain/shared"

// Aggregate type name for paper events
const AggregateTypePaper = "Paper"

// Event types raised by the paper registry
const (
	EventTypePaperPublished = "PaperPublished"
	EventTypePaperEdited    = "PaperEdited"
	EventTypeListingChanged = "PaperListingChanged"
	EventTypePaperDelisted  = "PaperDelisted"
	EventTypePaperSold      = "PaperSold"
	EventTypeAuthorVerified = "AuthorVerified"
)

// PaperPublishedEvent is raised when a paper is published
type PaperPublishedEvent struct {
	shared.BaseDomainEvent
	Owner shared.Identity `json:"owner"`
	ID    uint64          `json:"id"`
	Price uint64          `json:"price"`
}

// NewPaperPublishedEvent creates a new PaperPublishedEvent
func NewPaperPublishedEvent(p *Paper) *PaperPublishedEvent {
	return &PaperPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaperPublished, AggregateTypePaper, p.Key, p.Timestamp),
		Owner:           p.Owner,
		ID:              p.ID,
		Price:           p.Price,
	}
}

// PaperEditedEvent is raised when the owner edits a paper
type PaperEditedEvent struct {
	shared.BaseDomainEvent
	Price   uint64 `json:"price"`
	Version uint32 `json:"version"`
	Listed  bool   `json:"listed"`
}

// NewPaperEditedEvent creates a new PaperEditedEvent
func NewPaperEditedEvent(p *Paper) *PaperEditedEvent {
	return &PaperEditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaperEdited, AggregateTypePaper, p.Key, p.Timestamp),
		Price:           p.Price,
		Version:         p.PaperVersion,
		Listed:          p.Listed,
	}
}

// ListingChangedEvent is raised when the listing flag flips by an edit or an approval
type ListingChangedEvent struct {
	shared.BaseDomainEvent
	Listed bool `json:"listed"`
}

// NewListingChangedEvent creates a new ListingChangedEvent
func NewListingChangedEvent(p *Paper) *ListingChangedEvent {
	return &ListingChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingChanged, AggregateTypePaper, p.Key, p.Timestamp),
		Listed:          p.Listed,
	}
}

// PaperDelistedEvent is raised when the rejection ratio delists a paper
type PaperDelistedEvent struct {
	shared.BaseDomainEvent
	RejectionRatio uint64 `json:"rejection_ratio"`
}

// NewPaperDelistedEvent creates a new PaperDelistedEvent
func NewPaperDelistedEvent(p *Paper) *PaperDelistedEvent {
	return &PaperDelistedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaperDelisted, AggregateTypePaper, p.Key, p.Timestamp),
		RejectionRatio:  p.ReviewStatus.RejectionRatio(),
	}
}

// PaperSoldEvent is raised when a purchase settles
type PaperSoldEvent struct {
	shared.BaseDomainEvent
	Sales uint32 `json:"sales"`
}

// NewPaperSoldEvent creates a new PaperSoldEvent
func NewPaperSoldEvent(p *Paper) *PaperSoldEvent {
	return &PaperSoldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaperSold, AggregateTypePaper, p.Key, p.UpdatedAt),
		Sales:           p.Sales,
	}
}
