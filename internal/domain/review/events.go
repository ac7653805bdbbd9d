package review

import (
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
)

// Event types raised by reviews
const (
	EventTypeReviewSubmitted = "ReviewSubmitted"
	EventTypeReviewEdited    = "ReviewEdited"
)

// ReviewSubmittedEvent is raised when a reviewer records a verdict
type ReviewSubmittedEvent struct {
	shared.BaseDomainEvent
	Reviewer shared.Identity `json:"reviewer"`
	PaperKey string          `json:"paper_key"`
	Verdict  paper.Verdict   `json:"verdict"`
}

// NewReviewSubmittedEvent creates a new ReviewSubmittedEvent
func NewReviewSubmittedEvent(r *Review) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewSubmitted, "Review", r.Key, r.Timestamp),
		Reviewer:        r.Reviewer,
		PaperKey:        r.PaperKey,
		Verdict:         r.Verdict,
	}
}

// ReviewEditedEvent is raised when a reviewer changes their verdict
type ReviewEditedEvent struct {
	shared.BaseDomainEvent
	PaperKey string        `json:"paper_key"`
	Previous paper.Verdict `json:"previous"`
	Verdict  paper.Verdict `json:"verdict"`
}

// NewReviewEditedEvent creates a new ReviewEditedEvent
func NewReviewEditedEvent(r *Review, previous paper.Verdict) *ReviewEditedEvent {
	return &ReviewEditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewEdited, "Review", r.Key, r.Timestamp),
		PaperKey:        r.PaperKey,
		Previous:        previous,
		Verdict:         r.Verdict,
	}
}
