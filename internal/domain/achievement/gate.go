// Package achievement decides which badges an account has earned.
package achievement

import (
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
)

var (
	ErrUnknownBadge       = shared.NewDomainError("UNKNOWN_BADGE", "Unknown achievement name")
	ErrInvalidAchievement = shared.NewDomainError("INVALID_ACHIEVEMENT", "Achievement threshold not reached")
)

// Kind is one of the counted activities a badge can reward
type Kind int

const (
	PapersPublished Kind = iota + 1
	ReviewsSubmitted
	PurchasesMade
)

// ParseKind maps a badge name to its kind
func ParseKind(name string) (Kind, error) {
	switch name {
	case "papers":
		return PapersPublished, nil
	case "reviews":
		return ReviewsSubmitted, nil
	case "purchases":
		return PurchasesMade, nil
	}
	return 0, ErrUnknownBadge
}

// String returns the badge name of the kind
func (k Kind) String() string {
	switch k {
	case PapersPublished:
		return "papers"
	case ReviewsSubmitted:
		return "reviews"
	case PurchasesMade:
		return "purchases"
	}
	return "unknown"
}

// Count returns the account counter the kind is measured by
func (k Kind) Count(account *identity.UserAccount) uint32 {
	switch k {
	case PapersPublished:
		return account.Papers
	case ReviewsSubmitted:
		return account.Reviews
	case PurchasesMade:
		return account.Purchases
	}
	return 0
}

// Check reports whether account has reached required for the named badge
func Check(name string, required uint32, account *identity.UserAccount) error {
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}
	if kind.Count(account) < required {
		return ErrInvalidAchievement
	}
	return nil
}
