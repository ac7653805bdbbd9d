package identity

import (
	"context"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/validation"
)

var (
	ErrUserNotFound      = shared.NewDomainError("USER_NOT_FOUND", "User account not found")
	ErrUserExists        = shared.NewDomainError("ALREADY_EXISTS", "User account already exists")
	ErrCounterOverflowed = shared.NewDomainError("MATH_OVERFLOW", "Account counter overflowed")
)

// UserAccount is a participant of the marketplace with activity counters
type UserAccount struct {
	shared.BaseAggregateRoot
	Identity  shared.Identity
	Name      string
	Title     string
	Papers    uint32
	Reviews   uint32
	Purchases uint32
	Timestamp time.Time
}

// NewUserAccount creates an account with zeroed counters
func NewUserAccount(id shared.Identity, name, title string, now time.Time) (*UserAccount, error) {
	if id.IsZero() {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Identity cannot be empty")
	}
	if err := validation.CheckField(name, validation.MaxNameLength); err != nil {
		return nil, err
	}
	if err := validation.CheckField(title, validation.MaxTitleLength); err != nil {
		return nil, err
	}
	u := &UserAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.UserKey(id), now),
		Identity:          id,
		Name:              name,
		Title:             title,
		Timestamp:         now,
	}
	u.AddDomainEvent(NewUserSignedUpEvent(u))
	return u, nil
}

// Edit applies the present fields; nothing changes on error
func (u *UserAccount) Edit(name, title *string, now time.Time) error {
	n, t := u.Name, u.Title
	if err := validation.UpdateOptionalText(&n, name, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.UpdateOptionalText(&t, title, validation.MaxTitleLength); err != nil {
		return err
	}
	if err := validation.CheckSymbols(n, t); err != nil {
		return err
	}
	u.Name, u.Title = n, t
	u.Timestamp = now
	u.Touch(now)
	return nil
}

// RecordPaper counts a published paper
func (u *UserAccount) RecordPaper(now time.Time) error {
	return u.bump(&u.Papers, now)
}

// RecordReview counts a submitted review
func (u *UserAccount) RecordReview(now time.Time) error {
	return u.bump(&u.Reviews, now)
}

// RecordPurchase counts a purchase
func (u *UserAccount) RecordPurchase(now time.Time) error {
	return u.bump(&u.Purchases, now)
}

func (u *UserAccount) bump(counter *uint32, now time.Time) error {
	if *counter == ^uint32(0) {
		return ErrCounterOverflowed
	}
	*counter++
	u.Timestamp = now
	u.Touch(now)
	return nil
}

// UserSignedUpEvent is raised when an account is created
type UserSignedUpEvent struct {
	shared.BaseDomainEvent
	Identity shared.Identity `json:"identity"`
	Name     string          `json:"name"`
}

// NewUserSignedUpEvent creates a new UserSignedUpEvent
func NewUserSignedUpEvent(u *UserAccount) *UserSignedUpEvent {
	return &UserSignedUpEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("UserSignedUp", "UserAccount", u.Key, u.Timestamp),
		Identity:        u.Identity,
		Name:            u.Name,
	}
}

// UserAccountRepository defines the interface for account persistence
type UserAccountRepository interface {
	// Get finds an account by its ledger key
	Get(ctx context.Context, key string) (*UserAccount, bool, error)

	// Create inserts a new account. A key collision returns ALREADY_EXISTS.
	Create(ctx context.Context, u *UserAccount) error

	// Save updates an account with optimistic locking
	Save(ctx context.Context, u *UserAccount) error
}
