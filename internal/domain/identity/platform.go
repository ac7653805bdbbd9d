package identity

import (
	"context"
	"slices"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
)

// MaxAdmins caps the platform administrator list
const MaxAdmins = 3

// MaxFeePercent is the largest configurable platform fee
const MaxFeePercent uint8 = 100

var (
	ErrTooManyAdmins      = shared.NewDomainError("TOO_MANY_ADMINS", "The platform already has the maximum number of admins")
	ErrAdminAlreadyExists = shared.NewDomainError("ADMIN_ALREADY_EXISTS", "Identity is already an admin")
	ErrNotAdmin           = shared.NewDomainError("UNAUTHORIZED", "Only platform admins may do this")
	ErrNotSelfBootstrap   = shared.NewDomainError("UNAUTHORIZED", "The first admin must bootstrap the platform themselves")
	ErrInvalidFee         = shared.NewDomainError("INVALID_FEE", "Fee percent must be between 0 and 100")
	ErrPlatformNotReady   = shared.NewDomainError("PLATFORM_NOT_FOUND", "Platform has not been bootstrapped")
)

// PlatformConfig is the singleton holding the fee and the admin list.
// Admins are only ever appended.
type PlatformConfig struct {
	shared.BaseAggregateRoot
	FeePercent uint8
	Admins     []shared.Identity
}

// NewPlatformConfig creates the configuration with first as the only admin
func NewPlatformConfig(first shared.Identity, feePercent uint8, now time.Time) (*PlatformConfig, error) {
	if feePercent > MaxFeePercent {
		return nil, ErrInvalidFee
	}
	if first.IsZero() {
		return nil, shared.NewDomainError("INVALID_IDENTITY", "Identity cannot be empty")
	}
	c := &PlatformConfig{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(shared.PlatformConfigKey(), now),
		FeePercent:        feePercent,
		Admins:            []shared.Identity{first},
	}
	c.AddDomainEvent(NewAdminAddedEvent(c, first, now))
	return c, nil
}

// IsAdmin reports whether id is a platform admin
func (c *PlatformConfig) IsAdmin(id shared.Identity) bool {
	return slices.Contains(c.Admins, id)
}

// RequireAdmin returns UNAUTHORIZED unless id is an admin
func (c *PlatformConfig) RequireAdmin(id shared.Identity) error {
	if !c.IsAdmin(id) {
		return ErrNotAdmin
	}
	return nil
}

// AddAdmin appends admin on behalf of caller
func (c *PlatformConfig) AddAdmin(caller, admin shared.Identity, now time.Time) error {
	if err := c.RequireAdmin(caller); err != nil {
		return err
	}
	if len(c.Admins) >= MaxAdmins {
		return ErrTooManyAdmins
	}
	if c.IsAdmin(admin) {
		return ErrAdminAlreadyExists
	}
	c.Admins = append(c.Admins, admin)
	c.Touch(now)
	c.AddDomainEvent(NewAdminAddedEvent(c, admin, now))
	return nil
}

// SetFee changes the platform fee on behalf of caller
func (c *PlatformConfig) SetFee(caller shared.Identity, percent uint8, now time.Time) error {
	if err := c.RequireAdmin(caller); err != nil {
		return err
	}
	if percent > MaxFeePercent {
		return ErrInvalidFee
	}
	c.FeePercent = percent
	c.Touch(now)
	return nil
}

// AdminAddedEvent is raised when an admin joins the platform
type AdminAddedEvent struct {
	shared.BaseDomainEvent
	Admin shared.Identity `json:"admin"`
}

// NewAdminAddedEvent creates a new AdminAddedEvent
func NewAdminAddedEvent(c *PlatformConfig, admin shared.Identity, at time.Time) *AdminAddedEvent {
	return &AdminAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("AdminAdded", "PlatformConfig", c.Key, at),
		Admin:           admin,
	}
}

// PlatformConfigRepository defines the interface for the singleton's persistence
type PlatformConfigRepository interface {
	// Get returns the configuration if the platform was bootstrapped
	Get(ctx context.Context) (*PlatformConfig, bool, error)

	// Create inserts the configuration. A second insert returns ALREADY_EXISTS.
	Create(ctx context.Context, c *PlatformConfig) error

	// Save updates the configuration with optimistic locking
	Save(ctx context.Context, c *PlatformConfig) error
}
