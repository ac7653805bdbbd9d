package shared

import (
	"time"
)

// Entity is the base interface for all ledger records
type Entity interface {
	GetKey() string
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all ledger records.
// Key is derived from the record's natural identity (see DeriveKey), so two
// records describing the same identity always collide on the same key.
type BaseEntity struct {
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetKey returns the record key
func (e *BaseEntity) GetKey() string {
	return e.Key
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch sets the update timestamp
func (e *BaseEntity) Touch(at time.Time) {
	e.UpdatedAt = at
}

// NewBaseEntity creates a new base entity for the given key
func NewBaseEntity(key string, now time.Time) BaseEntity {
	return BaseEntity{
		Key:       key,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
