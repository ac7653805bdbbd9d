package models

import (
	"fmt"
	"math"
	"time"

	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BaseModel provides the persistence fields shared by every ledger record.
// Key is the derived record key and the table's primary key.
type BaseModel struct {
	Key       string    `gorm:"column:record_key;type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		Key:       m.Key,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.Key = e.Key
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// AggregateModel extends BaseModel with the version used for optimistic locking
type AggregateModel struct {
	BaseModel
	Version int `gorm:"not null;default:1"`
}

// FromDomainAggregateRoot populates AggregateModel from domain BaseAggregateRoot
func (m *AggregateModel) FromDomainAggregateRoot(a shared.BaseAggregateRoot) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Version = a.Version
}

// ToDomainAggregateRoot builds the domain BaseAggregateRoot without pending events
func (m *AggregateModel) ToDomainAggregateRoot() shared.BaseAggregateRoot {
	return shared.BaseAggregateRoot{
		BaseEntity: m.BaseModel.ToDomain(),
		Version:    m.Version,
	}
}

var maxUnits = decimal.NewFromUint64(math.MaxUint64)

// Units converts an amount in smallest units to its column value
func Units(u uint64) decimal.Decimal {
	return decimal.NewFromUint64(u)
}

// FromUnits converts a numeric(20,0) column back to smallest units
func FromUnits(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() || !d.IsInteger() || d.GreaterThan(maxUnits) {
		return 0, fmt.Errorf("amount %s out of range", d.String())
	}
	return d.BigInt().Uint64(), nil
}
