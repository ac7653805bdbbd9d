package models

import (
	"time"

	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
)

// UserAccountModel is the persistence model for identity.UserAccount
type UserAccountModel struct {
	AggregateModel
	Identity  string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(64);not null"`
	Title     string    `gorm:"type:varchar(32);not null"`
	Papers    uint32    `gorm:"not null;default:0"`
	Reviews   uint32    `gorm:"not null;default:0"`
	Purchases uint32    `gorm:"not null;default:0"`
	Timestamp time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserAccountModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain UserAccount
func (m *UserAccountModel) ToDomain() *identity.UserAccount {
	return &identity.UserAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Identity:          shared.Identity(m.Identity),
		Name:              m.Name,
		Title:             m.Title,
		Papers:            m.Papers,
		Reviews:           m.Reviews,
		Purchases:         m.Purchases,
		Timestamp:         m.Timestamp,
	}
}

// UserAccountModelFromDomain creates the model of u
func UserAccountModelFromDomain(u *identity.UserAccount) *UserAccountModel {
	m := &UserAccountModel{
		Identity:  u.Identity.String(),
		Name:      u.Name,
		Title:     u.Title,
		Papers:    u.Papers,
		Reviews:   u.Reviews,
		Purchases: u.Purchases,
		Timestamp: u.Timestamp,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// PlatformConfigModel is the persistence model of the platform singleton
type PlatformConfigModel struct {
	AggregateModel
	FeePercent uint8    `gorm:"not null"`
	Admins     []string `gorm:"type:text;not null;serializer:json"`
}

// TableName returns the table name for GORM
func (PlatformConfigModel) TableName() string {
	return "platform_configs"
}

// ToDomain converts the model to a domain PlatformConfig
func (m *PlatformConfigModel) ToDomain() *identity.PlatformConfig {
	admins := make([]shared.Identity, 0, len(m.Admins))
	for _, a := range m.Admins {
		admins = append(admins, shared.Identity(a))
	}
	return &identity.PlatformConfig{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FeePercent:        m.FeePercent,
		Admins:            admins,
	}
}

// PlatformConfigModelFromDomain creates the model of c
func PlatformConfigModelFromDomain(c *identity.PlatformConfig) *PlatformConfigModel {
	admins := make([]string, 0, len(c.Admins))
	for _, a := range c.Admins {
		admins = append(admins, a.String())
	}
	m := &PlatformConfigModel{FeePercent: c.FeePercent, Admins: admins}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}
