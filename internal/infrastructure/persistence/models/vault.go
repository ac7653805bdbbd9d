package models

import (
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VaultModel is the persistence model for finance.VaultAccount
type VaultModel struct {
	AggregateModel
	Kind    string          `gorm:"type:varchar(20);not null;uniqueIndex:idx_vaults_kind_owner"`
	Owner   string          `gorm:"type:varchar(128);not null;uniqueIndex:idx_vaults_kind_owner"`
	Balance decimal.Decimal `gorm:"type:numeric(20,0);not null"`
}

// TableName returns the table name for GORM
func (VaultModel) TableName() string {
	return "vaults"
}

// ToDomain converts the model to a domain VaultAccount
func (m *VaultModel) ToDomain() (*finance.VaultAccount, error) {
	balance, err := FromUnits(m.Balance)
	if err != nil {
		return nil, err
	}
	return &finance.VaultAccount{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Kind:              finance.VaultKind(m.Kind),
		Owner:             shared.Identity(m.Owner),
		Balance:           balance,
	}, nil
}

// VaultModelFromDomain creates the model of v
func VaultModelFromDomain(v *finance.VaultAccount) *VaultModel {
	m := &VaultModel{
		Kind:    v.Kind.String(),
		Owner:   v.Owner.String(),
		Balance: Units(v.Balance),
	}
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	return m
}
