package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/shared"
)

// BadgeCollectionModel is the persistence model for achievement.Collection
type BadgeCollectionModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(64);not null;uniqueIndex"`
	URI       string `gorm:"type:varchar(200);not null"`
	CreatedBy string `gorm:"type:varchar(128);not null"`
}

// TableName returns the table name for GORM
func (BadgeCollectionModel) TableName() string {
	return "badge_collections"
}

// ToDomain converts the model to a domain Collection
func (m *BadgeCollectionModel) ToDomain() *achievement.Collection {
	return &achievement.Collection{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		URI:        m.URI,
		CreatedBy:  shared.Identity(m.CreatedBy),
	}
}

// BadgeCollectionModelFromDomain creates the model of c
func BadgeCollectionModelFromDomain(c *achievement.Collection) *BadgeCollectionModel {
	m := &BadgeCollectionModel{Name: c.Name, URI: c.URI, CreatedBy: c.CreatedBy.String()}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// BadgeModel is a badge minted by the ledger minter
type BadgeModel struct {
	AssetID       uuid.UUID               `gorm:"type:uuid;primaryKey"`
	Owner         string                  `gorm:"type:varchar(128);not null;index"`
	CollectionKey string                  `gorm:"type:varchar(64);not null;index"`
	Name          string                  `gorm:"type:varchar(64);not null"`
	URI           string                  `gorm:"type:varchar(200);not null"`
	Attributes    []achievement.Attribute `gorm:"type:text;not null;serializer:json"`
	MintedAt      time.Time               `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BadgeModel) TableName() string {
	return "badges"
}

// ToDomain converts the model to a domain Badge
func (m *BadgeModel) ToDomain() *achievement.Badge {
	return &achievement.Badge{
		AssetID:       m.AssetID,
		Owner:         shared.Identity(m.Owner),
		CollectionKey: m.CollectionKey,
		Name:          m.Name,
		URI:           m.URI,
		Attributes:    m.Attributes,
		MintedAt:      m.MintedAt,
	}
}

// BadgeModelFromDomain creates the model of b
func BadgeModelFromDomain(b *achievement.Badge) *BadgeModel {
	return &BadgeModel{
		AssetID:       b.AssetID,
		Owner:         b.Owner.String(),
		CollectionKey: b.CollectionKey,
		Name:          b.Name,
		URI:           b.URI,
		Attributes:    b.Attributes,
		MintedAt:      b.MintedAt,
	}
}

// LedgerModels lists every model of the ledger schema, in creation order
func LedgerModels() []any {
	return []any{
		&UserAccountModel{},
		&PlatformConfigModel{},
		&PaperModel{},
		&AuthorModel{},
		&ReviewModel{},
		&PurchaseModel{},
		&VaultModel{},
		&BadgeCollectionModel{},
		&BadgeModel{},
	}
}
