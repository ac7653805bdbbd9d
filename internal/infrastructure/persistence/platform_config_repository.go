package persistence

import (
	"context"

	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var errPlatformExists = shared.NewDomainError(shared.ErrAlreadyExists.Code, "Platform is already bootstrapped")

// GormPlatformConfigRepository implements identity.PlatformConfigRepository using GORM
type GormPlatformConfigRepository struct {
	db *gorm.DB
}

// NewGormPlatformConfigRepository creates a new GormPlatformConfigRepository
func NewGormPlatformConfigRepository(db *gorm.DB) *GormPlatformConfigRepository {
	return &GormPlatformConfigRepository{db: db}
}

// Get returns the singleton configuration if it exists
func (r *GormPlatformConfigRepository) Get(ctx context.Context) (*identity.PlatformConfig, bool, error) {
	var model models.PlatformConfigModel
	found, err := first(r.db.WithContext(ctx), &model, shared.PlatformConfigKey())
	if err != nil || !found {
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// Create inserts the singleton. Its fixed key makes a second insert fail.
func (r *GormPlatformConfigRepository) Create(ctx context.Context, c *identity.PlatformConfig) error {
	model := models.PlatformConfigModelFromDomain(c)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, errPlatformExists)
}

// Save updates the fee and admin list with optimistic locking
func (r *GormPlatformConfigRepository) Save(ctx context.Context, c *identity.PlatformConfig) error {
	model := models.PlatformConfigModelFromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&models.PlatformConfigModel{}).
		Where("record_key = ? AND version = ?", c.Key, c.Version).
		Select("fee_percent", "admins", "updated_at", "version").
		Updates(&models.PlatformConfigModel{
			AggregateModel: models.AggregateModel{
				BaseModel: models.BaseModel{UpdatedAt: model.UpdatedAt},
				Version:   c.Version + 1,
			},
			FeePercent: model.FeePercent,
			Admins:     model.Admins,
		})
	if err := checkVersioned(result, "platform config"); err != nil {
		return err
	}
	c.IncrementVersion()
	return nil
}

var _ identity.PlatformConfigRepository = (*GormPlatformConfigRepository)(nil)
