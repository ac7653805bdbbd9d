package persistence

import (
	"context"

	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCollectionRepository implements achievement.CollectionRepository using GORM
type GormCollectionRepository struct {
	db *gorm.DB
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{db: db}
}

// Get finds a collection by its ledger key
func (r *GormCollectionRepository) Get(ctx context.Context, key string) (*achievement.Collection, bool, error) {
	var model models.BadgeCollectionModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// Create inserts a new collection
func (r *GormCollectionRepository) Create(ctx context.Context, c *achievement.Collection) error {
	model := models.BadgeCollectionModelFromDomain(c)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, achievement.ErrCollectionExists)
}

// GormBadgeRepository implements achievement.BadgeRepository using GORM
type GormBadgeRepository struct {
	db *gorm.DB
}

// NewGormBadgeRepository creates a new GormBadgeRepository
func NewGormBadgeRepository(db *gorm.DB) *GormBadgeRepository {
	return &GormBadgeRepository{db: db}
}

// Create records a minted badge
func (r *GormBadgeRepository) Create(ctx context.Context, b *achievement.Badge) error {
	return r.db.WithContext(ctx).Create(models.BadgeModelFromDomain(b)).Error
}

// ListByOwner returns the badges of owner, newest first
func (r *GormBadgeRepository) ListByOwner(ctx context.Context, owner shared.Identity) ([]achievement.Badge, error) {
	var rows []models.BadgeModel
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner.String()).
		Order("minted_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	badges := make([]achievement.Badge, 0, len(rows))
	for i := range rows {
		badges = append(badges, *rows[i].ToDomain())
	}
	return badges, nil
}

var (
	_ achievement.CollectionRepository = (*GormCollectionRepository)(nil)
	_ achievement.BadgeRepository      = (*GormBadgeRepository)(nil)
)
