package persistence

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Get finds a review by its ledger key
func (r *GormReviewRepository) Get(ctx context.Context, key string) (*review.Review, bool, error) {
	var model models.ReviewModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// Create inserts a new review
func (r *GormReviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := models.ReviewModelFromDomain(rv)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, review.ErrReviewExists)
}

// Save updates the verdict of a review
func (r *GormReviewRepository) Save(ctx context.Context, rv *review.Review) error {
	result := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("record_key = ?", rv.Key).
		Updates(map[string]any{
			"verdict":    rv.Verdict.String(),
			"timestamp":  rv.Timestamp,
			"updated_at": rv.UpdatedAt,
		})
	return checkUpdated(result, "review")
}

// GormPurchaseRepository implements purchase.Repository using GORM.
// Purchase records are insert-only.
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Get finds a purchase record by its ledger key
func (r *GormPurchaseRepository) Get(ctx context.Context, key string) (*purchase.Record, bool, error) {
	var model models.PurchaseModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	rec, err := model.ToDomain()
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode purchase %s: %w", key, err)
	}
	return rec, true, nil
}

// Create inserts a purchase record
func (r *GormPurchaseRepository) Create(ctx context.Context, rec *purchase.Record) error {
	model := models.PurchaseModelFromDomain(rec)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, purchase.ErrAlreadyPurchased)
}

var (
	_ review.Repository   = (*GormReviewRepository)(nil)
	_ purchase.Repository = (*GormPurchaseRepository)(nil)
)
