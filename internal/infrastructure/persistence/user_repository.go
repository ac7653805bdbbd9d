package persistence

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUserAccountRepository implements identity.UserAccountRepository using GORM
type GormUserAccountRepository struct {
	db *gorm.DB
}

// NewGormUserAccountRepository creates a new GormUserAccountRepository
func NewGormUserAccountRepository(db *gorm.DB) *GormUserAccountRepository {
	return &GormUserAccountRepository{db: db}
}

// Get finds an account by its ledger key
func (r *GormUserAccountRepository) Get(ctx context.Context, key string) (*identity.UserAccount, bool, error) {
	var model models.UserAccountModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	return model.ToDomain(), true, nil
}

// Create inserts a new account
func (r *GormUserAccountRepository) Create(ctx context.Context, u *identity.UserAccount) error {
	model := models.UserAccountModelFromDomain(u)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, identity.ErrUserExists)
}

// Save updates the mutable fields of an account with optimistic locking
func (r *GormUserAccountRepository) Save(ctx context.Context, u *identity.UserAccount) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserAccountModel{}).
		Where("record_key = ? AND version = ?", u.Key, u.Version).
		Updates(map[string]any{
			"name":       u.Name,
			"title":      u.Title,
			"papers":     u.Papers,
			"reviews":    u.Reviews,
			"purchases":  u.Purchases,
			"timestamp":  u.Timestamp,
			"updated_at": u.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if err := checkVersioned(result, fmt.Sprintf("account %s", u.Identity)); err != nil {
		return err
	}
	u.IncrementVersion()
	return nil
}

var _ identity.UserAccountRepository = (*GormUserAccountRepository)(nil)
