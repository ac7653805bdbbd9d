package persistence

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

var errVaultExists = shared.NewDomainError(shared.ErrAlreadyExists.Code, "Vault account already exists")

// GormVaultRepository implements finance.VaultRepository using GORM
type GormVaultRepository struct {
	db *gorm.DB
}

// NewGormVaultRepository creates a new GormVaultRepository
func NewGormVaultRepository(db *gorm.DB) *GormVaultRepository {
	return &GormVaultRepository{db: db}
}

// Get finds a vault by its ledger key
func (r *GormVaultRepository) Get(ctx context.Context, key string) (*finance.VaultAccount, bool, error) {
	var model models.VaultModel
	found, err := first(r.db.WithContext(ctx), &model, key)
	if err != nil || !found {
		return nil, false, err
	}
	v, err := model.ToDomain()
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode vault %s: %w", key, err)
	}
	return v, true, nil
}

// Create inserts a new vault
func (r *GormVaultRepository) Create(ctx context.Context, v *finance.VaultAccount) error {
	model := models.VaultModelFromDomain(v)
	return translateCreateError(r.db.WithContext(ctx).Create(model).Error, errVaultExists)
}

// Save writes the balance with optimistic locking, so two transactions
// moving funds out of the same vault cannot both apply
func (r *GormVaultRepository) Save(ctx context.Context, v *finance.VaultAccount) error {
	result := r.db.WithContext(ctx).
		Model(&models.VaultModel{}).
		Where("record_key = ? AND version = ?", v.Key, v.Version).
		Updates(map[string]any{
			"balance":    models.Units(v.Balance),
			"updated_at": v.UpdatedAt,
			"version":    gorm.Expr("version + 1"),
		})
	if err := checkVersioned(result, fmt.Sprintf("%s vault of %s", v.Kind, v.Owner)); err != nil {
		return err
	}
	v.IncrementVersion()
	return nil
}

var _ finance.VaultRepository = (*GormVaultRepository)(nil)
