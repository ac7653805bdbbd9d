package persistence

import (
	"context"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"gorm.io/gorm"
)

// GormTransactionScope implements ledger.TransactionScope using GORM transactions.
// Every repository handed to fn shares the transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn within a database transaction.
// If fn returns an error or panics, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos ledger.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories binds every ledger repository to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Users() identity.UserAccountRepository {
	return NewGormUserAccountRepository(r.tx)
}

func (r *gormTransactionalRepositories) Platform() identity.PlatformConfigRepository {
	return NewGormPlatformConfigRepository(r.tx)
}

func (r *gormTransactionalRepositories) Papers() paper.PaperRepository {
	return NewGormPaperRepository(r.tx)
}

func (r *gormTransactionalRepositories) Authors() paper.AuthorRepository {
	return NewGormAuthorRepository(r.tx)
}

func (r *gormTransactionalRepositories) Reviews() review.Repository {
	return NewGormReviewRepository(r.tx)
}

func (r *gormTransactionalRepositories) Purchases() purchase.Repository {
	return NewGormPurchaseRepository(r.tx)
}

func (r *gormTransactionalRepositories) Vaults() finance.VaultRepository {
	return NewGormVaultRepository(r.tx)
}

func (r *gormTransactionalRepositories) Collections() achievement.CollectionRepository {
	return NewGormCollectionRepository(r.tx)
}

func (r *gormTransactionalRepositories) Badges() achievement.BadgeRepository {
	return NewGormBadgeRepository(r.tx)
}

var (
	_ ledger.TransactionScope          = (*GormTransactionScope)(nil)
	_ ledger.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
