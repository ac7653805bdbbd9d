// Package ledger holds the transaction boundary every ledger operation runs in.
package ledger

import (
	"context"

	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the ledger repositories.
// Every repository operation made inside Execute is committed or rolled back
// together.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides every ledger repository bound to the
// same underlying transaction.
type TransactionalRepositories interface {
	Users() identity.UserAccountRepository
	Platform() identity.PlatformConfigRepository
	Papers() paper.PaperRepository
	Authors() paper.AuthorRepository
	Reviews() review.Repository
	Purchases() purchase.Repository
	Vaults() finance.VaultRepository
	Collections() achievement.CollectionRepository
	Badges() achievement.BadgeRepository
}

// Transfers returns a transfer service bound to the transaction of repos
func Transfers(repos TransactionalRepositories, clock shared.Clock) finance.TransferService {
	return finance.NewVaultTransferService(repos.Vaults(), clock)
}

// RequireUser loads the account of id or returns USER_NOT_FOUND
func RequireUser(ctx context.Context, repos TransactionalRepositories, id shared.Identity) (*identity.UserAccount, error) {
	u, found, err := repos.Users().Get(ctx, shared.UserKey(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, identity.ErrUserNotFound
	}
	return u, nil
}

// RequirePaper loads a paper or returns PAPER_NOT_FOUND
func RequirePaper(ctx context.Context, repos TransactionalRepositories, owner shared.Identity, id uint64) (*paper.Paper, error) {
	p, found, err := repos.Papers().Get(ctx, shared.PaperKey(owner, id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, paper.ErrPaperNotFound
	}
	return p, nil
}

// RequirePlatform loads the platform configuration
func RequirePlatform(ctx context.Context, repos TransactionalRepositories) (*identity.PlatformConfig, error) {
	c, found, err := repos.Platform().Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, identity.ErrPlatformNotReady
	}
	return c, nil
}

// HasAuthorRecord reports whether id is registered as a co-author of p
func HasAuthorRecord(ctx context.Context, repos TransactionalRepositories, id shared.Identity, p *paper.Paper) (bool, error) {
	_, found, err := repos.Authors().Get(ctx, shared.AuthorKey(id, p.Key))
	return found, err
}
