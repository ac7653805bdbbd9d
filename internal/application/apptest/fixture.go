// Package apptest wires every ledger service over a throwaway SQLite
// database for application tests.
package apptest

import (
	"context"
	"testing"
	"time"

	"github.com/paperfi/backend/internal/application/achievement"
	identityapp "github.com/paperfi/backend/internal/application/identity"
	"github.com/paperfi/backend/internal/application/publishing"
	"github.com/paperfi/backend/internal/application/purchase"
	"github.com/paperfi/backend/internal/application/review"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
	"github.com/paperfi/backend/internal/infrastructure/minter"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/paperfi/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Now is the fixed ledger time of every fixture
var Now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// DefaultFeePercent is the fee a bootstrapped fixture platform charges
const DefaultFeePercent uint8 = 2

// Ledger bundles the services of one isolated ledger
type Ledger struct {
	DB        *persistence.Database
	Scope     *persistence.GormTransactionScope
	Clock     shared.Clock
	Accounts  *identityapp.AccountService
	Platform  *identityapp.PlatformService
	Papers    *publishing.Service
	Reviews   *review.Service
	Purchases *purchase.Service
	Badges    *achievement.Service
}

// New returns a ledger over a fresh in-memory database
func New(t testing.TB) *Ledger {
	t.Helper()
	db := persistencetest.NewSQLite(t)
	scope := persistence.NewGormTransactionScope(db.DB)
	clock := shared.FixedClock{At: Now}
	logger := zaptest.NewLogger(t)

	return &Ledger{
		DB:        db,
		Scope:     scope,
		Clock:     clock,
		Accounts:  identityapp.NewAccountService(scope, clock, logger),
		Platform:  identityapp.NewPlatformService(scope, clock, DefaultFeePercent, logger),
		Papers:    publishing.NewService(scope, clock, logger),
		Reviews:   review.NewService(scope, clock, logger),
		Purchases: purchase.NewService(scope, clock, logger),
		Badges:    achievement.NewService(scope, clock, minter.LedgerFactory(), logger),
	}
}

// Signup creates accounts for ids
func (l *Ledger) Signup(t testing.TB, ids ...shared.Identity) {
	t.Helper()
	for _, id := range ids {
		_, err := l.Accounts.Signup(context.Background(), id, "User "+id.String(), "Dr")
		require.NoError(t, err)
	}
}

// Bootstrap creates the platform with admin as its first admin
func (l *Ledger) Bootstrap(t testing.TB, admin shared.Identity) {
	t.Helper()
	_, err := l.Platform.BootstrapAdmin(context.Background(), admin, admin)
	require.NoError(t, err)
}

// Fund credits units to id's wallet
func (l *Ledger) Fund(t testing.TB, id shared.Identity, units uint64) {
	t.Helper()
	_, err := l.Platform.Fund(context.Background(), id, valueobject.NewMoney(units))
	require.NoError(t, err)
}

// PublishListed publishes a paper and lists it
func (l *Ledger) PublishListed(t testing.TB, owner shared.Identity, id, price uint64) *publishing.PaperResponse {
	t.Helper()
	ctx := context.Background()
	_, err := l.Papers.Publish(ctx, owner, publishing.PublishRequest{
		ID:      id,
		InfoURL: "https://arxiv.org/abs/2401.00001",
		Price:   price,
		URI:     "ipfs://paper",
	})
	require.NoError(t, err)
	listed := true
	p, err := l.Papers.Edit(ctx, owner, owner, id, publishing.EditRequest{Listed: &listed})
	require.NoError(t, err)
	return p
}

// BuyAndReview has buyer purchase the paper and submit verdict
func (l *Ledger) BuyAndReview(t testing.TB, buyer, owner shared.Identity, id uint64, verdict paper.Verdict) *review.ReviewResponse {
	t.Helper()
	ctx := context.Background()
	_, err := l.Purchases.Buy(ctx, buyer, owner, id)
	require.NoError(t, err)
	r, err := l.Reviews.Submit(ctx, buyer, owner, id, review.SubmitRequest{Verdict: verdict, URI: "ipfs://review"})
	require.NoError(t, err)
	return r
}
