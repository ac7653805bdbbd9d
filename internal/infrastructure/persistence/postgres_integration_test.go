//go:build integration

package persistence_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/paperfi/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_MigratedSchemaMatchesModels(t *testing.T) {
	db := persistencetest.NewPostgres(t)
	ctx := context.Background()

	users := persistence.NewGormUserAccountRepository(db.DB)
	u, err := identity.NewUserAccount("alice", "Alice", "Dr", testNow)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, u))

	dup, err := identity.NewUserAccount("alice", "Alice", "Dr", testNow)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), shared.ErrAlreadyExists)

	vaults := persistence.NewGormVaultRepository(db.DB)
	v := finance.NewVaultAccount(finance.Wallet("alice"), testNow)
	v.Balance = ^uint64(0)
	require.NoError(t, vaults.Create(ctx, v))
	got, found, err := vaults.Get(ctx, v.Key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ^uint64(0), got.Balance, "numeric(20,0) holds the full uint64 range")
}

func TestPostgres_ConcurrentDepositsNeverLoseUpdates(t *testing.T) {
	db := persistencetest.NewPostgres(t)
	scope := persistence.NewGormTransactionScope(db.DB)
	ctx := context.Background()
	clock := shared.FixedClock{At: testNow}

	require.NoError(t, scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		return repos.Vaults().Create(ctx, finance.NewVaultAccount(finance.Wallet("bob"), testNow))
	}))

	const writers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
		conflicts int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
				return ledger.Transfers(repos, clock).Deposit(ctx, finance.Wallet("bob"), valueOf(10))
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				committed++
			case errors.Is(err, shared.ErrConcurrencyConflict):
				conflicts++
			default:
				t.Errorf("unexpected deposit error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, writers, committed+conflicts)
	got, _, err := persistence.NewGormVaultRepository(db.DB).Get(ctx, finance.Wallet("bob").Key())
	require.NoError(t, err)
	assert.Equal(t, uint64(10*committed), got.Balance)
	assert.Equal(t, 1+committed, got.Version)
}
