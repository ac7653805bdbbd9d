package identity_test

import (
	"context"
	"testing"

	"github.com/paperfi/backend/internal/application/apptest"
	"github.com/paperfi/backend/internal/domain/finance"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapAdmin(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()

	_, err := l.Platform.GetPlatform(ctx)
	assert.ErrorIs(t, err, identity.ErrPlatformNotReady)

	t.Run("first admin must be the caller", func(t *testing.T) {
		_, err := l.Platform.BootstrapAdmin(ctx, "mallory", "victim")
		assert.ErrorIs(t, err, identity.ErrNotSelfBootstrap)

		_, err = l.Platform.GetPlatform(ctx)
		assert.ErrorIs(t, err, identity.ErrPlatformNotReady)
	})

	cfg, err := l.Platform.BootstrapAdmin(ctx, "root", "root")
	require.NoError(t, err)
	assert.Equal(t, apptest.DefaultFeePercent, cfg.FeePercent)
	assert.Equal(t, []string{"root"}, cfg.Admins)

	t.Run("non admin cannot add", func(t *testing.T) {
		_, err := l.Platform.BootstrapAdmin(ctx, "mallory", "mallory")
		assert.ErrorIs(t, err, identity.ErrNotAdmin)
	})

	t.Run("duplicate admin", func(t *testing.T) {
		_, err := l.Platform.BootstrapAdmin(ctx, "root", "root")
		assert.ErrorIs(t, err, identity.ErrAdminAlreadyExists)
	})

	t.Run("admin cap", func(t *testing.T) {
		_, err := l.Platform.BootstrapAdmin(ctx, "root", "second")
		require.NoError(t, err)
		cfg, err := l.Platform.BootstrapAdmin(ctx, "second", "third")
		require.NoError(t, err)
		assert.Equal(t, []string{"root", "second", "third"}, cfg.Admins)

		_, err = l.Platform.BootstrapAdmin(ctx, "root", "fourth")
		assert.ErrorIs(t, err, identity.ErrTooManyAdmins)
	})
}

func TestSetFee(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Bootstrap(t, "root")

	cfg, err := l.Platform.SetFee(ctx, "root", 5)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), cfg.FeePercent)

	_, err = l.Platform.SetFee(ctx, "root", 101)
	assert.ErrorIs(t, err, identity.ErrInvalidFee)

	_, err = l.Platform.SetFee(ctx, "mallory", 1)
	assert.ErrorIs(t, err, identity.ErrNotAdmin)

	got, err := l.Platform.GetPlatform(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), got.FeePercent)
}

func TestFund(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "alice")

	res, err := l.Platform.Fund(ctx, "alice", valueobject.NewMoney(300))
	require.NoError(t, err)
	assert.Equal(t, uint64(300), res.WalletBalance)

	res, err = l.Platform.Fund(ctx, "alice", valueobject.NewMoney(200))
	require.NoError(t, err)
	assert.Equal(t, uint64(500), res.WalletBalance)

	_, err = l.Platform.Fund(ctx, "alice", valueobject.Zero())
	assert.ErrorIs(t, err, finance.ErrInvalidAmount)
}

func TestWithdraw(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "root", "alice", "bob")
	l.Bootstrap(t, "root")
	l.PublishListed(t, "alice", 1, 1_000_000)
	l.Fund(t, "bob", 1_020_000)
	_, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	require.NoError(t, err)

	res, err := l.Platform.Withdraw(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), res.Amount)
	assert.Equal(t, uint64(1_000_000), res.WalletBalance)

	res, err = l.Platform.Withdraw(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, res.Amount)

	_, err = l.Platform.Withdraw(ctx, "nobody")
	assert.ErrorIs(t, err, identity.ErrUserNotFound)

	_, err = l.Platform.AdminWithdraw(ctx, "alice")
	assert.ErrorIs(t, err, identity.ErrNotAdmin)

	res, err = l.Platform.AdminWithdraw(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000), res.Amount)
	assert.Equal(t, uint64(20_000), res.WalletBalance)

	platform, err := l.Platform.GetPlatform(ctx)
	require.NoError(t, err)
	assert.Zero(t, platform.VaultBalance)

	account, err := l.Accounts.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, account.VaultBalance)
}
