package purchase_test

import (
	"context"
	"testing"

	"github.com/paperfi/backend/internal/application/apptest"
	"github.com/paperfi/backend/internal/application/ledger"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/paper"
	domainpurchase "github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuy_ChargesPriceAndPercentFee(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "admin", "alice", "bob")
	l.Bootstrap(t, "admin")
	l.PublishListed(t, "alice", 1, 1_000_000)
	l.Fund(t, "bob", 2_000_000)

	pub := &apptest.RecordingPublisher{}
	l.Purchases.SetEventPublisher(pub)

	res, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), res.Price)
	assert.Equal(t, uint64(20_000), res.Fee)
	assert.Equal(t, uint64(1_020_000), res.Outlay)
	assert.Equal(t, uint32(1), res.Sales)
	assert.Contains(t, pub.Types(), domainpurchase.EventTypePaperPurchased)

	buyer, err := l.Accounts.GetAccount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000-1_020_000), buyer.WalletBalance)
	assert.Equal(t, uint32(1), buyer.Purchases)

	owner, err := l.Accounts.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), owner.VaultBalance)

	platform, err := l.Platform.GetPlatform(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000), platform.VaultBalance)
}

func TestBuy_ZeroPriceMovesNoFunds(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "alice", "bob")
	l.PublishListed(t, "alice", 7, 0)

	res, err := l.Purchases.Buy(ctx, "bob", "alice", 7)
	require.NoError(t, err)
	assert.Zero(t, res.Outlay)

	p, err := l.Papers.GetPaper(ctx, "alice", 7)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Sales)

	buyer, err := l.Accounts.GetAccount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), buyer.Purchases)
	assert.Zero(t, buyer.WalletBalance)

	owner, err := l.Accounts.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, owner.VaultBalance)
}

func TestBuy_SecondPurchaseIsRejected(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "alice", "bob")
	l.PublishListed(t, "alice", 1, 0)

	_, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	require.NoError(t, err)

	_, err = l.Purchases.Buy(ctx, "bob", "alice", 1)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	p, err := l.Papers.GetPaper(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Sales)
}

func TestBuy_Rejections(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "admin", "alice", "bob")
	l.Bootstrap(t, "admin")
	l.PublishListed(t, "alice", 1, 1_000_000)

	t.Run("owner cannot buy", func(t *testing.T) {
		_, err := l.Purchases.Buy(ctx, "alice", "alice", 1)
		assert.ErrorIs(t, err, domainpurchase.ErrPublisherCantBuy)
	})

	t.Run("unknown paper", func(t *testing.T) {
		_, err := l.Purchases.Buy(ctx, "bob", "alice", 99)
		assert.ErrorIs(t, err, paper.ErrPaperNotFound)
	})

	t.Run("insufficient balance rolls everything back", func(t *testing.T) {
		l.Fund(t, "bob", 500_000)
		_, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)

		p, err := l.Papers.GetPaper(ctx, "alice", 1)
		require.NoError(t, err)
		assert.Zero(t, p.Sales)

		buyer, err := l.Accounts.GetAccount(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, uint64(500_000), buyer.WalletBalance)
		assert.Zero(t, buyer.Purchases)
	})
}

func TestBuy_FeeShortfallRevertsPriceTransfer(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "admin", "alice", "bob")
	l.Bootstrap(t, "admin")
	l.PublishListed(t, "alice", 1, 1_000_000)
	// covers the price but not the 20_000 fee
	l.Fund(t, "bob", 1_010_000)

	_, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	require.ErrorIs(t, err, shared.ErrInsufficientBalance)

	buyer, err := l.Accounts.GetAccount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_010_000), buyer.WalletBalance)
	assert.Zero(t, buyer.Purchases)

	owner, err := l.Accounts.GetAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, owner.VaultBalance)

	p, err := l.Papers.GetPaper(ctx, "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, p.Sales)

	err = l.Scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		_, found, err := repos.Purchases().Get(ctx, shared.PurchaseKey("bob", shared.PaperKey("alice", 1)))
		require.NoError(t, err)
		assert.False(t, found)
		return nil
	})
	require.NoError(t, err)

	l.Fund(t, "bob", 10_000)
	res, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_020_000), res.Outlay)
	assert.Equal(t, uint32(1), res.Sales)
}

func TestBuy_CoAuthorPaysNothing(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "alice", "carol")
	l.PublishListed(t, "alice", 1, 2_000_000)

	_, err := l.Papers.AddAuthor(ctx, "alice", "alice", 1, "carol")
	require.NoError(t, err)

	res, err := l.Purchases.Buy(ctx, "carol", "alice", 1)
	require.NoError(t, err)
	assert.Zero(t, res.Price)
	assert.Zero(t, res.Fee)
}

func TestBuy_PaidPaperNeedsPlatform(t *testing.T) {
	l := apptest.New(t)
	ctx := context.Background()
	l.Signup(t, "alice", "bob")
	l.PublishListed(t, "alice", 1, 1_000_000)
	l.Fund(t, "bob", 2_000_000)

	_, err := l.Purchases.Buy(ctx, "bob", "alice", 1)
	assert.ErrorIs(t, err, identity.ErrPlatformNotReady)
}
