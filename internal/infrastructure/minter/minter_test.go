package minter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/paperfi/backend/internal/application/ledger"
	domain "github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/persistence"
	"github.com/paperfi/backend/internal/infrastructure/persistence/persistencetest"
	"github.com/paperfi/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type failingMinter struct{ err error }

func (m failingMinter) Mint(context.Context, *domain.Badge) error { return m.err }

func newBadge(t *testing.T) (*domain.Collection, *domain.Badge) {
	t.Helper()
	c, err := domain.NewCollection("Reviewers", "https://paperfi.io/c/reviewers", "admin", testNow)
	require.NoError(t, err)
	b, err := domain.NewBadge("alice", c, "Fifth review", "https://paperfi.io/b/5", domain.ReviewsSubmitted, 5, testNow)
	require.NoError(t, err)
	return c, b
}

func TestObjectMinter_PublishesMetadataAndRecords(t *testing.T) {
	db := persistencetest.NewSQLite(t)
	scope := persistence.NewGormTransactionScope(db.DB)
	store := storage.NewMemoryObjectStorage()
	factory := ObjectFactory(store, "badges/", zap.NewNop())
	ctx := context.Background()

	c, b := newBadge(t)
	err := scope.Execute(ctx, func(repos ledger.TransactionalRepositories) error {
		if err := repos.Collections().Create(ctx, c); err != nil {
			return err
		}
		return factory(repos).Mint(ctx, b)
	})
	require.NoError(t, err)

	obj, ok := store.Get("badges/" + b.AssetID.String() + ".json")
	require.True(t, ok)
	var meta Metadata
	require.NoError(t, json.Unmarshal(obj.Data, &meta))
	assert.Equal(t, "alice", meta.Owner)
	assert.Equal(t, c.Key, meta.Collection)
	assert.Equal(t, b.Attributes, meta.Attributes)

	badges, err := persistence.NewGormBadgeRepository(db.DB).ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, b.AssetID, badges[0].AssetID)
}

func TestObjectMinter_RemovesMetadataWhenRecordingFails(t *testing.T) {
	store := storage.NewMemoryObjectStorage()
	m := NewObjectMinter(store, "badges/", failingMinter{err: shared.ErrAlreadyExists}, zap.NewNop())
	_, b := newBadge(t)

	err := m.Mint(context.Background(), b)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, ok := store.Get(m.Key(b))
	assert.False(t, ok)
}

func TestNewFactory(t *testing.T) {
	ctx := context.Background()

	f, err := NewFactory(ctx, config.MinterConfig{Backend: "ledger"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, f)

	_, err = NewFactory(ctx, config.MinterConfig{Backend: "ipfs"}, zap.NewNop())
	assert.Error(t, err)

	_, err = NewFactory(ctx, config.MinterConfig{Backend: "s3"}, zap.NewNop())
	assert.Error(t, err, "s3 backend needs a bucket")
}

func TestLedgerMinter_PropagatesRepositoryErrors(t *testing.T) {
	_, b := newBadge(t)
	boom := errors.New("disk full")
	m := NewLedgerMinter(badgeRepoFunc(func(context.Context, *domain.Badge) error { return boom }))
	assert.ErrorIs(t, m.Mint(context.Background(), b), boom)
}

type badgeRepoFunc func(context.Context, *domain.Badge) error

func (f badgeRepoFunc) Create(ctx context.Context, b *domain.Badge) error { return f(ctx, b) }

func (f badgeRepoFunc) ListByOwner(context.Context, shared.Identity) ([]domain.Badge, error) {
	return nil, nil
}
