package achievement_test

import (
	"context"
	"testing"

	"github.com/paperfi/backend/internal/application/achievement"
	"github.com/paperfi/backend/internal/application/apptest"
	domain "github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/identity"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *apptest.Ledger {
	t.Helper()
	l := apptest.New(t)
	l.Signup(t, "root", "alice")
	l.Bootstrap(t, "root")
	_, err := l.Badges.CreateCollection(context.Background(), "root", "Authors", "ipfs://authors")
	require.NoError(t, err)
	return l
}

func TestCreateCollection(t *testing.T) {
	l := setup(t)
	ctx := context.Background()

	_, err := l.Badges.CreateCollection(ctx, "alice", "Reviewers", "ipfs://reviewers")
	assert.ErrorIs(t, err, identity.ErrNotAdmin)

	_, err = l.Badges.CreateCollection(ctx, "root", "Authors", "ipfs://again")
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	c, err := l.Badges.CreateCollection(ctx, "root", "Reviewers", "ipfs://reviewers")
	require.NoError(t, err)
	assert.Equal(t, "Reviewers", c.Name)
	assert.Equal(t, "root", c.CreatedBy)
}

func TestMint_RequiresReachedRecord(t *testing.T) {
	l := setup(t)
	ctx := context.Background()
	l.PublishListed(t, "alice", 1, 0)
	l.PublishListed(t, "alice", 2, 0)

	req := achievement.MintRequest{
		Collection:  "Authors",
		Name:        "Prolific",
		URI:         "ipfs://badge",
		Achievement: "papers",
		Record:      3,
	}
	_, err := l.Badges.Mint(ctx, "alice", req)
	assert.ErrorIs(t, err, domain.ErrInvalidAchievement)

	badges, err := l.Badges.ListBadges(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, badges)

	pub := &apptest.RecordingPublisher{}
	l.Badges.SetEventPublisher(pub)
	req.Record = 2
	badge, err := l.Badges.Mint(ctx, "alice", req)
	require.NoError(t, err)
	assert.Equal(t, "alice", badge.Owner)
	assert.Equal(t, []domain.Attribute{
		{Trait: "achievement", Value: "papers"},
		{Trait: "record", Value: "2"},
		{Trait: "timestamp", Value: "1714564800"},
	}, badge.Attributes)
	assert.Equal(t, []string{domain.EventTypeBadgeMinted}, pub.Types())

	badges, err = l.Badges.ListBadges(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, badges, 1)
	assert.Equal(t, badge.AssetID, badges[0].AssetID)
}

func TestMint_Rejections(t *testing.T) {
	l := setup(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		caller  shared.Identity
		req     achievement.MintRequest
		wantErr error
	}{
		{
			name:    "unknown badge",
			caller:  "alice",
			req:     achievement.MintRequest{Collection: "Authors", Name: "X", URI: "ipfs://x", Achievement: "citations"},
			wantErr: domain.ErrUnknownBadge,
		},
		{
			name:    "unknown collection",
			caller:  "alice",
			req:     achievement.MintRequest{Collection: "Nope", Name: "X", URI: "ipfs://x", Achievement: "papers"},
			wantErr: domain.ErrCollectionNotFound,
		},
		{
			name:    "unknown account",
			caller:  "nobody",
			req:     achievement.MintRequest{Collection: "Authors", Name: "X", URI: "ipfs://x", Achievement: "papers"},
			wantErr: identity.ErrUserNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Badges.Mint(ctx, tt.caller, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
