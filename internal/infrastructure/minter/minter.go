// Package minter issues achievement badges, either as ledger rows only or as
// ledger rows backed by a metadata document in object storage.
package minter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paperfi/backend/internal/application/achievement"
	"github.com/paperfi/backend/internal/application/ledger"
	domain "github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// LedgerMinter records the badge in the ledger's badge table
type LedgerMinter struct {
	badges domain.BadgeRepository
}

// NewLedgerMinter creates a minter writing to badges
func NewLedgerMinter(badges domain.BadgeRepository) *LedgerMinter {
	return &LedgerMinter{badges: badges}
}

// Mint inserts the badge
func (m *LedgerMinter) Mint(ctx context.Context, badge *domain.Badge) error {
	return m.badges.Create(ctx, badge)
}

// Metadata is the document published for a minted badge
type Metadata struct {
	AssetID    string             `json:"asset_id"`
	Name       string             `json:"name"`
	URI        string             `json:"uri"`
	Owner      string             `json:"owner"`
	Collection string             `json:"collection"`
	Attributes []domain.Attribute `json:"attributes"`
	MintedAt   time.Time          `json:"minted_at"`
}

// ObjectMinter uploads the badge metadata and then records the badge through
// next. The document is removed again when recording fails.
type ObjectMinter struct {
	store  storage.ObjectStore
	prefix string
	next   domain.AssetMinter
	logger *zap.Logger
}

// NewObjectMinter creates a minter that publishes metadata under prefix
func NewObjectMinter(store storage.ObjectStore, prefix string, next domain.AssetMinter, logger *zap.Logger) *ObjectMinter {
	return &ObjectMinter{store: store, prefix: prefix, next: next, logger: logger}
}

// Key returns the object key of a badge's metadata
func (m *ObjectMinter) Key(badge *domain.Badge) string {
	return m.prefix + badge.AssetID.String() + ".json"
}

// Mint publishes the metadata document and records the badge
func (m *ObjectMinter) Mint(ctx context.Context, badge *domain.Badge) error {
	doc, err := json.Marshal(Metadata{
		AssetID:    badge.AssetID.String(),
		Name:       badge.Name,
		URI:        badge.URI,
		Owner:      badge.Owner.String(),
		Collection: badge.CollectionKey,
		Attributes: badge.Attributes,
		MintedAt:   badge.MintedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode badge metadata: %w", err)
	}

	key := m.Key(badge)
	if err := m.store.Upload(ctx, key, doc, "application/json"); err != nil {
		return err
	}
	if err := m.next.Mint(ctx, badge); err != nil {
		if delErr := m.store.DeleteObject(ctx, key); delErr != nil {
			m.logger.Warn("Failed to remove orphaned badge metadata",
				zap.String("key", key),
				zap.Error(delErr))
		}
		return err
	}
	m.logger.Debug("Badge metadata published", zap.String("url", m.store.URL(key)))
	return nil
}

// LedgerFactory returns a factory minting into the transaction's badge table
func LedgerFactory() achievement.MinterFactory {
	return func(repos ledger.TransactionalRepositories) domain.AssetMinter {
		return NewLedgerMinter(repos.Badges())
	}
}

// ObjectFactory returns a factory publishing metadata to store before
// minting into the transaction's badge table
func ObjectFactory(store storage.ObjectStore, prefix string, logger *zap.Logger) achievement.MinterFactory {
	return func(repos ledger.TransactionalRepositories) domain.AssetMinter {
		return NewObjectMinter(store, prefix, NewLedgerMinter(repos.Badges()), logger)
	}
}

var (
	_ domain.AssetMinter = (*LedgerMinter)(nil)
	_ domain.AssetMinter = (*ObjectMinter)(nil)
)
