package minter

import (
	"context"
	"fmt"

	"github.com/paperfi/backend/internal/application/achievement"
	"github.com/paperfi/backend/internal/infrastructure/config"
	"github.com/paperfi/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

// NewFactory builds the minter factory selected by minter.backend. The s3
// backend makes sure the bucket exists.
func NewFactory(ctx context.Context, cfg config.MinterConfig, logger *zap.Logger) (achievement.MinterFactory, error) {
	switch cfg.Backend {
	case "", "ledger":
		logger.Info("Minting badges on the ledger")
		return LedgerFactory(), nil
	case "s3":
		store, err := storage.NewS3ObjectStorage(ctx, cfg, storage.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Minting badges with S3 metadata", zap.String("bucket", cfg.Bucket), zap.String("prefix", cfg.Prefix))
		return ObjectFactory(store, cfg.Prefix, logger), nil
	default:
		return nil, fmt.Errorf("unknown minter backend %q", cfg.Backend)
	}
}
