package telemetry

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormListingMetricsProvider implements ListingMetricsProvider with
// aggregate queries over the ledger tables.
type GormListingMetricsProvider struct {
	db *gorm.DB
}

// NewGormListingMetricsProvider creates a new GormListingMetricsProvider.
func NewGormListingMetricsProvider(db *gorm.DB) *GormListingMetricsProvider {
	return &GormListingMetricsProvider{db: db}
}

// CountListedPapers returns the number of listed papers.
func (p *GormListingMetricsProvider) CountListedPapers(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Table("papers").
		Where("listed = ?", true).
		Count(&count).Error
	return count, err
}

// SumVaultBalances returns the total balance per vault kind, saturating at
// the largest uint64.
func (p *GormListingMetricsProvider) SumVaultBalances(ctx context.Context) (map[string]uint64, error) {
	type row struct {
		Kind    string `gorm:"column:kind"`
		Balance decimal.Decimal `gorm:"column:balance"`
	}

	var rows []row
	if err := p.db.WithContext(ctx).
		Table("vaults").
		Select("kind, balance").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query vault balances: %w", err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.Kind] = totals[r.Kind].Add(r.Balance)
	}

	limit := decimal.NewFromUint64(math.MaxUint64)
	sums := make(map[string]uint64, len(totals))
	for kind, total := range totals {
		if total.GreaterThan(limit) {
			sums[kind] = math.MaxUint64
			continue
		}
		sums[kind] = total.BigInt().Uint64()
	}
	return sums, nil
}
