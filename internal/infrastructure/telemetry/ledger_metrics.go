package telemetry

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// LedgerMetrics tracks marketplace activity: purchases, fees, reviews,
// delistings, badge mints and the size of the listed catalogue.
type LedgerMetrics struct {
	meter    metric.Meter
	logger   *zap.Logger
	decimals int32

	purchasesTotal  *Counter
	feesTotal       *Counter
	purchasePrice   *Histogram
	reviewsTotal    *Counter
	delistingsTotal *Counter
	badgesTotal     *Counter

	listedPapers *Gauge
	vaultBalance *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	provider ListingMetricsProvider
}

// ListingMetricsProvider supplies point-in-time ledger figures for the
// periodic gauge collector.
type ListingMetricsProvider interface {
	CountListedPapers(ctx context.Context) (int64, error)
	// SumVaultBalances returns the summed balance in base units per vault kind.
	SumVaultBalances(ctx context.Context) (map[string]uint64, error)
}

// LedgerMetricsConfig holds configuration for ledger metrics.
type LedgerMetricsConfig struct {
	Meter    metric.Meter
	Logger   *zap.Logger
	Decimals int32
	Provider ListingMetricsProvider
}

// NewLedgerMetrics creates the ledger instruments on cfg.Meter.
func NewLedgerMetrics(cfg LedgerMetricsConfig) (*LedgerMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	lm := &LedgerMetrics{
		meter:    cfg.Meter,
		logger:   logger,
		decimals: cfg.Decimals,
		stopChan: make(chan struct{}),
		provider: cfg.Provider,
	}

	var err error
	if lm.purchasesTotal, err = NewCounter(cfg.Meter,
		"paperfi_purchases_total", "Total number of settled paper purchases", "{purchase}"); err != nil {
		return nil, err
	}
	if lm.feesTotal, err = NewCounter(cfg.Meter,
		"paperfi_platform_fees_total", "Platform fees collected in base units", "{unit}"); err != nil {
		return nil, err
	}
	if lm.purchasePrice, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "paperfi_purchase_price",
		Description: "Distribution of paid purchase prices in whole tokens",
		Unit:        "{token}",
		Boundaries:  PriceBuckets,
	}); err != nil {
		return nil, err
	}
	if lm.reviewsTotal, err = NewCounter(cfg.Meter,
		"paperfi_reviews_total", "Total number of reviews submitted", "{review}"); err != nil {
		return nil, err
	}
	if lm.delistingsTotal, err = NewCounter(cfg.Meter,
		"paperfi_delistings_total", "Papers automatically delisted by the rejection limit", "{paper}"); err != nil {
		return nil, err
	}
	if lm.badgesTotal, err = NewCounter(cfg.Meter,
		"paperfi_badges_minted_total", "Total number of achievement badges minted", "{badge}"); err != nil {
		return nil, err
	}
	if lm.listedPapers, err = NewGauge(cfg.Meter,
		"paperfi_listed_papers", "Number of papers currently listed", "{paper}"); err != nil {
		return nil, err
	}
	if lm.vaultBalance, err = NewGauge(cfg.Meter,
		"paperfi_vault_balance", "Summed vault balance in base units", "{unit}"); err != nil {
		return nil, err
	}

	logger.Info("Ledger metrics initialized")
	return lm, nil
}

// RecordPurchase records a settled purchase. Fee and price are base units.
func (lm *LedgerMetrics) RecordPurchase(ctx context.Context, price, fee uint64) {
	free := price == 0
	lm.purchasesTotal.Inc(ctx, AttrFree.Bool(free))
	if free {
		return
	}
	lm.feesTotal.Add(ctx, clampInt64(fee))
	tokens, _ := decimal.NewFromUint64(price).Shift(-lm.decimals).Float64()
	lm.purchasePrice.Record(ctx, tokens)
}

// RecordReview records a submitted review verdict.
func (lm *LedgerMetrics) RecordReview(ctx context.Context, verdict string) {
	lm.reviewsTotal.Inc(ctx, AttrVerdict.String(verdict))
}

// RecordDelisting records a paper delisted by the rejection limit.
func (lm *LedgerMetrics) RecordDelisting(ctx context.Context) {
	lm.delistingsTotal.Inc(ctx)
}

// RecordBadgeMinted records a minted achievement badge.
func (lm *LedgerMetrics) RecordBadgeMinted(ctx context.Context, achievement string) {
	lm.badgesTotal.Inc(ctx, AttrAchievement.String(achievement))
}

// RecordListedPapers records the current listed paper count.
func (lm *LedgerMetrics) RecordListedPapers(ctx context.Context, count int64) {
	lm.listedPapers.Record(ctx, count)
}

// RecordVaultBalance records the summed balance of one vault kind.
func (lm *LedgerMetrics) RecordVaultBalance(ctx context.Context, kind string, units uint64) {
	lm.vaultBalance.Record(ctx, clampInt64(units), AttrVaultKind.String(kind))
}

// StartPeriodicCollection starts collecting gauges every interval (default 5 minutes).
// It is non-blocking; call Stop to end collection.
func (lm *LedgerMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	lm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		go lm.runPeriodicCollection(ctx, interval)
	})
}

func (lm *LedgerMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lm.collect(ctx)
	for {
		select {
		case <-lm.stopChan:
			lm.logger.Info("Stopping periodic ledger metrics collection")
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			lm.collect(ctx)
		}
	}
}

func (lm *LedgerMetrics) collect(ctx context.Context) {
	if lm.provider == nil {
		lm.logger.Debug("No listing provider configured, skipping gauge collection")
		return
	}

	listed, err := lm.provider.CountListedPapers(ctx)
	if err != nil {
		lm.logger.Warn("Failed to count listed papers", zap.Error(err))
	} else {
		lm.RecordListedPapers(ctx, listed)
	}

	balances, err := lm.provider.SumVaultBalances(ctx)
	if err != nil {
		lm.logger.Warn("Failed to sum vault balances", zap.Error(err))
		return
	}
	for kind, units := range balances {
		lm.RecordVaultBalance(ctx, kind, units)
	}
}

// Stop stops the periodic collection.
func (lm *LedgerMetrics) Stop() {
	lm.stopOnce.Do(func() {
		close(lm.stopChan)
	})
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewLedgerMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
