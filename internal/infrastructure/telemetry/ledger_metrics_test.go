package telemetry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paperfi/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newRecordingMetrics(t *testing.T, provider telemetry.ListingMetricsProvider) (*telemetry.LedgerMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	lm, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{
		Meter:    mp.Meter("test"),
		Logger:   zap.NewNop(),
		Decimals: 9,
		Provider: provider,
	})
	require.NoError(t, err)
	return lm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewLedgerMetrics_NilMeter(t *testing.T) {
	lm, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{})
	require.Error(t, err)
	assert.Nil(t, lm)
	assert.Equal(t, "NewLedgerMetrics: meter cannot be nil", err.Error())
}

func TestNewLedgerMetrics_Noop(t *testing.T) {
	lm, err := telemetry.NewLedgerMetrics(telemetry.LedgerMetricsConfig{
		Meter: noop.NewMeterProvider().Meter("test"),
	})
	require.NoError(t, err)

	ctx := context.Background()
	lm.RecordPurchase(ctx, 1_000_000, 20_000)
	lm.RecordReview(ctx, "APPROVED")
	lm.RecordDelisting(ctx)
	lm.RecordBadgeMinted(ctx, "papers")
}

func TestLedgerMetrics_RecordPurchase(t *testing.T) {
	lm, reader := newRecordingMetrics(t, nil)
	ctx := context.Background()

	lm.RecordPurchase(ctx, 1_000_000, 20_000)
	lm.RecordPurchase(ctx, 2_000_000, 40_000)
	lm.RecordPurchase(ctx, 0, 0)

	metrics := collect(t, reader)
	assert.Equal(t, int64(3), sumOf(t, metrics["paperfi_purchases_total"]))
	assert.Equal(t, int64(60_000), sumOf(t, metrics["paperfi_platform_fees_total"]))

	hist, ok := metrics["paperfi_purchase_price"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
	assert.InDelta(t, 0.003, hist.DataPoints[0].Sum, 1e-12)
}

func TestLedgerMetrics_RecordReviewByVerdict(t *testing.T) {
	lm, reader := newRecordingMetrics(t, nil)
	ctx := context.Background()

	lm.RecordReview(ctx, "APPROVED")
	lm.RecordReview(ctx, "REJECTED")
	lm.RecordReview(ctx, "REJECTED")

	sum := collect(t, reader)["paperfi_reviews_total"].Data.(metricdata.Sum[int64])
	byVerdict := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("verdict"))
		byVerdict[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"APPROVED": 1, "REJECTED": 2}, byVerdict)
}

type stubListingProvider struct {
	listed   int64
	balances map[string]uint64
	err      error
}

func (s *stubListingProvider) CountListedPapers(context.Context) (int64, error) {
	return s.listed, s.err
}

func (s *stubListingProvider) SumVaultBalances(context.Context) (map[string]uint64, error) {
	return s.balances, s.err
}

func TestLedgerMetrics_PeriodicCollection(t *testing.T) {
	provider := &stubListingProvider{
		listed:   4,
		balances: map[string]uint64{"PLATFORM_VAULT": 40_000},
	}
	lm, reader := newRecordingMetrics(t, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	lm.StartPeriodicCollection(ctx, 0)
	defer lm.Stop()

	assert.Eventually(t, func() bool {
		m, ok := collect(t, reader)["paperfi_listed_papers"]
		if !ok {
			return false
		}
		g := m.Data.(metricdata.Gauge[int64])
		return len(g.DataPoints) == 1 && g.DataPoints[0].Value == 4
	}, time.Second, 10*time.Millisecond)
}

func TestLedgerMetrics_CollectionErrorsAreTolerated(t *testing.T) {
	lm, _ := newRecordingMetrics(t, &stubListingProvider{err: errors.New("db down")})
	lm.StartPeriodicCollection(context.Background(), 0)
	lm.Stop()
	lm.Stop()
}
