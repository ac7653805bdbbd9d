package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordPurchase(ctx context.Context, price, fee uint64) {
	m.Called(price, fee)
}

func (m *mockRecorder) RecordReview(ctx context.Context, verdict string) {
	m.Called(verdict)
}

func (m *mockRecorder) RecordDelisting(ctx context.Context) {
	m.Called()
}

func (m *mockRecorder) RecordBadgeMinted(ctx context.Context, achievement string) {
	m.Called(achievement)
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestMetricsHandler_RoutesEvents(t *testing.T) {
	rec := new(mockRecorder)
	rec.On("RecordPurchase", uint64(1_000_000), uint64(20_000)).Once()
	rec.On("RecordReview", "REJECTED").Once()
	rec.On("RecordBadgeMinted", "reviews").Once()
	h := NewMetricsHandler(rec)
	ctx := context.Background()

	purchaseEvent := purchase.NewPaperPurchasedEvent(&purchase.Record{
		BaseEntity: shared.NewBaseEntity("k", testNow),
		Buyer:      "bob",
		PaperKey:   "p",
		Price:      1_000_000,
		Fee:        20_000,
		Timestamp:  testNow,
	})
	require.NoError(t, h.Handle(ctx, purchaseEvent))

	p, err := paper.NewPaper("alice", 1, "https://info", 0, "ipfs://paper", testNow)
	require.NoError(t, err)
	r, err := review.NewReview("carol", p, paper.VerdictRejected, "ipfs://r", testNow)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, review.NewReviewSubmittedEvent(r)))

	c, err := achievement.NewCollection("Reviewers", "ipfs://c", "admin", testNow)
	require.NoError(t, err)
	b, err := achievement.NewBadge("carol", c, "First review", "ipfs://b", achievement.ReviewsSubmitted, 1, testNow)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, achievement.NewBadgeMintedEvent(b)))

	rec.AssertExpectations(t)
}

func TestMetricsHandler_IgnoresOtherEvents(t *testing.T) {
	rec := new(mockRecorder)
	h := NewMetricsHandler(rec)

	evt := shared.NewBaseDomainEvent("UserSignedUp", "UserAccount", "k", testNow)
	require.NoError(t, h.Handle(context.Background(), &evt))
	rec.AssertNotCalled(t, "RecordPurchase", mock.Anything, mock.Anything)
}

func TestAuditHandler_LogsEnvelope(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := NewAuditHandler(zap.New(core))
	assert.Nil(t, h.EventTypes())

	evt := shared.NewBaseDomainEvent("PaperPublished", "Paper", "paper-key", testNow)
	require.NoError(t, h.Handle(context.Background(), &evt))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "PaperPublished", fields["event_type"])
	assert.Equal(t, "paper-key", fields["aggregate_key"])
}
