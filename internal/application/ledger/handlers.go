package ledger

import (
	"context"

	"github.com/paperfi/backend/internal/domain/achievement"
	"github.com/paperfi/backend/internal/domain/paper"
	"github.com/paperfi/backend/internal/domain/purchase"
	"github.com/paperfi/backend/internal/domain/review"
	"github.com/paperfi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditHandler writes every committed ledger event to the log
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.Named("audit")}
}

// EventTypes returns nil: the audit log receives all events
func (h *AuditHandler) EventTypes() []string {
	return nil
}

// Handle logs the event envelope
func (h *AuditHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.logger.Info("Ledger event",
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_key", event.AggregateKey()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

// MetricsRecorder receives ledger activity counts
type MetricsRecorder interface {
	RecordPurchase(ctx context.Context, price, fee uint64)
	RecordReview(ctx context.Context, verdict string)
	RecordDelisting(ctx context.Context)
	RecordBadgeMinted(ctx context.Context, achievement string)
}

// MetricsHandler turns committed events into metric updates
type MetricsHandler struct {
	recorder MetricsRecorder
}

// NewMetricsHandler creates a new MetricsHandler
func NewMetricsHandler(recorder MetricsRecorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// EventTypes returns the events that move a metric
func (h *MetricsHandler) EventTypes() []string {
	return []string{
		purchase.EventTypePaperPurchased,
		review.EventTypeReviewSubmitted,
		paper.EventTypePaperDelisted,
		achievement.EventTypeBadgeMinted,
	}
}

// Handle records the event on the matching metric
func (h *MetricsHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *purchase.PaperPurchasedEvent:
		h.recorder.RecordPurchase(ctx, e.Price, e.Fee)
	case *review.ReviewSubmittedEvent:
		h.recorder.RecordReview(ctx, string(e.Verdict))
	case *paper.PaperDelistedEvent:
		h.recorder.RecordDelisting(ctx)
	case *achievement.BadgeMintedEvent:
		h.recorder.RecordBadgeMinted(ctx, e.Achievement)
	}
	return nil
}

var (
	_ shared.EventHandler = (*AuditHandler)(nil)
	_ shared.EventHandler = (*MetricsHandler)(nil)
)
