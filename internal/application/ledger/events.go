package ledger

import (
	"context"

	"github.com/paperfi/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// EventCollector gathers domain events during a transaction so they can be
// published once it has committed.
type EventCollector struct {
	events []shared.DomainEvent
}

// Collect takes the pending events of each aggregate
func (c *EventCollector) Collect(aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		c.events = append(c.events, agg.GetDomainEvents()...)
		agg.ClearDomainEvents()
	}
}

// Add appends standalone events
func (c *EventCollector) Add(events ...shared.DomainEvent) {
	c.events = append(c.events, events...)
}

// Events returns the collected events
func (c *EventCollector) Events() []shared.DomainEvent {
	return c.events
}

// Reset drops collected events, used when a transaction is retried or rolled back
func (c *EventCollector) Reset() {
	c.events = nil
}

// Publish hands the collected events to publisher. Publishing errors are
// logged, never returned: the ledger change is already committed.
func (c *EventCollector) Publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger) {
	if publisher == nil || len(c.events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, c.events...); err != nil && logger != nil {
		logger.Warn("Failed to publish domain events",
			zap.Int("count", len(c.events)),
			zap.Error(err))
	}
	c.events = nil
}
