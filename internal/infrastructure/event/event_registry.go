package event

import (
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/order"
)

// RegisterAllEvents registers all domain event types with the serializer.
// This is required for the OutboxProcessor to deserialize events from the
// outbox table.
func RegisterAllEvents(serializer *EventSerializer) {
	// Listing events drive catalog projection
	serializer.Register(listing.EventTypeListingSaved, &listing.ListingSavedEvent{})

	// Order lifecycle events
	serializer.Register(order.EventTypeOrderPlaced, &order.OrderPlacedEvent{})
	serializer.Register(order.EventTypeOrderPaid, &order.OrderPaidEvent{})
	serializer.Register(order.EventTypeOrderCancelled, &order.OrderCancelledEvent{})
	serializer.Register(order.EventTypeOrderFulfilled, &order.OrderFulfilledEvent{})
}
