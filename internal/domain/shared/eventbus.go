package shared

import "context"

// EventHandler consumes domain events
type EventHandler interface {
	// Handle processes a single domain event
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants. Empty means all.
	EventTypes() []string
}

// EventPublisher publishes domain events
type EventPublisher interface {
	// Publish publishes one or more domain events
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers handlers for domain events
type EventSubscriber interface {
	// Subscribe registers a handler, optionally narrowing the event types it
	// receives; with none given the handler's own EventTypes apply
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a previously registered handler
	Unsubscribe(handler EventHandler)
}

// EventBus combines publishing and subscription with a lifecycle
type EventBus interface {
	EventPublisher
	EventSubscriber
	// Start begins background dispatch
	Start(ctx context.Context) error
	// Stop drains and shuts down the bus
	Stop(ctx context.Context) error
}

// OutboxEventSaver persists domain events to the outbox table inside the
// same transaction that mutates the aggregate.
type OutboxEventSaver interface {
	// SaveEvents writes events to the outbox; txProvider is a *gorm.DB
	// transaction
	SaveEvents(ctx context.Context, txProvider interface{}, events ...DomainEvent) error
}
