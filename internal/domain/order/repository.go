package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/shared"
)

// Repository defines the persistence contract for orders
type Repository interface {
	// FindByID finds an order by ID with its lines preloaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUser finds an order owned by a specific user
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)

	// FindByUser lists a user's orders, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// CountByUser counts a user's orders
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates an order with its lines
	Save(ctx context.Context, o *Order) error

	// PlaceWithCart persists the order with its lines, empties the
	// given cart, and saves the order's domain events to the outbox,
	// all within a single transaction
	PlaceWithCart(ctx context.Context, o *Order, cartID uuid.UUID, events []shared.DomainEvent) error

	// GenerateReceiptNumber produces the next receipt number for the
	// current year, formatted R-YYYY-NNNNNN
	GenerateReceiptNumber(ctx context.Context) (string, error)
}
