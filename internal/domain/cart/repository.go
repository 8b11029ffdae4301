package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for carts
type Repository interface {
	// FindByUser returns the user's cart with its lines preloaded.
	// Returns shared.ErrNotFound when the user has no cart yet.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// GetOrCreate returns the user's cart, creating an empty one when
	// none exists yet
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Update loads the user's cart under a row lock, applies fn, and
	// persists the result in the same transaction. The cart is created
	// when absent. Concurrent mutations for one user serialize here.
	Update(ctx context.Context, userID uuid.UUID, fn func(*Cart) error) (*Cart, error)
}
