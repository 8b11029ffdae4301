package listing

import (
	"context"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository is the persistence interface shared by every source
// category; one implementation per category table.
type Repository[T any] interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)

	// FindBySlug finds a listing by its unique slug
	FindBySlug(ctx context.Context, slug string) (*T, error)

	// FindAll finds listings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]T, error)

	// Count counts listings matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a listing
	Save(ctx context.Context, entity *T) error

	// SaveWithEvents saves the listing and persists the given domain
	// events to the outbox in the same transaction
	SaveWithEvents(ctx context.Context, entity *T, events []shared.DomainEvent) error

	// Delete removes a listing
	Delete(ctx context.Context, id uuid.UUID) error

	// LinkProduct sets the canonical product reference. Only the link
	// column is written, so linking never races a concurrent field edit.
	LinkProduct(ctx context.Context, listingID, productID uuid.UUID) error
}

// ProjectableSource resolves source records of one category for the
// projector, which only ever sees the catalog.Projectable view.
type ProjectableSource interface {
	// Category names the source category this source serves
	Category() string

	// Load fetches a source record by ID
	Load(ctx context.Context, id uuid.UUID) (catalog.Projectable, error)

	// LinkProduct sets the canonical product reference on the record
	LinkProduct(ctx context.Context, listingID, productID uuid.UUID) error
}
