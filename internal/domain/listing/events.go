package listing

import (
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeListing = "Listing"

// Event type constants
const (
	EventTypeListingSaved = "ListingSaved"
)

// ListingSavedEvent is written to the outbox in the same transaction as a
// source record save. The projector consumes it after commit to sync the
// canonical product.
type ListingSavedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID `json:"listing_id"`
	Category  string    `json:"category"`
	Created   bool      `json:"created"`
}

// NewListingSavedEvent creates a new ListingSavedEvent
func NewListingSavedEvent(listingID uuid.UUID, category string, created bool) *ListingSavedEvent {
	return &ListingSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingSaved, AggregateTypeListing, listingID),
		ListingID:       listingID,
		Category:        category,
		Created:         created,
	}
}
