package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CanonicalFields is the normalized shape every source record maps into.
// Price carries the minimum advertised price (zero when the source has
// none); OldPrice carries the advisory upper or previous price when the
// source provides one.
type CanonicalFields struct {
	Name        string
	Brand       string
	Price       decimal.Decimal
	OldPrice    *decimal.Decimal
	Description string
	ImageURL    string
}

// Projectable is implemented by every source record that feeds the
// canonical catalog. The projector only ever sees this interface; adding
// a new source category means implementing it, nothing more.
type Projectable interface {
	// ListingID identifies the source record
	ListingID() uuid.UUID
	// CategorySlug names the source category (e.g. "smartphones")
	CategorySlug() string
	// LinkedProductID returns the canonical product this record feeds,
	// nil when the record has not been projected yet
	LinkedProductID() *uuid.UUID
	// ToCanonical maps the source fields into the canonical shape
	ToCanonical() CanonicalFields
}
