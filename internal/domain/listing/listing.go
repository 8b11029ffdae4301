package listing

import (
	"strings"
	"time"

	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category slugs for the source tables feeding the canonical catalog
const (
	CategorySmartphones       = "smartphones"
	CategoryTablets           = "tablets"
	CategoryTelevisions       = "televisions"
	CategoryAudio             = "audio"
	CategoryStorages          = "storages"
	CategoryAccessories       = "accessories"
	CategoryMkopa             = "mkopa"
	CategoryBudgetSmartphones = "budget-smartphones"
	CategoryDialPhones        = "dialphones"
	CategoryOffers            = "offers"
	CategoryNewIphones        = "new-iphones"
	CategoryLaptops           = "laptops"
)

// Categories lists every source category slug
func Categories() []string {
	return []string{
		CategorySmartphones, CategoryTablets, CategoryTelevisions,
		CategoryAudio, CategoryStorages, CategoryAccessories,
		CategoryMkopa, CategoryBudgetSmartphones, CategoryDialPhones,
		CategoryOffers, CategoryNewIphones, CategoryLaptops,
	}
}

// Base carries the fields every source record shares: display name, brand,
// a unique slug, a price range in KES, freeform specs, an image and the
// back-reference to the canonical product once projected.
type Base struct {
	shared.BaseAggregateRoot
	Name      string           `gorm:"type:varchar(160);not null"`
	Brand     string           `gorm:"type:varchar(120);not null;default:''"`
	Slug      string           `gorm:"type:varchar(180);not null"`
	PriceMin  decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	PriceMax  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	SpecsText string           `gorm:"type:varchar(255);not null;default:''"`
	ImageURL  string           `gorm:"type:varchar(500);not null;default:''"`
	ProductID *uuid.UUID       `gorm:"type:uuid"`
}

// NewBase creates the shared listing fields. The slug is derived from
// brand and name when not supplied. PriceMax is advisory and not checked
// against PriceMin; the storefront treats it as display data.
func NewBase(name, brand string, priceMin decimal.Decimal) (Base, error) {
	if name == "" {
		return Base{}, shared.NewDomainError("INVALID_NAME", "Listing name cannot be empty")
	}
	if len(name) > 160 {
		return Base{}, shared.NewDomainError("INVALID_NAME", "Listing name cannot exceed 160 characters")
	}
	if priceMin.IsNegative() {
		return Base{}, shared.NewDomainError("INVALID_PRICE", "Listing price cannot be negative")
	}

	return Base{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Brand:             brand,
		Slug:              clip(valueobject.Slugify(brand, name), 150),
		PriceMin:          priceMin,
	}, nil
}

// ListingID identifies the source record
func (b *Base) ListingID() uuid.UUID {
	return b.ID
}

// LinkedProductID returns the canonical product reference, nil before the
// first projection run completes
func (b *Base) LinkedProductID() *uuid.UUID {
	return b.ProductID
}

// UpdateBase replaces the shared fields. The slug is kept stable; the
// product link is never touched here.
func (b *Base) UpdateBase(name, brand string, priceMin decimal.Decimal, priceMax *decimal.Decimal, specsText, imageURL string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Listing name cannot be empty")
	}
	if priceMin.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Listing price cannot be negative")
	}

	b.Name = name
	b.Brand = brand
	b.PriceMin = priceMin
	b.PriceMax = priceMax
	b.SpecsText = specsText
	b.ImageURL = imageURL
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// oldPrice returns the advisory reference price for the canonical record
func (b *Base) oldPrice() *decimal.Decimal {
	return b.PriceMax
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// joinBits joins the non-empty fragments with the separator
func joinBits(sep string, bits ...string) string {
	out := bits[:0]
	for _, b := range bits {
		if b != "" {
			out = append(out, b)
		}
	}
	return strings.Join(out, sep)
}
