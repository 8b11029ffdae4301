package listing

import (
	"fmt"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Financed item kinds
const (
	FinancedKindSmartphones   = "Smartphones"
	FinancedKindFeaturePhones = "Feature Phones"
	FinancedKindOthers        = "Others"
)

// FinancedItem is a source record from the hire-purchase (M-KOPA style)
// category. Alongside the cash price range it carries the financing
// terms shown on the card.
type FinancedItem struct {
	Base
	Kind       string          `gorm:"type:varchar(20);not null"`
	DepositKES decimal.Decimal `gorm:"column:deposit_kes;type:decimal(12,2);not null;default:0"`
	WeeklyKES  decimal.Decimal `gorm:"column:weekly_kes;type:decimal(12,2);not null;default:0"`
	TermWeeks  int             `gorm:"type:smallint;not null;default:0"`
}

// TableName returns the table name for GORM
func (FinancedItem) TableName() string {
	return "financed_items"
}

// NewFinancedItem creates a financed-device listing
func NewFinancedItem(name, brand, kind string, priceMin decimal.Decimal) (*FinancedItem, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = FinancedKindOthers
	}
	fi := &FinancedItem{Base: base, Kind: kind}
	fi.Slug = clip(valueobject.Slugify(brand, kind, name), 150)
	return fi, nil
}

// CategorySlug names the source category
func (f *FinancedItem) CategorySlug() string {
	return CategoryMkopa
}

// ToCanonical maps the financed item into the canonical product shape.
// Only the cash price feeds the catalog; financing terms remain display
// data on the source listing.
func (f *FinancedItem) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(fmt.Sprintf("%s (%s)", f.Name, f.Kind), 200),
		Brand:       f.Brand,
		Price:       f.PriceMin,
		OldPrice:    f.oldPrice(),
		Description: f.SpecsText,
		ImageURL:    f.ImageURL,
	}
}

var _ catalog.Projectable = (*FinancedItem)(nil)
