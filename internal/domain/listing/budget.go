package listing

import (
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// BudgetSmartphone is a source record from the budget smartphones
// category. Badge carries card labels like "OPEN" or "OPEN HOT".
type BudgetSmartphone struct {
	Base
	Badge string `gorm:"type:varchar(24);not null;default:''"`
}

// TableName returns the table name for GORM
func (BudgetSmartphone) TableName() string {
	return "budget_smartphones"
}

// NewBudgetSmartphone creates a budget smartphone listing
func NewBudgetSmartphone(name, brand string, priceMin decimal.Decimal) (*BudgetSmartphone, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &BudgetSmartphone{Base: base}, nil
}

// CategorySlug names the source category
func (b *BudgetSmartphone) CategorySlug() string {
	return CategoryBudgetSmartphones
}

// ToCanonical maps the budget smartphone into the canonical product shape
func (b *BudgetSmartphone) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(b.Name, 200),
		Brand:       b.Brand,
		Price:       b.PriceMin,
		OldPrice:    b.oldPrice(),
		Description: b.SpecsText,
		ImageURL:    b.ImageURL,
	}
}

var _ catalog.Projectable = (*BudgetSmartphone)(nil)
