package listing

import (
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Laptop is a source record from the laptops category. Brand is free
// text and may be empty.
type Laptop struct {
	Base
	RAMGB         *int             `gorm:"type:smallint"`
	StorageGB     *int             `gorm:"type:smallint"`
	DisplayInches *decimal.Decimal `gorm:"type:decimal(4,1)"`
	DisplayType   string           `gorm:"type:varchar(40);not null;default:''"`
}

// TableName returns the table name for GORM
func (Laptop) TableName() string {
	return "laptops"
}

// NewLaptop creates a laptop listing
func NewLaptop(name, brand string, priceMin decimal.Decimal) (*Laptop, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &Laptop{Base: base}, nil
}

// CategorySlug names the source category
func (l *Laptop) CategorySlug() string {
	return CategoryLaptops
}

// ToCanonical maps the laptop into the canonical product shape
func (l *Laptop) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(l.Name, 200),
		Brand:       l.Brand,
		Price:       l.PriceMin,
		OldPrice:    l.oldPrice(),
		Description: l.SpecsText,
		ImageURL:    l.ImageURL,
	}
}

var _ catalog.Projectable = (*Laptop)(nil)
