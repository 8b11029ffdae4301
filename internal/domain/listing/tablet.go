package listing

import (
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Tablet is a source record from the tablets category
type Tablet struct {
	Base
	RAMGB         *int             `gorm:"type:smallint"`
	StorageGB     *int             `gorm:"type:smallint"`
	DisplayInches *decimal.Decimal `gorm:"type:decimal(4,1)"`
	DisplayType   string           `gorm:"type:varchar(40);not null;default:''"`
}

// TableName returns the table name for GORM
func (Tablet) TableName() string {
	return "tablets"
}

// NewTablet creates a tablet listing
func NewTablet(name, brand string, priceMin decimal.Decimal) (*Tablet, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &Tablet{Base: base}, nil
}

// CategorySlug names the source category
func (t *Tablet) CategorySlug() string {
	return CategoryTablets
}

// ToCanonical maps the tablet into the canonical product shape
func (t *Tablet) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(t.Name, 200),
		Brand:       t.Brand,
		Price:       t.PriceMin,
		OldPrice:    t.oldPrice(),
		Description: t.SpecsText,
		ImageURL:    t.ImageURL,
	}
}

var _ catalog.Projectable = (*Tablet)(nil)
