package listing

import (
	"fmt"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// FeaturePhoneDeal is a source record from the dial phones category.
// Brand is free text here; the cheap handset market has no fixed brand
// list.
type FeaturePhoneDeal struct {
	Base
	Badge string `gorm:"type:varchar(50);not null;default:''"`
}

// TableName returns the table name for GORM
func (FeaturePhoneDeal) TableName() string {
	return "feature_phone_deals"
}

// NewFeaturePhoneDeal creates a feature phone listing
func NewFeaturePhoneDeal(name, brand string, priceMin decimal.Decimal) (*FeaturePhoneDeal, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &FeaturePhoneDeal{Base: base}, nil
}

// CategorySlug names the source category
func (f *FeaturePhoneDeal) CategorySlug() string {
	return CategoryDialPhones
}

// ToCanonical maps the feature phone into the canonical product shape.
// The brand qualifies the name when present; the badge stands in for a
// description when no specs text exists.
func (f *FeaturePhoneDeal) ToCanonical() catalog.CanonicalFields {
	name := f.Name
	if f.Brand != "" {
		name = fmt.Sprintf("%s (%s)", f.Name, f.Brand)
	}
	desc := f.SpecsText
	if desc == "" {
		desc = f.Badge
	}
	return catalog.CanonicalFields{
		Name:        clip(name, 200),
		Brand:       f.Brand,
		Price:       f.PriceMin,
		OldPrice:    f.oldPrice(),
		Description: desc,
		ImageURL:    f.ImageURL,
	}
}

var _ catalog.Projectable = (*FeaturePhoneDeal)(nil)
