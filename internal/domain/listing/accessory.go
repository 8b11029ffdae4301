package listing

import (
	"fmt"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Mobile accessory kinds
const (
	AccessoryKindChargers     = "Chargers"
	AccessoryKindPowerbanks   = "Powerbanks"
	AccessoryKindPhoneCovers  = "Phone Covers"
	AccessoryKindProtectors   = "Protectors"
	AccessoryKindCables       = "Cables"
	AccessoryKindMounts       = "Mounts"
	AccessoryKindEarbudsCases = "Earbuds Cases"
	AccessoryKindOthers       = "Others"
)

// MobileAccessory is a source record from the accessories category
type MobileAccessory struct {
	Base
	Kind string `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (MobileAccessory) TableName() string {
	return "mobile_accessories"
}

// NewMobileAccessory creates an accessory listing
func NewMobileAccessory(name, brand, kind string, priceMin decimal.Decimal) (*MobileAccessory, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = AccessoryKindOthers
	}
	acc := &MobileAccessory{Base: base, Kind: kind}
	acc.Slug = clip(valueobject.Slugify(brand, kind, name), 150)
	return acc, nil
}

// CategorySlug names the source category
func (m *MobileAccessory) CategorySlug() string {
	return CategoryAccessories
}

// ToCanonical maps the accessory into the canonical product shape,
// qualifying the name with the accessory kind
func (m *MobileAccessory) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(fmt.Sprintf("%s (%s)", m.Name, m.Kind), 200),
		Brand:       m.Brand,
		Price:       m.PriceMin,
		OldPrice:    m.oldPrice(),
		Description: m.SpecsText,
		ImageURL:    m.ImageURL,
	}
}

var _ catalog.Projectable = (*MobileAccessory)(nil)
