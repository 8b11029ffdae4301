package listing

import (
	"fmt"
	"strings"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Smartphone is a source record from the smartphones category
type Smartphone struct {
	Base
	RAMGB         *int             `gorm:"type:smallint"`
	StorageGB     *int             `gorm:"type:smallint"`
	BatteryMAh    *int             `gorm:"column:battery_mah"`
	CameraMP      *int             `gorm:"column:camera_mp;type:smallint"`
	DisplayInches *decimal.Decimal `gorm:"type:decimal(4,1)"`
	DisplayType   string           `gorm:"type:varchar(40);not null;default:''"`
}

// TableName returns the table name for GORM
func (Smartphone) TableName() string {
	return "smartphones"
}

// NewSmartphone creates a smartphone listing; optional spec fields are
// assigned by the caller afterwards
func NewSmartphone(name, brand string, priceMin decimal.Decimal) (*Smartphone, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &Smartphone{Base: base}, nil
}

// CategorySlug names the source category
func (s *Smartphone) CategorySlug() string {
	return CategorySmartphones
}

// ToCanonical maps the smartphone into the canonical product shape. The
// structured spec fields are folded into the description.
func (s *Smartphone) ToCanonical() catalog.CanonicalFields {
	bits := []string{s.SpecsText}
	if s.RAMGB != nil {
		bits = append(bits, fmt.Sprintf("%dGB RAM", *s.RAMGB))
	}
	if s.StorageGB != nil {
		bits = append(bits, fmt.Sprintf("%dGB Storage", *s.StorageGB))
	}
	if s.CameraMP != nil {
		bits = append(bits, fmt.Sprintf("%dMP Camera", *s.CameraMP))
	}
	if s.BatteryMAh != nil {
		bits = append(bits, fmt.Sprintf("%d mAh", *s.BatteryMAh))
	}
	if s.DisplayInches != nil {
		bits = append(bits, strings.TrimSpace(fmt.Sprintf("%s\" %s", s.DisplayInches.String(), s.DisplayType)))
	}

	return catalog.CanonicalFields{
		Name:        clip(s.Name, 200),
		Brand:       s.Brand,
		Price:       s.PriceMin,
		OldPrice:    s.oldPrice(),
		Description: joinBits(" | ", bits...),
		ImageURL:    s.ImageURL,
	}
}

var _ catalog.Projectable = (*Smartphone)(nil)
