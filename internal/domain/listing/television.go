package listing

import (
	"fmt"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Television panel technologies
const (
	PanelLED      = "LED"
	PanelQLED     = "QLED"
	PanelOLED     = "OLED"
	PanelNanoCell = "NanoCell"
	PanelCrystal  = "Crystal"
	PanelOther    = "Other"
)

// Television resolutions
const (
	ResolutionHD  = "HD"
	ResolutionFHD = "FHD"
	ResolutionUHD = "UHD"
	Resolution8K  = "8K"
)

// Television is a source record from the televisions category
type Television struct {
	Base
	ScreenSizeInches int    `gorm:"not null"`
	Panel            string `gorm:"type:varchar(16);not null;default:'LED'"`
	Resolution       string `gorm:"type:varchar(8);not null;default:'UHD'"`
	Smart            bool   `gorm:"not null;default:true"`
	HDR              bool   `gorm:"column:hdr;not null;default:true"`
	RefreshRateHz    *int   `gorm:"type:smallint"`
}

// TableName returns the table name for GORM
func (Television) TableName() string {
	return "televisions"
}

// NewTelevision creates a television listing. The slug folds in the
// screen size and panel so same-brand models stay distinct.
func NewTelevision(name, brand string, screenSizeInches int, priceMin decimal.Decimal) (*Television, error) {
	if screenSizeInches <= 0 {
		return nil, shared.NewDomainError("INVALID_SCREEN_SIZE", "Screen size must be positive")
	}
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	tv := &Television{
		Base:             base,
		ScreenSizeInches: screenSizeInches,
		Panel:            PanelLED,
		Resolution:       ResolutionUHD,
		Smart:            true,
		HDR:              true,
	}
	tv.Slug = clip(valueobject.Slugify(brand, fmt.Sprintf("%din", screenSizeInches), tv.Panel, name), 170)
	return tv, nil
}

// CategorySlug names the source category
func (t *Television) CategorySlug() string {
	return CategoryTelevisions
}

// ToCanonical maps the television into the canonical product shape. The
// size and panel qualify the display name.
func (t *Television) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(fmt.Sprintf("%s (%d\" %s)", t.Name, t.ScreenSizeInches, t.Panel), 200),
		Brand:       t.Brand,
		Price:       t.PriceMin,
		OldPrice:    t.oldPrice(),
		Description: t.SpecsText,
		ImageURL:    t.ImageURL,
	}
}

var _ catalog.Projectable = (*Television)(nil)
