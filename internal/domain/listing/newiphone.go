package listing

import (
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// NewIphone badges
const (
	IphoneBadgeHot  = "HOT"
	IphoneBadgeNew  = "NEW"
	IphoneBadgeSale = "SALE"
	IphoneBadgeNone = "NONE"
)

// NewIphone is a source record from the flagship iPhones category. The
// base price range is unused here: the card shows a single new price
// with an optional strikethrough old price.
type NewIphone struct {
	Base
	OldPrice       *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Badge          string           `gorm:"type:varchar(8);not null;default:'NONE'"`
	BannerImageURL string           `gorm:"type:varchar(500);not null;default:''"`
}

// TableName returns the table name for GORM
func (NewIphone) TableName() string {
	return "new_iphones"
}

// NewNewIphone creates a flagship iPhone listing; brand is implicit
func NewNewIphone(name string, price decimal.Decimal) (*NewIphone, error) {
	base, err := NewBase(name, "", price)
	if err != nil {
		return nil, err
	}
	ni := &NewIphone{Base: base, Badge: IphoneBadgeNone}
	ni.Slug = clip(valueobject.Slugify(name), 170)
	return ni, nil
}

// CategorySlug names the source category
func (n *NewIphone) CategorySlug() string {
	return CategoryNewIphones
}

// ToCanonical maps the iPhone into the canonical product shape with the
// brand fixed to Apple
func (n *NewIphone) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(n.Name, 200),
		Brand:       "Apple",
		Price:       n.PriceMin,
		OldPrice:    n.OldPrice,
		Description: n.SpecsText,
		ImageURL:    n.ImageURL,
	}
}

var _ catalog.Projectable = (*NewIphone)(nil)
