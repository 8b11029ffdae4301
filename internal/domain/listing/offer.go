package listing

import (
	"fmt"
	"strings"

	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Offer kinds
const (
	OfferKindSmartphone = "Smartphone"
	OfferKindAccessory  = "Accessory"
	OfferKindTablet     = "Tablet"
	OfferKindTelevision = "Television"
	OfferKindLaptop     = "Laptop"
	OfferKindOther      = "Other"
)

// LatestOffer is a source record from the offers category. It can show a
// single price, a range, or a strikethrough old price, plus card labels
// like NEW/HOT/SALE stored as CSV.
type LatestOffer struct {
	Base
	Kind      string           `gorm:"type:varchar(24);not null;default:'Other'"`
	OldPrice  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	LabelsCSV string           `gorm:"column:labels_csv;type:varchar(160);not null;default:''"`
}

// TableName returns the table name for GORM
func (LatestOffer) TableName() string {
	return "latest_offers"
}

// NewLatestOffer creates an offer listing
func NewLatestOffer(name, brand, kind string, priceMin decimal.Decimal) (*LatestOffer, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		kind = OfferKindOther
	}
	of := &LatestOffer{Base: base, Kind: kind}
	of.Slug = clip(valueobject.Slugify(brand, kind, name), 175)
	return of, nil
}

// CategorySlug names the source category
func (o *LatestOffer) CategorySlug() string {
	return CategoryOffers
}

// Labels splits the CSV label column into clean entries
func (o *LatestOffer) Labels() []string {
	if o.LabelsCSV == "" {
		return nil
	}
	var labels []string
	for _, l := range strings.Split(o.LabelsCSV, ",") {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels
}

// ToCanonical maps the offer into the canonical product shape. The
// explicit old price wins over the range upper bound; the labels double
// as the description.
func (o *LatestOffer) ToCanonical() catalog.CanonicalFields {
	old := o.OldPrice
	if old == nil {
		old = o.oldPrice()
	}
	return catalog.CanonicalFields{
		Name:        clip(fmt.Sprintf("%s (%s)", o.Name, o.Kind), 200),
		Brand:       o.Brand,
		Price:       o.PriceMin,
		OldPrice:    old,
		Description: strings.Join(o.Labels(), ", "),
		ImageURL:    o.ImageURL,
	}
}

var _ catalog.Projectable = (*LatestOffer)(nil)
