package catalog

import (
	"time"

	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is the canonical storefront record. Every sellable item, whatever
// source table it came from, is represented by exactly one Product. Carts and
// orders reference products only.
type Product struct {
	shared.BaseAggregateRoot
	Name        string           `gorm:"type:varchar(300);not null"`
	Brand       string           `gorm:"type:varchar(120);not null;default:''"`
	Price       decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	OldPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Description string           `gorm:"type:text"`
	ImageURL    string           `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a canonical product from projected fields
func NewProduct(fields CanonicalFields) (*Product, error) {
	if err := validateProductName(fields.Name); err != nil {
		return nil, err
	}
	if fields.Price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              fields.Name,
		Brand:             fields.Brand,
		Price:             fields.Price,
		OldPrice:          fields.OldPrice,
		Description:       fields.Description,
		ImageURL:          fields.ImageURL,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// ApplyCanonical overwrites the projected fields from a source record.
// Identity and timestamps are kept; an unchanged source leaves the
// product unchanged apart from version bookkeeping.
func (p *Product) ApplyCanonical(fields CanonicalFields) error {
	if err := validateProductName(fields.Name); err != nil {
		return err
	}
	if fields.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	if !p.differsFrom(fields) {
		return nil
	}

	p.Name = fields.Name
	p.Brand = fields.Brand
	p.Price = fields.Price
	p.OldPrice = fields.OldPrice
	p.Description = fields.Description
	p.ImageURL = fields.ImageURL
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

func (p *Product) differsFrom(fields CanonicalFields) bool {
	if p.Name != fields.Name || p.Brand != fields.Brand ||
		p.Description != fields.Description || p.ImageURL != fields.ImageURL {
		return true
	}
	if !p.Price.Equal(fields.Price) {
		return true
	}
	switch {
	case p.OldPrice == nil && fields.OldPrice == nil:
		return false
	case p.OldPrice == nil || fields.OldPrice == nil:
		return true
	default:
		return !p.OldPrice.Equal(*fields.OldPrice)
	}
}

// PriceMoney returns the current price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyKES(p.Price)
}

// HasDiscount returns true when a higher reference price is displayed
func (p *Product) HasDiscount() bool {
	return p.OldPrice != nil && p.OldPrice.GreaterThan(p.Price)
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 300 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 300 characters")
	}
	return nil
}
