package listing

import (
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// StorageDevice is a source record from the storages category
type StorageDevice struct {
	Base
	CapacityGB *int
	Interface  string `gorm:"type:varchar(40);not null;default:''"`
	FormFactor string `gorm:"type:varchar(40);not null;default:''"`
}

// TableName returns the table name for GORM
func (StorageDevice) TableName() string {
	return "storage_devices"
}

// NewStorageDevice creates a storage listing
func NewStorageDevice(name, brand string, priceMin decimal.Decimal) (*StorageDevice, error) {
	base, err := NewBase(name, brand, priceMin)
	if err != nil {
		return nil, err
	}
	return &StorageDevice{Base: base}, nil
}

// CategorySlug names the source category
func (s *StorageDevice) CategorySlug() string {
	return CategoryStorages
}

// ToCanonical maps the storage device into the canonical product shape
func (s *StorageDevice) ToCanonical() catalog.CanonicalFields {
	return catalog.CanonicalFields{
		Name:        clip(s.Name, 200),
		Brand:       s.Brand,
		Price:       s.PriceMin,
		OldPrice:    s.oldPrice(),
		Description: s.SpecsText,
		ImageURL:    s.ImageURL,
	}
}

var _ catalog.Projectable = (*StorageDevice)(nil)
