package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/shared"
)

// CartLine is a single product entry in a cart.
// A cart holds at most one line per product; quantity changes are
// applied as deltas against the existing line.
type CartLine struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_product" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// NewCartLine creates a new cart line
func NewCartLine(cartID, productID uuid.UUID, quantity int) (*CartLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	return &CartLine{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// Cart is the shopping cart aggregate root.
// Each user owns exactly one cart; it is created lazily on first access
// and emptied when an order is placed.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Lines  []CartLine `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"lines"`

	// IDs of lines removed since the aggregate was loaded, consumed by
	// the repository when persisting.
	removedLineIDs []uuid.UUID `gorm:"-"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Lines:             make([]CartLine, 0),
	}, nil
}

// ApplyDelta adjusts the quantity of a product by a signed delta.
// A zero delta is a no-op. When no line exists for the product, one is
// created with quantity max(1, delta). When the adjusted quantity drops
// to zero or below, the line is removed.
func (c *Cart) ApplyDelta(productID uuid.UUID, delta int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if delta == 0 {
		return nil
	}

	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			newQuantity := c.Lines[idx].Quantity + delta
			if newQuantity <= 0 {
				c.removeLineAt(idx)
			} else {
				c.Lines[idx].Quantity = newQuantity
				c.Lines[idx].UpdatedAt = time.Now()
			}
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	// No existing line: a non-positive delta leaves the cart untouched,
	// the line exists only while its delta sum is positive
	if delta < 0 {
		return nil
	}
	line, err := NewCartLine(c.ID, productID, delta)
	if err != nil {
		return err
	}
	c.Lines = append(c.Lines, *line)
	c.UpdatedAt = time.Now()

	return nil
}

// RemoveLine removes the line for a product regardless of quantity
func (c *Cart) RemoveLine(productID uuid.UUID) error {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			c.removeLineAt(idx)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ClearLines removes every line from the cart
func (c *Cart) ClearLines() {
	for idx := range c.Lines {
		c.removedLineIDs = append(c.removedLineIDs, c.Lines[idx].ID)
	}
	c.Lines = c.Lines[:0]
	c.UpdatedAt = time.Now()
}

func (c *Cart) removeLineAt(idx int) {
	c.removedLineIDs = append(c.removedLineIDs, c.Lines[idx].ID)
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}

// Line returns the line for a product, or nil when absent
func (c *Cart) Line(productID uuid.UUID) *CartLine {
	for idx := range c.Lines {
		if c.Lines[idx].ProductID == productID {
			return &c.Lines[idx]
		}
	}
	return nil
}

// IsEmpty returns true when the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// LineCount returns the number of distinct products in the cart
func (c *Cart) LineCount() int {
	return len(c.Lines)
}

// TotalQuantity returns the sum of all line quantities
func (c *Cart) TotalQuantity() int {
	total := 0
	for idx := range c.Lines {
		total += c.Lines[idx].Quantity
	}
	return total
}

// RemovedLineIDs returns the IDs of lines removed since load
func (c *Cart) RemovedLineIDs() []uuid.UUID {
	return c.removedLineIDs
}

// ClearRemovedLineIDs resets the removed-line tracking after persistence
func (c *Cart) ClearRemovedLineIDs() {
	c.removedLineIDs = nil
}
