package cart

import (
	"github.com/google/uuid"
	catalogapp "github.com/jontech/backend/internal/application/catalog"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/catalog"
)

// AddItemRequest adjusts a product's quantity by a signed delta
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// RemoveItemRequest drops a product from the cart entirely
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// CartItemResponse is a cart line with its product expanded
type CartItemResponse struct {
	ID       uuid.UUID                  `json:"id"`
	Product  catalogapp.ProductResponse `json:"product"`
	Quantity int                        `json:"quantity"`
}

// CartResponse is the cart shape served to storefronts
type CartResponse struct {
	ID    uuid.UUID          `json:"id"`
	Items []CartItemResponse `json:"items"`
}

// ToCartResponse converts a cart and its resolved products.
// Lines whose product no longer exists are skipped rather than failing
// the whole cart.
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Lines))
	for idx := range c.Lines {
		line := &c.Lines[idx]
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		items = append(items, CartItemResponse{
			ID:       line.ID,
			Product:  catalogapp.ToProductResponse(product),
			Quantity: line.Quantity,
		})
	}
	return CartResponse{
		ID:    c.ID,
		Items: items,
	}
}
