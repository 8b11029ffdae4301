package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductResponse is the canonical product shape served to storefronts
type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Price       string    `json:"price"`
	OldPrice    *string   `json:"old_price"`
	Discount    string    `json:"discount"`
	Description string    `json:"desc"`
	ImageURL    string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListFilter carries list query parameters
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Brand    string `form:"brand"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// ToProductResponse converts a product to its response representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Price:       p.Price.StringFixed(2),
		Discount:    discountLabel(p.Price, p.OldPrice),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if p.OldPrice != nil {
		old := p.OldPrice.StringFixed(2)
		resp.OldPrice = &old
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// discountLabel derives a "N% OFF" badge from the price drop, empty
// when the old price is absent or not an actual drop
func discountLabel(price decimal.Decimal, oldPrice *decimal.Decimal) string {
	if oldPrice == nil || !oldPrice.GreaterThan(price) || !oldPrice.IsPositive() {
		return ""
	}
	pct := oldPrice.Sub(price).Div(*oldPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return fmt.Sprintf("%s%% OFF", pct.String())
}
