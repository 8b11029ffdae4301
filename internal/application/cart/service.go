package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// Service handles shopping cart operations.
// Quantity changes are deltas: positive values add, negative values
// subtract, and a line whose quantity reaches zero disappears.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, logger *zap.Logger) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Get returns the user's cart, creating an empty one on first access
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// AddItem adjusts a product's quantity by a signed delta.
// A zero delta returns the cart unchanged.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	if req.Quantity == 0 {
		return s.Get(ctx, userID)
	}

	// The product must exist before it can enter a cart
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	c, err := s.cartRepo.Update(ctx, userID, func(c *cart.Cart) error {
		return c.ApplyDelta(req.ProductID, req.Quantity)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("cart delta applied",
		zap.String("user_id", userID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.Int("delta", req.Quantity),
	)

	return s.toResponse(ctx, c)
}

// RemoveItem drops a product from the cart regardless of quantity
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, req RemoveItemRequest) (*CartResponse, error) {
	if _, err := s.cartRepo.FindByUser(ctx, userID); err != nil {
		return nil, err
	}

	c, err := s.cartRepo.Update(ctx, userID, func(c *cart.Cart) error {
		return c.RemoveLine(req.ProductID)
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, c)
}

func (s *Service) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	products, err := s.resolveProducts(ctx, c)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(c, products)
	return &response, nil
}

func (s *Service) resolveProducts(ctx context.Context, c *cart.Cart) (map[uuid.UUID]*catalog.Product, error) {
	if c.IsEmpty() {
		return map[uuid.UUID]*catalog.Product{}, nil
	}

	ids := make([]uuid.UUID, 0, len(c.Lines))
	for idx := range c.Lines {
		ids = append(ids, c.Lines[idx].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		byID[products[idx].ID] = &products[idx]
	}
	return byID, nil
}
