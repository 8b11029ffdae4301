package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/order"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/jontech/backend/internal/domain/shared/valueobject"
	"github.com/jontech/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ReceiptIssuer numbers an order, renders its receipt, and emails it.
// Issuance is best-effort: checkout succeeds even when it fails.
type ReceiptIssuer interface {
	Issue(ctx context.Context, orderID uuid.UUID, email string) error
}

// checkoutItem is a priced cart line ready to become an order line
type checkoutItem struct {
	product   *catalog.Product
	quantity  int
	lineTotal decimal.Decimal
}

// Service turns carts into orders.
// The order, its lines, and the cart clear commit in one transaction;
// receipt issuance runs after commit and never blocks the checkout.
type Service struct {
	cartRepo        cart.Repository
	productRepo     catalog.ProductRepository
	orderRepo       order.Repository
	receipts        ReceiptIssuer
	shippingFee     decimal.Decimal
	businessMetrics *telemetry.BusinessMetrics
	logger          *zap.Logger
}

// NewService creates a new checkout Service
func NewService(
	cartRepo cart.Repository,
	productRepo catalog.ProductRepository,
	orderRepo order.Repository,
	receipts ReceiptIssuer,
	shippingFee decimal.Decimal,
	logger *zap.Logger,
) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		receipts:    receipts,
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *Service) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// Validate prices the current cart without placing an order
func (s *Service) Validate(ctx context.Context, userID uuid.UUID) (*TotalsResponse, error) {
	c, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, subtotal, err := s.prepareItems(ctx, c)
	if err != nil {
		return nil, err
	}

	total := subtotal.Add(s.shippingFee)
	return &TotalsResponse{
		OK: true,
		Totals: Totals{
			Subtotal:    subtotal.StringFixed(2),
			ShippingFee: s.shippingFee.StringFixed(2),
			Total:       total.StringFixed(2),
		},
	}, nil
}

// Create materializes an order from the user's cart.
// Prices and names are snapshotted from the catalog at this moment;
// the cart is emptied in the same transaction.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, userEmail string, req CheckoutRequest) (*CheckoutResponse, error) {
	shipping := normalizeShipping(req.Shipping)
	billing := normalizeBilling(req.Billing)

	if err := requireShippingFields(shipping); err != nil {
		return nil, err
	}

	payment, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	c, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, _, err := s.prepareItems(ctx, c)
	if err != nil {
		return nil, err
	}

	address, err := buildShippingAddress(shipping)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, address, billing.NameOnCard, billing.TaxID, payment, s.shippingFee)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := o.AddLine(item.product.ID, item.product.Name, item.product.Price, item.quantity); err != nil {
			return nil, err
		}
	}

	if err := o.Place(); err != nil {
		return nil, err
	}

	events := o.GetDomainEvents()
	o.ClearDomainEvents()
	if err := s.orderRepo.PlaceWithCart(ctx, o, c.ID, events); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("payment_method", payment.String()),
	)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordOrderWithAmount(ctx, payment.String(), o.Total)
	}

	s.issueReceipt(ctx, o, userID, userEmail)

	return &CheckoutResponse{
		ID:     o.ID,
		Status: o.Status.String(),
		Total:  o.Total.StringFixed(2),
	}, nil
}

// issueReceipt runs receipt generation and delivery after the order
// committed. Failures are logged, never surfaced to the buyer.
func (s *Service) issueReceipt(ctx context.Context, o *order.Order, userID uuid.UUID, userEmail string) {
	if s.receipts == nil {
		return
	}

	if err := s.receipts.Issue(ctx, o.ID, userEmail); err != nil {
		s.logger.Error("receipt generation or email failed",
			zap.String("order_id", o.ID.String()),
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return
	}

	if userEmail == "" {
		s.logger.Info("order placed but user has no email set, skipping email",
			zap.String("order_id", o.ID.String()),
			zap.String("user_id", userID.String()),
		)
	}
}

func (s *Service) prepareItems(ctx context.Context, c *cart.Cart) ([]checkoutItem, decimal.Decimal, error) {
	if c.IsEmpty() {
		return nil, decimal.Zero, shared.ErrEmptyCart
	}

	ids := make([]uuid.UUID, 0, len(c.Lines))
	for idx := range c.Lines {
		ids = append(ids, c.Lines[idx].ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for idx := range products {
		byID[products[idx].ID] = &products[idx]
	}

	items := make([]checkoutItem, 0, len(c.Lines))
	subtotal := decimal.Zero
	for idx := range c.Lines {
		line := &c.Lines[idx]
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, decimal.Zero, shared.NewDomainError("PRODUCT_UNAVAILABLE",
				"A product in your cart is no longer available.")
		}
		if line.Quantity <= 0 {
			return nil, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY",
				fmt.Sprintf("Invalid quantity for %s", product.Name))
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		items = append(items, checkoutItem{
			product:   product,
			quantity:  line.Quantity,
			lineTotal: lineTotal,
		})
	}

	return items, subtotal, nil
}

func requireShippingFields(shipping shippingFields) error {
	required := []struct {
		name  string
		value string
	}{
		{"full_name", shipping.FullName},
		{"phone", shipping.Phone},
		{"address1", shipping.Address1},
		{"city", shipping.City},
		{"country", shipping.Country},
	}
	for _, field := range required {
		if field.value == "" {
			return shared.NewDomainError("MISSING_SHIPPING_FIELD",
				fmt.Sprintf("Missing shipping field: %s", field.name))
		}
	}
	return nil
}

func buildShippingAddress(shipping shippingFields) (valueobject.ShippingAddress, error) {
	opts := []valueobject.ShippingAddressOption{}
	if shipping.Address2 != "" {
		opts = append(opts, valueobject.WithAddress2(shipping.Address2))
	}
	return valueobject.NewShippingAddress(
		shipping.FullName,
		shipping.Phone,
		shipping.Address1,
		shipping.City,
		shipping.Country,
		opts...,
	)
}
