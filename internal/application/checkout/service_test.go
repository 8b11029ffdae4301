package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/order"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) Update(ctx context.Context, userID uuid.UUID, fn func(*cart.Cart) error) (*cart.Cart, error) {
	args := m.Called(ctx, userID, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product, expectedVersion int) error {
	args := m.Called(ctx, product, expectedVersion)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) PlaceWithCart(ctx context.Context, o *order.Order, cartID uuid.UUID, events []shared.DomainEvent) error {
	args := m.Called(ctx, o, cartID, events)
	return args.Error(0)
}

func (m *MockOrderRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockReceiptIssuer is a mock implementation of ReceiptIssuer
type MockReceiptIssuer struct {
	mock.Mock
}

func (m *MockReceiptIssuer) Issue(ctx context.Context, orderID uuid.UUID, email string) error {
	args := m.Called(ctx, orderID, email)
	return args.Error(0)
}

type fixture struct {
	service     *Service
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	orderRepo   *MockOrderRepository
	receipts    *MockReceiptIssuer
}

func newFixture() *fixture {
	f := &fixture{
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		orderRepo:   new(MockOrderRepository),
		receipts:    new(MockReceiptIssuer),
	}
	f.service = NewService(f.cartRepo, f.productRepo, f.orderRepo, f.receipts, decimal.Zero, zap.NewNop())
	return f
}

func productFixture(t *testing.T, name string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.CanonicalFields{
		Name:  name,
		Brand: "Samsung",
		Price: decimal.NewFromInt(price),
	})
	require.NoError(t, err)
	return p
}

func cartWith(t *testing.T, userID uuid.UUID, products ...*catalog.Product) *cart.Cart {
	t.Helper()
	c, err := cart.NewCart(userID)
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, c.ApplyDelta(p.ID, 2))
	}
	return c
}

func shippingPayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name": "Jane Wanjiku",
		"phone":     "+254700000001",
		"address1":  "Moi Avenue 12",
		"city":      "Nairobi",
		"country":   "Kenya",
	}
}

func TestService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("prices the cart", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		product := productFixture(t, "Samsung Galaxy A16", 15499)
		c := cartWith(t, userID, product)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		resp, err := f.service.Validate(ctx, userID)

		require.NoError(t, err)
		assert.True(t, resp.OK)
		assert.Equal(t, "30998.00", resp.Totals.Subtotal)
		assert.Equal(t, "0.00", resp.Totals.ShippingFee)
		assert.Equal(t, "30998.00", resp.Totals.Total)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)

		_, err = f.service.Validate(ctx, userID)

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("places order and clears cart atomically", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		product := productFixture(t, "Samsung Galaxy A16", 15499)
		c := cartWith(t, userID, product)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		f.orderRepo.On("PlaceWithCart", ctx, mock.AnythingOfType("*order.Order"), c.ID, mock.Anything).Return(nil)
		f.receipts.On("Issue", ctx, mock.AnythingOfType("uuid.UUID"), "jane@example.com").Return(nil)

		resp, err := f.service.Create(ctx, userID, "jane@example.com", CheckoutRequest{
			Shipping: shippingPayload(),
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, "30998.00", resp.Total)

		placed := f.orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
		assert.Equal(t, order.PaymentCOD, placed.PaymentMethod)
		assert.Equal(t, 1, placed.LineCount())
		assert.Equal(t, "Samsung Galaxy A16", placed.Lines[0].Name)
		assert.Equal(t, 2, placed.Lines[0].Quantity)
		assert.Empty(t, placed.GetDomainEvents())

		events := f.orderRepo.Calls[0].Arguments.Get(3).([]shared.DomainEvent)
		require.Len(t, events, 1)
		assert.Equal(t, order.EventTypeOrderPlaced, events[0].EventType())

		f.receipts.AssertExpectations(t)
	})

	t.Run("accepts camelCase shipping keys", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		product := productFixture(t, "Samsung Galaxy A16", 15499)
		c := cartWith(t, userID, product)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		f.orderRepo.On("PlaceWithCart", ctx, mock.Anything, c.ID, mock.Anything).Return(nil)
		f.receipts.On("Issue", ctx, mock.Anything, mock.Anything).Return(nil)

		_, err := f.service.Create(ctx, userID, "", CheckoutRequest{
			Shipping: map[string]interface{}{
				"fullName":     "Jane Wanjiku",
				"phoneNumber":  "+254700000001",
				"addressLine1": "Moi Avenue 12",
				"city":         "Nairobi",
				"country":      "Kenya",
			},
			PaymentMethod: "mpesa",
		})

		require.NoError(t, err)
		placed := f.orderRepo.Calls[0].Arguments.Get(1).(*order.Order)
		assert.Equal(t, "Jane Wanjiku", placed.ShipFullName)
		assert.Equal(t, order.PaymentMpesa, placed.PaymentMethod)
	})

	t.Run("missing shipping field names the field", func(t *testing.T) {
		f := newFixture()
		payload := shippingPayload()
		delete(payload, "phone")

		_, err := f.service.Create(ctx, uuid.New(), "", CheckoutRequest{Shipping: payload})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing shipping field: phone")
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		f := newFixture()

		_, err := f.service.Create(ctx, uuid.New(), "", CheckoutRequest{
			Shipping:      shippingPayload(),
			PaymentMethod: "cheque",
		})

		assert.Error(t, err)
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)

		_, err = f.service.Create(ctx, userID, "", CheckoutRequest{Shipping: shippingPayload()})

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
	})

	t.Run("receipt failure does not fail checkout", func(t *testing.T) {
		f := newFixture()
		userID := uuid.New()
		product := productFixture(t, "Samsung Galaxy A16", 15499)
		c := cartWith(t, userID, product)

		f.cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)
		f.productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)
		f.orderRepo.On("PlaceWithCart", ctx, mock.Anything, c.ID, mock.Anything).Return(nil)
		f.receipts.On("Issue", ctx, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

		resp, err := f.service.Create(ctx, userID, "jane@example.com", CheckoutRequest{
			Shipping: shippingPayload(),
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
	})
}
