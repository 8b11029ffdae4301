package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/catalog"
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
	c := args.Get(0).(*cart.Cart)
	if err := fn(c); err != nil {
		return nil, err
	}
	return c, args.Error(1)
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

func productFixture(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.CanonicalFields{
		Name:  "Samsung Galaxy A16 128GB",
		Brand: "Samsung",
		Price: decimal.NewFromInt(15499),
	})
	require.NoError(t, err)
	return p
}

func newServiceFixture() (*Service, *MockCartRepository, *MockProductRepository) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	return NewService(cartRepo, productRepo, zap.NewNop()), cartRepo, productRepo
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns cart with resolved products", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceFixture()
		userID := uuid.New()
		product := productFixture(t)

		c, err := cart.NewCart(userID)
		require.NoError(t, err)
		require.NoError(t, c.ApplyDelta(product.ID, 2))

		cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

		resp, err := service.Get(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, c.ID, resp.ID)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.Equal(t, "Samsung Galaxy A16 128GB", resp.Items[0].Product.Name)
	})

	t.Run("empty cart yields empty items", func(t *testing.T) {
		service, cartRepo, _ := newServiceFixture()
		userID := uuid.New()

		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)

		resp, err := service.Get(ctx, userID)

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
	})
}

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("zero delta returns cart unchanged", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceFixture()
		userID := uuid.New()

		c, err := cart.NewCart(userID)
		require.NoError(t, err)
		cartRepo.On("GetOrCreate", ctx, userID).Return(c, nil)

		resp, err := service.AddItem(ctx, userID, AddItemRequest{ProductID: uuid.New(), Quantity: 0})

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		cartRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown product is rejected", func(t *testing.T) {
		service, _, productRepo := newServiceFixture()
		userID := uuid.New()
		productID := uuid.New()

		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddItem(ctx, userID, AddItemRequest{ProductID: productID, Quantity: 1})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("applies delta through a locked update", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceFixture()
		userID := uuid.New()
		product := productFixture(t)

		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		cartRepo.On("Update", ctx, userID, mock.AnythingOfType("func(*cart.Cart) error")).Return(c, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

		resp, err := service.AddItem(ctx, userID, AddItemRequest{ProductID: product.ID, Quantity: 3})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 3, resp.Items[0].Quantity)
	})
}

func TestService_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("missing cart is not found", func(t *testing.T) {
		service, cartRepo, _ := newServiceFixture()
		userID := uuid.New()

		cartRepo.On("FindByUser", ctx, userID).Return(nil, shared.ErrNotFound)

		_, err := service.RemoveItem(ctx, userID, RemoveItemRequest{ProductID: uuid.New()})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("missing line is not found", func(t *testing.T) {
		service, cartRepo, _ := newServiceFixture()
		userID := uuid.New()

		c, err := cart.NewCart(userID)
		require.NoError(t, err)

		cartRepo.On("FindByUser", ctx, userID).Return(c, nil)
		cartRepo.On("Update", ctx, userID, mock.AnythingOfType("func(*cart.Cart) error")).Return(c, nil)

		_, err = service.RemoveItem(ctx, userID, RemoveItemRequest{ProductID: uuid.New()})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("removes line and returns remaining cart", func(t *testing.T) {
		service, cartRepo, productRepo := newServiceFixture()
		userID := uuid.New()
		product := productFixture(t)

		c, err := cart.NewCart(userID)
		require.NoError(t, err)
		require.NoError(t, c.ApplyDelta(product.ID, 1))

		cartRepo.On("FindByUser", ctx, userID).Return(c, nil)
		cartRepo.On("Update", ctx, userID, mock.AnythingOfType("func(*cart.Cart) error")).Return(c, nil)

		resp, err := service.RemoveItem(ctx, userID, RemoveItemRequest{ProductID: product.ID})

		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}
