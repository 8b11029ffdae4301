package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var _ listing.ProjectableSource = (*ListingSource[listing.Smartphone, *listing.Smartphone])(nil)

func setupListingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&listing.Smartphone{}))
	return db
}

func smartphoneTestFixture(t *testing.T) *listing.Smartphone {
	t.Helper()
	s, err := listing.NewSmartphone("Galaxy A16 128GB", "Samsung", decimal.NewFromInt(15499))
	require.NoError(t, err)
	return s
}

func TestGormListingRepository_SaveAndFind(t *testing.T) {
	repo := NewGormListingRepository[listing.Smartphone](setupListingTestDB(t), nil)
	ctx := context.Background()

	s := smartphoneTestFixture(t)
	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy A16 128GB", found.Name)

	bySlug, err := repo.FindBySlug(ctx, s.Slug)
	require.NoError(t, err)
	assert.Equal(t, s.ID, bySlug.ID)

	_, err = repo.FindBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormListingRepository_SaveWithEvents(t *testing.T) {
	saver := &capturingOutboxSaver{}
	repo := NewGormListingRepository[listing.Smartphone](setupListingTestDB(t), saver)
	ctx := context.Background()

	s := smartphoneTestFixture(t)
	event := listing.NewListingSavedEvent(s.ID, listing.CategorySmartphones, true)

	require.NoError(t, repo.SaveWithEvents(ctx, s, []shared.DomainEvent{event}))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, found.ID)

	require.Len(t, saver.events, 1)
	assert.Equal(t, listing.EventTypeListingSaved, saver.events[0].EventType())
}

func TestGormListingRepository_LinkProduct(t *testing.T) {
	repo := NewGormListingRepository[listing.Smartphone](setupListingTestDB(t), nil)
	ctx := context.Background()

	s := smartphoneTestFixture(t)
	require.NoError(t, repo.Save(ctx, s))

	productID := uuid.New()
	require.NoError(t, repo.LinkProduct(ctx, s.ID, productID))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ProductID)
	assert.Equal(t, productID, *found.ProductID)

	assert.ErrorIs(t, repo.LinkProduct(ctx, uuid.New(), productID), shared.ErrNotFound)
}

func TestGormListingRepository_Delete(t *testing.T) {
	repo := NewGormListingRepository[listing.Smartphone](setupListingTestDB(t), nil)
	ctx := context.Background()

	s := smartphoneTestFixture(t)
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, repo.Delete(ctx, s.ID))
	_, err := repo.FindByID(ctx, s.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, s.ID), shared.ErrNotFound)
}

func TestListingSource_LoadAndLink(t *testing.T) {
	repo := NewGormListingRepository[listing.Smartphone](setupListingTestDB(t), nil)
	source := NewListingSource[listing.Smartphone, *listing.Smartphone](repo, listing.CategorySmartphones)
	ctx := context.Background()

	assert.Equal(t, listing.CategorySmartphones, source.Category())

	s := smartphoneTestFixture(t)
	require.NoError(t, repo.Save(ctx, s))

	record, err := source.Load(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, record.ListingID())
	assert.Equal(t, listing.CategorySmartphones, record.CategorySlug())
	assert.Nil(t, record.LinkedProductID())

	productID := uuid.New()
	require.NoError(t, source.LinkProduct(ctx, s.ID, productID))

	record, err = source.Load(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, record.LinkedProductID())
	assert.Equal(t, productID, *record.LinkedProductID())
}
