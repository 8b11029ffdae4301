package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/cart"
	"github.com/jontech/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByUser finds the cart belonging to a user
func (r *GormCartRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	var c cart.Cart
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// GetOrCreate returns the user's cart, creating an empty one when absent
func (r *GormCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*cart.Cart, error) {
	c, err := r.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		// Lost a race against a concurrent first access; load the winner
		existing, findErr := r.FindByUser(ctx, userID)
		if findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return c, nil
}

// Update loads the user's cart under a row lock, applies fn, and persists
// the result in the same transaction. The cart is created when absent so a
// first add-to-cart needs no prior request.
func (r *GormCartRepository) Update(ctx context.Context, userID uuid.UUID, fn func(c *cart.Cart) error) (*cart.Cart, error) {
	var updated *cart.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := r.lockByUser(ctx, tx, userID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			c, err = cart.NewCart(userID)
			if err != nil {
				return err
			}
			if err := tx.Omit("Lines").Create(c).Error; err != nil {
				return err
			}
		}

		if err := fn(c); err != nil {
			return err
		}

		if removed := c.RemovedLineIDs(); len(removed) > 0 {
			if err := tx.Where("cart_id = ? AND id IN ?", c.ID, removed).
				Delete(&cart.CartLine{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Omit("Lines").Save(c).Error; err != nil {
			return err
		}
		for i := range c.Lines {
			c.Lines[i].CartID = c.ID
			if err := tx.Save(&c.Lines[i]).Error; err != nil {
				return err
			}
		}

		c.ClearRemovedLineIDs()
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// lockByUser loads a cart with its lines under SELECT FOR UPDATE
func (r *GormCartRepository) lockByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*cart.Cart, error) {
	query := tx.WithContext(ctx).Preload("Lines")
	// sqlite has no row locks
	if tx.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var c cart.Cart
	if err := query.First(&c, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
