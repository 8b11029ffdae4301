package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormListingRepository implements listing.Repository[T] for one source
// category table. Every category shares the same column set, so a single
// generic implementation covers all twelve tables.
type GormListingRepository[T any] struct {
	db          *gorm.DB
	outboxSaver shared.OutboxEventSaver
}

// NewGormListingRepository creates a repository for one listing category.
// The outbox saver may be nil; SaveWithEvents then degrades to Save.
func NewGormListingRepository[T any](db *gorm.DB, outboxSaver shared.OutboxEventSaver) *GormListingRepository[T] {
	return &GormListingRepository[T]{db: db, outboxSaver: outboxSaver}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindBySlug finds a listing by its unique slug
func (r *GormListingRepository[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds listings matching the filter
func (r *GormListingRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)

	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Count counts listings matching the filter
func (r *GormListingRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(new(T)), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a listing
func (r *GormListingRepository[T]) Save(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithEvents saves the listing and persists the given domain events
// to the outbox in the same transaction
func (r *GormListingRepository[T]) SaveWithEvents(ctx context.Context, entity *T, events []shared.DomainEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(entity).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrAlreadyExists
			}
			return err
		}

		if r.outboxSaver != nil && len(events) > 0 {
			if err := r.outboxSaver.SaveEvents(ctx, tx, events...); err != nil {
				return fmt.Errorf("failed to save events to outbox: %w", err)
			}
		}

		return nil
	})
}

// Delete removes a listing
func (r *GormListingRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// LinkProduct sets the canonical product reference. Only the link column
// is written, so linking never races a concurrent field edit.
func (r *GormListingRepository[T]) LinkProduct(ctx context.Context, listingID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", listingID).
		Update("product_id", productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormListingRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Sort columns are whitelisted to prevent SQL injection
	sortField := ValidateSortField(filter.OrderBy, ListingSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormListingRepository[T]) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "brand":
			query = query.Where("brand = ?", value)
		case "min_price":
			query = query.Where("price_min >= ?", value)
		case "max_price":
			query = query.Where("price_min <= ?", value)
		case "unlinked":
			if value == true {
				query = query.Where("product_id IS NULL")
			}
		}
	}

	return query
}

// ListingSource adapts a listing repository into the projectable view the
// catalog projector consumes. PT pins the pointer type implementing
// catalog.Projectable.
type ListingSource[T any, PT interface {
	*T
	catalog.Projectable
}] struct {
	repo     listing.Repository[T]
	category string
}

// NewListingSource creates a projectable source for one category
func NewListingSource[T any, PT interface {
	*T
	catalog.Projectable
}](repo listing.Repository[T], category string) *ListingSource[T, PT] {
	return &ListingSource[T, PT]{repo: repo, category: category}
}

// Category names the source category this source serves
func (s *ListingSource[T, PT]) Category() string {
	return s.category
}

// Load fetches a source record by ID
func (s *ListingSource[T, PT]) Load(ctx context.Context, id uuid.UUID) (catalog.Projectable, error) {
	entity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return PT(entity), nil
}

// LinkProduct sets the canonical product reference on the record
func (s *ListingSource[T, PT]) LinkProduct(ctx context.Context, listingID, productID uuid.UUID) error {
	return s.repo.LinkProduct(ctx, listingID, productID)
}
