package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Record constrains the generic service to pointer types that expose
// their identity and category
type Record[T any] interface {
	*T
	ListingID() uuid.UUID
	CategorySlug() string
}

// ListFilter carries list query parameters shared by every category
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	Brand    string `form:"brand"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// Service handles source record operations for one category.
// Every successful save also writes a ListingSaved entry to the outbox
// in the same transaction, which is what drives the canonical
// projection downstream.
type Service[T any, PT Record[T]] struct {
	repo   listing.Repository[T]
	logger *zap.Logger
}

// NewService creates a listing service for one category
func NewService[T any, PT Record[T]](repo listing.Repository[T], logger *zap.Logger) *Service[T, PT] {
	return &Service[T, PT]{
		repo:   repo,
		logger: logger,
	}
}

// GetByID retrieves a source record by ID
func (s *Service[T, PT]) GetByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBySlug retrieves a source record by its slug
func (s *Service[T, PT]) GetBySlug(ctx context.Context, slug string) (*T, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// List retrieves source records with filtering and pagination
func (s *Service[T, PT]) List(ctx context.Context, filter ListFilter) ([]T, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Brand != "" {
		domainFilter.Filters["brand"] = filter.Brand
	}

	records, err := s.repo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// Save persists a source record and queues its projection.
// created distinguishes first saves from edits for downstream consumers.
func (s *Service[T, PT]) Save(ctx context.Context, record PT, created bool) error {
	event := listing.NewListingSavedEvent(record.ListingID(), record.CategorySlug(), created)

	if err := s.repo.SaveWithEvents(ctx, (*T)(record), []shared.DomainEvent{event}); err != nil {
		return err
	}

	s.logger.Debug("listing saved",
		zap.String("listing_id", record.ListingID().String()),
		zap.String("category", record.CategorySlug()),
		zap.Bool("created", created),
	)

	return nil
}

// Delete removes a source record. The linked canonical product is
// left in place; pruning it is an administrative decision.
func (s *Service[T, PT]) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
