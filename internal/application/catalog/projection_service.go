package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jontech/backend/internal/domain/catalog"
	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProjectionService keeps the canonical catalog in sync with the
// source categories. Each saved source record is folded into exactly
// one canonical product: created and linked on first sight, updated
// in place afterwards.
type ProjectionService struct {
	productRepo catalog.ProductRepository
	sources     map[string]listing.ProjectableSource
	logger      *zap.Logger
}

// NewProjectionService creates a new ProjectionService
func NewProjectionService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProjectionService {
	return &ProjectionService{
		productRepo: productRepo,
		sources:     make(map[string]listing.ProjectableSource),
		logger:      logger,
	}
}

// RegisterSource registers a category source with the projector.
// Registration happens once at startup; the map is read-only afterwards.
func (s *ProjectionService) RegisterSource(source listing.ProjectableSource) {
	s.sources[source.Category()] = source
}

// Categories returns the registered category slugs
func (s *ProjectionService) Categories() []string {
	categories := make([]string, 0, len(s.sources))
	for category := range s.sources {
		categories = append(categories, category)
	}
	return categories
}

// Sync projects a single source record into the canonical catalog.
// Concurrency conflicts surface as shared.ErrConcurrencyConflict so the
// caller can retry with backoff.
func (s *ProjectionService) Sync(ctx context.Context, category string, listingID uuid.UUID) error {
	source, ok := s.sources[category]
	if !ok {
		return shared.NewDomainError("UNKNOWN_CATEGORY", fmt.Sprintf("No source registered for category: %s", category))
	}

	record, err := source.Load(ctx, listingID)
	if err != nil {
		return err
	}

	fields := record.ToCanonical()

	linkedID := record.LinkedProductID()
	if linkedID == nil {
		return s.createAndLink(ctx, source, listingID, fields)
	}

	product, err := s.productRepo.FindByID(ctx, *linkedID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// The linked product was removed out of band; heal by
			// recreating it and relinking the source record.
			s.logger.Warn("linked product missing, recreating",
				zap.String("category", category),
				zap.String("listing_id", listingID.String()),
				zap.String("product_id", linkedID.String()),
			)
			return s.createAndLink(ctx, source, listingID, fields)
		}
		return err
	}

	expectedVersion := product.GetVersion()
	if err := product.ApplyCanonical(fields); err != nil {
		return err
	}
	if product.GetVersion() == expectedVersion {
		// Nothing changed; skip the write
		return nil
	}

	if err := s.productRepo.SaveWithLock(ctx, product, expectedVersion); err != nil {
		return err
	}

	s.logger.Debug("canonical product updated",
		zap.String("category", category),
		zap.String("listing_id", listingID.String()),
		zap.String("product_id", product.ID.String()),
	)

	return nil
}

func (s *ProjectionService) createAndLink(ctx context.Context, source listing.ProjectableSource, listingID uuid.UUID, fields catalog.CanonicalFields) error {
	product, err := catalog.NewProduct(fields)
	if err != nil {
		return err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return err
	}

	if err := source.LinkProduct(ctx, listingID, product.ID); err != nil {
		return err
	}

	s.logger.Info("canonical product created",
		zap.String("category", source.Category()),
		zap.String("listing_id", listingID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name),
	)

	return nil
}
