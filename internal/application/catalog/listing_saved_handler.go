package catalog

import (
	"context"
	"fmt"

	"github.com/jontech/backend/internal/domain/listing"
	"github.com/jontech/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ListingSavedHandler reacts to saved source records by projecting
// them into the canonical catalog
type ListingSavedHandler struct {
	projectionService *ProjectionService
	logger            *zap.Logger
}

// NewListingSavedHandler creates a new handler for listing saved events
func NewListingSavedHandler(projectionService *ProjectionService, logger *zap.Logger) *ListingSavedHandler {
	return &ListingSavedHandler{
		projectionService: projectionService,
		logger:            logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ListingSavedHandler) EventTypes() []string {
	return []string{listing.EventTypeListingSaved}
}

// Handle processes a ListingSavedEvent
func (h *ListingSavedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	savedEvent, ok := event.(*listing.ListingSavedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", listing.EventTypeListingSaved),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			listing.EventTypeListingSaved, event.EventType())
	}

	h.logger.Debug("projecting saved listing",
		zap.String("listing_id", savedEvent.ListingID.String()),
		zap.String("category", savedEvent.Category),
		zap.Bool("created", savedEvent.Created),
	)

	if err := h.projectionService.Sync(ctx, savedEvent.Category, savedEvent.ListingID); err != nil {
		h.logger.Error("projection failed",
			zap.String("listing_id", savedEvent.ListingID.String()),
			zap.String("category", savedEvent.Category),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Ensure ListingSavedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ListingSavedHandler)(nil)
