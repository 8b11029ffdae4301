package handler

import (
	listingapp "github.com/jontech/backend/internal/application/listing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListingRoutes is the route surface every category handler exposes
type ListingRoutes interface {
	List(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// writePayload builds or mutates one category's source record from a
// request body
type writePayload[T any] interface {
	build() (*T, error)
	apply(record *T) error
}

// ListingHandler serves one category's source records. Every write
// queues a projection into the canonical catalog through the outbox,
// so the handler never touches canonical products itself.
type ListingHandler[T any, PT listingapp.Record[T], R any, PR interface {
	*R
	writePayload[T]
}] struct {
	BaseHandler
	service *listingapp.Service[T, PT]
	view    func(*T) any
}

func newListingHandler[T any, PT listingapp.Record[T], R any, PR interface {
	*R
	writePayload[T]
}](service *listingapp.Service[T, PT], view func(*T) any) *ListingHandler[T, PT, R, PR] {
	return &ListingHandler[T, PT, R, PR]{
		service: service,
		view:    view,
	}
}

// List retrieves source records with filtering and pagination
func (h *ListingHandler[T, PT, R, PR]) List(c *gin.Context) {
	var filter listingapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	views := make([]any, len(records))
	for i := range records {
		views[i] = h.view(&records[i])
	}

	h.SuccessWithMeta(c, views, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a single source record
func (h *ListingHandler[T, PT, R, PR]) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, h.view(record))
}

// Create adds a new source record and queues its projection
func (h *ListingHandler[T, PT, R, PR]) Create(c *gin.Context) {
	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := PR(&req).build()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if err := h.service.Save(c.Request.Context(), PT(record), true); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, h.view(record))
}

// Update replaces a source record's fields and queues a re-projection
func (h *ListingHandler[T, PT, R, PR]) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if err := PR(&req).apply(record); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if err := h.service.Save(c.Request.Context(), PT(record), false); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, h.view(record))
}

// Delete removes a source record. The linked canonical product stays.
func (h *ListingHandler[T, PT, R, PR]) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
