package handler

import (
	"io"
	"net/http"

	orderapp "github.com/jontech/backend/internal/application/order"
	"github.com/jontech/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrderHandler serves the buyer's orders and receipts. Lookups are
// scoped to the authenticated user, so foreign orders 404.
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// List retrieves the user's orders, newest first
func (h *OrderHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	orders, total, err := h.orderService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, req.Page, req.PageSize)
}

// GetByID retrieves one of the user's orders with lines and receipt
// metadata
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ReceiptStatus reports whether the receipt PDF can be downloaded.
// The body stays flat for the storefront client.
func (h *OrderHandler) ReceiptStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	status, err := h.orderService.ReceiptStatus(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// DownloadReceipt streams the receipt PDF with an attachment disposition
func (h *OrderHandler) DownloadReceipt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	reader, filename, err := h.orderService.DownloadReceipt(c.Request.Context(), id, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		h.InternalError(c, "Failed to read receipt")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// EmailReceiptRequest optionally overrides the recipient address
type EmailReceiptRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

// EmailReceipt sends (or resends) the receipt to the buyer. Unlike the
// swallowed delivery during checkout, failures here surface to the
// caller.
func (h *OrderHandler) EmailReceipt(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := h.orderID(c)
	if !ok {
		return
	}

	var req EmailReceiptRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	email := req.Email
	if email == "" {
		email = getUserEmail(c)
	}
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No email address on account."})
		return
	}

	if _, err := h.orderService.EmailReceipt(c.Request.Context(), id, userID, email); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
